// Package stub provides a canned CampaignReader for tests.
package stub

import (
	"context"
	"sync"

	"campaign-engine/internal/chainrpc"
	"campaign-engine/internal/domain"
	"campaign-engine/internal/registry"
)

// Reader returns pre-configured states or errors keyed by campaign id.
// Campaigns with no canned entry report chainrpc.ErrUnavailable.
type Reader struct {
	mu     sync.Mutex
	states map[int64]*domain.OnchainCampaignState
	errs   map[int64]error
	calls  []int64
}

// NewReader creates an empty stub reader.
func NewReader() *Reader {
	return &Reader{
		states: make(map[int64]*domain.OnchainCampaignState),
		errs:   make(map[int64]error),
	}
}

var _ chainrpc.CampaignReader = (*Reader)(nil)

// SetState configures the state returned for one campaign id.
func (r *Reader) SetState(campaignID int64, st *domain.OnchainCampaignState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[campaignID] = st
}

// SetError configures the error returned for one campaign id.
func (r *Reader) SetError(campaignID int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[campaignID] = err
}

// Calls returns the campaign ids read so far, in call order.
func (r *Reader) Calls() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, len(r.calls))
	copy(out, r.calls)
	return out
}

// Read returns the canned result for campaignID.
func (r *Reader) Read(_ context.Context, _ registry.Entry, _ string, campaignID int64) (*domain.OnchainCampaignState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, campaignID)

	if err, ok := r.errs[campaignID]; ok {
		return nil, err
	}
	if st, ok := r.states[campaignID]; ok {
		return st, nil
	}
	return nil, chainrpc.ErrUnavailable
}
