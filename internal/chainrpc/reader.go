package chainrpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"campaign-engine/internal/decode"
	"campaign-engine/internal/domain"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/registry"
)

// Default per-call budget. Each read is attempted exactly once.
const DefaultReadTimeout = 5 * time.Second

var (
	// ErrReverted means the contract rejected the call, which for
	// getCampaign means the id does not exist on that contract.
	ErrReverted = errors.New("campaign read reverted")

	// ErrUnavailable tags any other read failure (timeout, unreachable
	// RPC, undecodable return). Callers fall back to cached data.
	ErrUnavailable = errors.New("on-chain state unavailable")
)

// CampaignReader reads live campaign state. Implemented by Reader and
// by the test stub.
type CampaignReader interface {
	Read(ctx context.Context, entry registry.Entry, contract string, campaignID int64) (*domain.OnchainCampaignState, error)
}

// Reader issues one time-bounded read per campaign. A failure is
// isolated to that campaign: it is logged, counted, and returned as a
// tagged error, never propagated to sibling reads.
type Reader struct {
	arena   *Arena
	timeout time.Duration
	log     *zap.Logger
}

// ReaderOption configures Reader.
type ReaderOption func(*Reader)

// WithTimeout sets the per-call time budget.
func WithTimeout(d time.Duration) ReaderOption {
	return func(r *Reader) {
		r.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) ReaderOption {
	return func(r *Reader) {
		r.log = log
	}
}

// NewReader creates a Reader on top of a client arena.
func NewReader(arena *Arena, opts ...ReaderOption) *Reader {
	r := &Reader{
		arena:   arena,
		timeout: DefaultReadTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ CampaignReader = (*Reader)(nil)

// Read fetches and normalizes one campaign's on-chain state.
func (r *Reader) Read(ctx context.Context, entry registry.Entry, contract string, campaignID int64) (*domain.OnchainCampaignState, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	st, err := r.read(ctx, entry, contract, campaignID)
	observability.RecordChainRead(entry.ChainID, err, time.Since(start).Seconds())

	if err != nil {
		r.log.Warn("on-chain read failed",
			zap.Int64("chainId", entry.ChainID),
			zap.String("contract", contract),
			zap.Int64("campaignId", campaignID),
			zap.String("version", string(entry.Version)),
			zap.Error(err),
		)
		return nil, err
	}
	return st, nil
}

func (r *Reader) read(ctx context.Context, entry registry.Entry, contract string, campaignID int64) (*domain.OnchainCampaignState, error) {
	caller, err := r.arena.caller(entry, contract)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	raw, err := caller.call(ctx, campaignID)
	if err != nil {
		if errors.Is(err, ErrReverted) || isRevert(err) {
			return nil, fmt.Errorf("%w: campaign %d", ErrReverted, campaignID)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	normalizer, err := decode.ForVersion(entry.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	st, err := normalizer.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return st, nil
}

// isRevert detects node-reported execution reverts, which surface as
// opaque rpc errors rather than typed values.
func isRevert(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "execution reverted")
}
