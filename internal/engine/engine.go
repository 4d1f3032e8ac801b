// Package engine orchestrates the reconciliation pipeline: cached
// records, allowlist, tip ledger, and update counts come from storage;
// live state comes from the on-chain reader; the output is the
// display-ready projection.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"campaign-engine/internal/chainrpc"
	"campaign-engine/internal/domain"
	"campaign-engine/internal/finance"
	"campaign-engine/internal/projection"
	"campaign-engine/internal/reconcile"
	"campaign-engine/internal/registry"
	"campaign-engine/internal/storage"
	"campaign-engine/internal/tips"
)

// DefaultReadConcurrency bounds the per-request on-chain fan-out.
const DefaultReadConcurrency = 8

var (
	// ErrCampaignNotFound means no cached record exists for the id, or
	// the contract reverted the lookup.
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrNoContractConfigured is registry.ErrNoContractConfigured
	// surfaced at the request boundary. Single lookups fail on it; list
	// requests silently exclude the record.
	ErrNoContractConfigured = registry.ErrNoContractConfigured
)

// Options configures an Engine. Campaigns, Allowlist, Tips, Updates,
// Registry, and Reader are required.
type Options struct {
	Campaigns storage.CampaignStore
	Allowlist storage.AllowlistStore
	Tips      storage.TipStore
	Updates   storage.UpdateStore

	Registry *registry.Registry
	Reader   chainrpc.CampaignReader

	// ReadConcurrency bounds parallel on-chain reads per request.
	// Zero means DefaultReadConcurrency.
	ReadConcurrency int
	Logger          *zap.Logger
}

// Engine runs the reconciliation pipeline. It holds no campaign state
// across requests; every call recomputes from storage and the chain.
type Engine struct {
	campaigns storage.CampaignStore
	allowlist storage.AllowlistStore
	tipStore  storage.TipStore
	updates   storage.UpdateStore

	registry *registry.Registry
	reader   chainrpc.CampaignReader

	pool pond.Pool
	log  *zap.Logger
}

// New creates an Engine.
func New(opts Options) *Engine {
	concurrency := opts.ReadConcurrency
	if concurrency <= 0 {
		concurrency = DefaultReadConcurrency
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		campaigns: opts.Campaigns,
		allowlist: opts.Allowlist,
		tipStore:  opts.Tips,
		updates:   opts.Updates,
		registry:  opts.Registry,
		reader:    opts.Reader,
		pool:      pond.NewPool(concurrency),
		log:       log,
	}
}

// Close releases the worker pool.
func (e *Engine) Close() {
	e.pool.StopAndWait()
}

// List runs the full pipeline and returns one page of the public
// listing. Datastore failures abort the request; on-chain failures and
// misconfigured records only affect their own campaign.
func (e *Engine) List(ctx context.Context, offset, limit int) (projection.Page, error) {
	records, err := e.campaigns.ListVisible(ctx)
	if err != nil {
		return projection.Page{}, fmt.Errorf("list campaigns: %w", err)
	}
	allowlist, err := e.allowlist.EnabledContracts(ctx)
	if err != nil {
		return projection.Page{}, fmt.Errorf("load allowlist: %w", err)
	}
	ledger, err := e.tipLedger(ctx)
	if err != nil {
		return projection.Page{}, err
	}
	counts, err := e.updates.CountByCampaign(ctx)
	if err != nil {
		return projection.Page{}, fmt.Errorf("count updates: %w", err)
	}

	// One independent read per record, bounded by the pool. Results
	// land in their input slot so ordering survives the fan-out.
	results := make([]*domain.ReconciledCampaignView, len(records))
	group := e.pool.NewGroupContext(ctx)
	groupCtx := group.Context()
	for i, rec := range records {
		group.Submit(func() {
			if groupCtx.Err() != nil {
				return
			}
			results[i] = e.buildView(groupCtx, rec, ledger, counts)
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		e.log.Warn("campaign fan-out encountered error", zap.Error(err))
	}
	if ctx.Err() != nil {
		return projection.Page{}, ctx.Err()
	}

	views := make([]domain.ReconciledCampaignView, 0, len(results))
	for _, view := range results {
		if view != nil {
			views = append(views, *view)
		}
	}

	return projection.Project(views, allowlist, offset, limit), nil
}

// GetOptions carries the optional contract/chain override for a single
// lookup. When set, the override replaces the cached record's contract
// and chain for the live read.
type GetOptions struct {
	ContractAddress string
	ChainID         int64
}

// Get runs the pipeline for one campaign id. Unlike List, a
// misconfigured record is an error here, and a contract revert maps to
// ErrCampaignNotFound.
func (e *Engine) Get(ctx context.Context, campaignID int64, opts GetOptions) (domain.ReconciledCampaignView, error) {
	rec, err := e.campaigns.GetByCampaignID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.ReconciledCampaignView{}, fmt.Errorf("%w: %d", ErrCampaignNotFound, campaignID)
		}
		return domain.ReconciledCampaignView{}, fmt.Errorf("get campaign: %w", err)
	}

	chainID := rec.ChainID
	if opts.ChainID != 0 {
		chainID = opts.ChainID
	}
	entry, err := e.registry.Resolve(chainID, rec.ContractVersion)
	if err != nil {
		return domain.ReconciledCampaignView{}, fmt.Errorf("%w: %v", ErrNoContractConfigured, err)
	}
	contract, err := entry.ContractFor(opts.ContractAddress, rec.ContractAddress)
	if err != nil {
		return domain.ReconciledCampaignView{}, err
	}

	onchain, err := e.reader.Read(ctx, entry, contract, rec.CampaignID)
	if err != nil {
		if errors.Is(err, chainrpc.ErrReverted) {
			return domain.ReconciledCampaignView{}, fmt.Errorf("%w: %d", ErrCampaignNotFound, campaignID)
		}
		// Any other failure falls back to cached-only data.
		onchain = nil
	}

	// The override identifies the campaign for this response.
	lookup := *rec
	lookup.ChainID = chainID
	lookup.ContractAddress = contract

	state := reconcile.Reconcile(&lookup, onchain, entry.NativeToUsdRate)
	view := finance.Aggregate(state)

	ledger, err := e.tipLedger(ctx)
	if err != nil {
		return domain.ReconciledCampaignView{}, err
	}
	counts, err := e.updates.CountByCampaign(ctx)
	if err != nil {
		return domain.ReconciledCampaignView{}, fmt.Errorf("count updates: %w", err)
	}
	view.TipsLedgerUsd = ledger[rec.CampaignID]
	view.UpdatesCount = counts[rec.CampaignID]

	return view, nil
}

// buildView reconciles one record for the listing. Returns nil when the
// record cannot resolve to a contract; list requests exclude such
// records instead of failing.
func (e *Engine) buildView(ctx context.Context, rec *domain.CachedCampaignRecord, ledger map[int64]float64, counts map[int64]int64) *domain.ReconciledCampaignView {
	entry, err := e.registry.Resolve(rec.ChainID, rec.ContractVersion)
	if err != nil {
		e.log.Warn("campaign excluded from listing",
			zap.Int64("recordId", rec.RecordID),
			zap.Int64("campaignId", rec.CampaignID),
			zap.Error(err),
		)
		return nil
	}
	contract, err := entry.ContractFor("", rec.ContractAddress)
	if err != nil {
		e.log.Warn("campaign excluded from listing",
			zap.Int64("recordId", rec.RecordID),
			zap.Int64("campaignId", rec.CampaignID),
			zap.Error(err),
		)
		return nil
	}

	onchain, err := e.reader.Read(ctx, entry, contract, rec.CampaignID)
	if err != nil {
		// Reader already logged and counted the failure.
		onchain = nil
	}

	state := reconcile.Reconcile(rec, onchain, entry.NativeToUsdRate)
	view := finance.Aggregate(state)
	view.TipsLedgerUsd = ledger[rec.CampaignID]
	view.UpdatesCount = counts[rec.CampaignID]
	return &view
}

func (e *Engine) tipLedger(ctx context.Context) (map[int64]float64, error) {
	rows, err := e.tipStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}
	return tips.SumTips(rows), nil
}
