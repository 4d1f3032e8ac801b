// Package reconcile merges cached campaign records with live contract
// reads under the authority policy.
package reconcile

import (
	"strings"

	"campaign-engine/internal/domain"
	"campaign-engine/internal/observability"
)

// Reconcile produces the authoritative state for one campaign. onchain is
// nil when the live read failed or was skipped; every figure then comes
// from the cache.
//
// The policy is a ratchet, not last-write-wins:
//
//  1. editionsSold = max(cached, onchain.editionsMinted). A live read can
//     only raise the count. A stale or zeroed RPC response never lowers
//     what the submission workflow already observed.
//  2. maxEditions is taken from the chain whenever it reports a value
//     greater than zero, even if smaller than the cached cap.
//  3. grossRaisedUsd is on-chain-first only when the live edition count
//     is strictly ahead of the cache. A successful read that is behind
//     the cache must not understate raised funds, so the cached
//     derivation (editionsSold times the per-unit price) wins.
//
// rate is the native-to-USD rate resolved from the registry for the
// record's chain. v4 integer-cent USD fields bypass the rate entirely.
func Reconcile(cached *domain.CachedCampaignRecord, onchain *domain.OnchainCampaignState, rate float64) domain.ReconciledCampaignState {
	state := domain.ReconciledCampaignState{
		Key: domain.CampaignKey{
			ContractAddress: strings.ToLower(cached.ContractAddress),
			ChainID:         cached.ChainID,
			CampaignID:      cached.CampaignID,
		},
		Record:       cached,
		EditionsSold: cached.EditionsSold,
		MaxEditions:  cached.MaxEditions,
		GoalUsd:      cached.GoalUsd,
	}

	if onchain == nil {
		state.GrossRaisedUsd = cachedGross(cached)
		observability.RecordReconciled(false)
		return state
	}
	state.OnchainAvailable = true

	if onchain.EditionsMinted != nil && *onchain.EditionsMinted > state.EditionsSold {
		state.EditionsSold = *onchain.EditionsMinted
	}
	if onchain.MaxEditions != nil && *onchain.MaxEditions > 0 {
		state.MaxEditions = *onchain.MaxEditions
	}
	if onchain.GoalUsdCents != nil {
		state.GoalUsd = float64(*onchain.GoalUsdCents) / 100
	}
	if onchain.NetRaisedNative != nil {
		net := *onchain.NetRaisedNative * rate
		state.NetRaisedUsd = &net
	}

	// On-chain gross counts only when the chain is strictly ahead of
	// the cached edition count.
	chainAhead := onchain.EditionsMinted != nil && *onchain.EditionsMinted > cached.EditionsSold
	if chainAhead && onchain.GrossRaisedNative != nil {
		state.GrossRaisedUsd = *onchain.GrossRaisedNative * rate
	} else {
		state.GrossRaisedUsd = cachedGross(cached)
	}

	observability.RecordReconciled(true)
	return state
}

// cachedGross derives gross raised from cached figures alone: the cached
// edition count times the goal-implied per-unit price. The price falls
// back to 1 when goal or cap is unset so the product stays meaningful.
func cachedGross(cached *domain.CachedCampaignRecord) float64 {
	price := 1.0
	if cached.GoalUsd > 0 && cached.MaxEditions > 0 {
		price = cached.GoalUsd / float64(cached.MaxEditions)
	}
	return float64(cached.EditionsSold) * price
}
