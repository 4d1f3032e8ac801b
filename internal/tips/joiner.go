// Package tips aggregates the platform gift ledger by campaign.
package tips

import (
	"github.com/shopspring/decimal"

	"campaign-engine/internal/domain"
)

// SumTips groups ledger rows by campaign id and sums their USD amounts.
// Campaigns with no rows are simply absent; callers read missing keys as
// zero. Accumulation uses decimal arithmetic so ledgers with many small
// rows do not drift.
//
// This total is independent of the tips split the aggregator derives
// from on-chain gross raised. The two are surfaced as separate fields.
func SumTips(records []domain.TipRecord) map[int64]float64 {
	sums := make(map[int64]decimal.Decimal, len(records))
	for _, rec := range records {
		sums[rec.CampaignID] = sums[rec.CampaignID].Add(decimal.NewFromFloat(rec.TipUsd))
	}

	out := make(map[int64]float64, len(sums))
	for id, sum := range sums {
		out[id], _ = sum.Float64()
	}
	return out
}
