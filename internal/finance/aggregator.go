// Package finance derives the display-ready USD view from a reconciled
// campaign state. Pure arithmetic, no I/O.
package finance

import (
	"math"

	"campaign-engine/internal/domain"
)

// Aggregate computes the financial split and progress figures for one
// reconciled campaign.
//
// The per-unit price falls back to 1 when goal or cap is unset so the
// sales split never divides by zero. Edition sales are capped at gross
// raised; whatever gross exceeds sales is attributed to tips. The two
// always sum back to raisedUsd.
func Aggregate(state domain.ReconciledCampaignState) domain.ReconciledCampaignView {
	rec := state.Record

	price := 1.0
	if state.GoalUsd > 0 && state.MaxEditions > 0 {
		price = state.GoalUsd / float64(state.MaxEditions)
	}

	gross := state.GrossRaisedUsd
	sales := math.Min(float64(state.EditionsSold)*price, gross)
	tips := math.Max(0, gross-sales)

	view := domain.ReconciledCampaignView{
		CampaignID:      rec.CampaignID,
		RecordID:        rec.RecordID,
		ContractAddress: state.Key.ContractAddress,
		ChainID:         state.Key.ChainID,
		ContractVersion: rec.ContractVersion,
		Category:        rec.Category,
		MetadataURI:     rec.MetadataURI,
		CreatedAt:       rec.CreatedAt,

		GoalUsd:      state.GoalUsd,
		RaisedUsd:    gross,
		NftSalesUsd:  sales,
		TipsUsd:      tips,
		PricePerUnit: price,

		EditionsSold: state.EditionsSold,
		MaxEditions:  state.MaxEditions,

		OnchainAvailable: state.OnchainAvailable,
	}

	if state.MaxEditions > 0 {
		remaining := state.MaxEditions - state.EditionsSold
		if remaining < 0 {
			remaining = 0
		}
		view.Remaining = &remaining
	}

	view.Progress = progress(state)
	view.SoldOut = state.MaxEditions > 0 && state.EditionsSold >= state.MaxEditions
	view.Active = !view.SoldOut

	return view
}

// progress reports completion as a whole percentage in [0, 100].
// Edition count drives it when a supply cap exists, otherwise the USD
// goal does. Campaigns with neither report 0.
func progress(state domain.ReconciledCampaignState) int64 {
	var pct float64
	switch {
	case state.MaxEditions > 0:
		pct = 100 * float64(state.EditionsSold) / float64(state.MaxEditions)
	case state.GoalUsd > 0:
		pct = 100 * state.GrossRaisedUsd / state.GoalUsd
	default:
		return 0
	}
	p := int64(math.Round(pct))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
