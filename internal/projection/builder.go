// Package projection turns reconciled views into the public listing:
// allowlist filtering, de-duplication, and offset pagination.
package projection

import (
	"strings"

	"campaign-engine/internal/domain"
	"campaign-engine/internal/observability"
)

// Page is one paginated slice of the projected listing. Total counts the
// filtered, de-duplicated set before pagination. NextCursor is nil on
// the last page.
type Page struct {
	Items      []domain.ReconciledCampaignView `json:"items"`
	Total      int                             `json:"total"`
	NextCursor *int                            `json:"nextCursor"`
}

type dedupeKey struct {
	contract   string
	campaignID int64
}

// Project filters views against the enabled-contract allowlist, drops
// duplicate (contract, campaignId) pairs keeping the first occurrence,
// and applies offset/limit pagination. Input order is preserved; callers
// pass views pre-sorted newest first, so the kept duplicate is the most
// recently created one.
//
// Allowlist matching is case-insensitive: both sides are lowercased.
func Project(views []domain.ReconciledCampaignView, allowlist []string, offset, limit int) Page {
	enabled := make(map[string]struct{}, len(allowlist))
	for _, addr := range allowlist {
		enabled[strings.ToLower(addr)] = struct{}{}
	}

	seen := make(map[dedupeKey]struct{}, len(views))
	filtered := make([]domain.ReconciledCampaignView, 0, len(views))
	for _, view := range views {
		contract := strings.ToLower(view.ContractAddress)
		if contract == "" {
			observability.RecordSkipped("empty_contract")
			continue
		}
		if _, ok := enabled[contract]; !ok {
			observability.RecordSkipped("not_allowlisted")
			continue
		}
		key := dedupeKey{contract: contract, campaignID: view.CampaignID}
		if _, dup := seen[key]; dup {
			observability.RecordSkipped("duplicate")
			continue
		}
		seen[key] = struct{}{}
		filtered = append(filtered, view)
	}

	total := len(filtered)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	page := Page{
		Items: filtered[offset:end],
		Total: total,
	}
	if end < total {
		next := end
		page.NextCursor = &next
	}
	return page
}
