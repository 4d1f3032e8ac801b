package domain

// TipRecord is one row of the platform gift ledger. The ledger is owned
// by an external workflow and joined here by campaign id only.
//
// Note this ledger is independent from the tips split derived on-chain
// (grossRaised minus edition sales); the two are reported side by side
// and never merged.
type TipRecord struct {
	CampaignID int64
	TipUsd     float64
	CreatedAt  int64 // Unix timestamp in milliseconds
}
