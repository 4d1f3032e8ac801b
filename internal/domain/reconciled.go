package domain

// ReconciledCampaignState merges a cached record with an optional live
// read under the authority policy: edition counts ratchet (the chain can
// only raise them), maxEditions is overwritten by any positive on-chain
// value, and gross raised is on-chain-first only when the chain is ahead
// of the cache.
type ReconciledCampaignState struct {
	Key    CampaignKey
	Record *CachedCampaignRecord

	// OnchainAvailable reports whether a live read contributed to this
	// state. False means every figure below came from the cache.
	OnchainAvailable bool

	EditionsSold   int64
	MaxEditions    int64
	GoalUsd        float64
	GrossRaisedUsd float64
	NetRaisedUsd   *float64
}

// ReconciledCampaignView is the display-ready projection row.
type ReconciledCampaignView struct {
	CampaignID      int64           `json:"campaignId"`
	RecordID        int64           `json:"recordId"`
	ContractAddress string          `json:"contractAddress"`
	ChainID         int64           `json:"chainId"`
	ContractVersion ContractVersion `json:"contractVersion"`
	Category        string          `json:"category"`
	MetadataURI     string          `json:"metadataUri"`
	CreatedAt       int64           `json:"createdAt"`

	GoalUsd       float64 `json:"goalUsd"`
	RaisedUsd     float64 `json:"raisedUsd"`
	NftSalesUsd   float64 `json:"nftSalesUsd"`
	TipsUsd       float64 `json:"tipsUsd"`
	TipsLedgerUsd float64 `json:"tipsLedgerUsd"`
	PricePerUnit  float64 `json:"pricePerUnit"`

	EditionsSold int64  `json:"editionsSold"`
	MaxEditions  int64  `json:"maxEditions"`
	Remaining    *int64 `json:"remaining"` // nil = unlimited supply
	Progress     int64  `json:"progress"`  // 0..100

	SoldOut          bool  `json:"soldOut"`
	Active           bool  `json:"active"`
	UpdatesCount     int64 `json:"updatesCount"`
	OnchainAvailable bool  `json:"onchainAvailable"`
}
