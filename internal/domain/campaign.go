package domain

// ContractVersion identifies the generation of the campaign contract
// interface a campaign was minted against. Four generations are live;
// each returns a structurally different shape from getCampaign.
type ContractVersion string

const (
	VersionV1 ContractVersion = "v1"
	VersionV2 ContractVersion = "v2"
	VersionV3 ContractVersion = "v3"
	VersionV4 ContractVersion = "v4"
)

// Valid reports whether v is a known contract generation.
func (v ContractVersion) Valid() bool {
	switch v {
	case VersionV1, VersionV2, VersionV3, VersionV4:
		return true
	}
	return false
}

// CachedCampaignRecord is one campaign row from the relational datastore.
// Corresponds to the campaigns table. Owned by the external submission
// workflow; this engine only reads it.
type CachedCampaignRecord struct {
	RecordID        int64           // PRIMARY KEY
	CampaignID      int64           // on-chain campaign id
	ContractAddress string          // contract the campaign was minted on (may be empty for misconfigured rows)
	ChainID         int64
	ContractVersion ContractVersion // v1..v4
	GoalUsd         float64
	MaxEditions     int64 // 0 = unlimited
	EditionsSold    int64 // last count the submission workflow observed
	Visible         bool
	Category        string
	MetadataURI     string
	CreatedAt       int64 // Unix timestamp in milliseconds
}

// CampaignKey uniquely identifies a campaign across the datastore and the
// chain. ContractAddress is always lowercased before use as a key.
type CampaignKey struct {
	ContractAddress string
	ChainID         int64
	CampaignID      int64
}

// CampaignUpdate is one update post attached to a campaign. Only the
// per-campaign count is consumed here.
type CampaignUpdate struct {
	UpdateID   int64
	CampaignID int64
	CreatedAt  int64 // Unix timestamp in milliseconds
}
