package domain

// OnchainCampaignState is the canonical form of one live contract read,
// after version-specific normalization. It is ephemeral: computed per
// request, never persisted.
//
// Field availability varies by contract generation. A field the
// generation does not expose stays nil; the decoder never substitutes
// zero for an absent value (only the aggregator defaults).
type OnchainCampaignState struct {
	Category    *string
	MetadataURI *string

	// Native amounts are converted from native-wei (10^-18 units) to a
	// display float at decode time. Not suitable for contract calls.
	GoalNative        *float64
	GrossRaisedNative *float64
	NetRaisedNative   *float64
	PriceNative       *float64

	// v4 contracts report USD figures directly as integer cents. When
	// present these are authoritative and never re-derived from rates.
	GoalUsdCents  *int64
	PriceUsdCents *int64

	EditionsMinted *int64
	MaxEditions    *int64

	Active *bool
	Paused *bool
	Closed *bool
}
