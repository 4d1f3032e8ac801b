package decode

import (
	"fmt"

	"campaign-engine/internal/domain"
)

// modern normalizes the v4 generation: a fully named return struct with
// no positional fallback. USD figures arrive as integer cents and are
// carried through as cents; the aggregator is the only place that turns
// them into dollars.
type modern struct{}

func (modern) Normalize(raw Raw) (*domain.OnchainCampaignState, error) {
	st := &domain.OnchainCampaignState{}

	var err error
	if st.Category, err = modernString(raw, "category"); err != nil {
		return nil, err
	}
	if st.MetadataURI, err = modernString(raw, "metadataUri"); err != nil {
		return nil, err
	}
	if st.GoalNative, err = modernWei(raw, "goalNative"); err != nil {
		return nil, err
	}
	if st.GoalUsdCents, err = modernCents(raw, "goalUsd"); err != nil {
		return nil, err
	}
	if st.GrossRaisedNative, err = modernWei(raw, "grossNative"); err != nil {
		return nil, err
	}
	if st.NetRaisedNative, err = modernWei(raw, "netNative"); err != nil {
		return nil, err
	}
	if st.EditionsMinted, err = modernCount(raw, "minted"); err != nil {
		return nil, err
	}
	if st.MaxEditions, err = modernCount(raw, "supplyCap"); err != nil {
		return nil, err
	}
	if st.PriceNative, err = modernWei(raw, "priceNative"); err != nil {
		return nil, err
	}
	if st.PriceUsdCents, err = modernCents(raw, "priceUsd"); err != nil {
		return nil, err
	}
	if st.Active, err = modernBool(raw, "active"); err != nil {
		return nil, err
	}
	if st.Paused, err = modernBool(raw, "paused"); err != nil {
		return nil, err
	}
	if st.Closed, err = modernBool(raw, "closed"); err != nil {
		return nil, err
	}

	return st, nil
}

func modernGet(raw Raw, name string) (interface{}, error) {
	v, ok := raw.Named[name]
	if !ok {
		return nil, fmt.Errorf("decode v4 campaign: missing %s", name)
	}
	return v, nil
}

func modernString(raw Raw, name string) (*string, error) {
	v, err := modernGet(raw, name)
	if err != nil {
		return nil, err
	}
	s, err := asString(v)
	if err != nil {
		return nil, fmt.Errorf("decode v4 campaign: %s: %w", name, err)
	}
	return ptr(s), nil
}

func modernWei(raw Raw, name string) (*float64, error) {
	v, err := modernGet(raw, name)
	if err != nil {
		return nil, err
	}
	n, err := asBigInt(v)
	if err != nil {
		return nil, fmt.Errorf("decode v4 campaign: %s: %w", name, err)
	}
	return ptr(weiToNative(n)), nil
}

func modernCents(raw Raw, name string) (*int64, error) {
	v, err := modernGet(raw, name)
	if err != nil {
		return nil, err
	}
	n, err := asBigInt(v)
	if err != nil {
		return nil, fmt.Errorf("decode v4 campaign: %s: %w", name, err)
	}
	return ptr(n.Int64()), nil
}

func modernCount(raw Raw, name string) (*int64, error) {
	return modernCents(raw, name)
}

func modernBool(raw Raw, name string) (*bool, error) {
	v, err := modernGet(raw, name)
	if err != nil {
		return nil, err
	}
	b, err := asBool(v)
	if err != nil {
		return nil, fmt.Errorf("decode v4 campaign: %s: %w", name, err)
	}
	return ptr(b), nil
}
