package decode

import (
	"fmt"

	"campaign-engine/internal/domain"
)

// position locates one canonical field in a legacy return tuple: the
// ABI output name (may be empty for unnamed outputs) plus the fixed
// positional fallback index for that generation.
type position struct {
	name  string
	index int
}

// legacy normalizes the three pre-v4 generations. A nil position means
// the generation does not expose that field; it decodes to null, never
// to zero.
type legacy struct {
	version domain.ContractVersion

	category, uri                *position
	goal, grossRaised, netRaised *position
	editionsMinted, maxEditions  *position
	price                        *position
	active, paused, closed       *position
}

var legacyV1 = legacy{
	version:        domain.VersionV1,
	category:       &position{"", 0},
	uri:            &position{"", 1},
	goal:           &position{"", 2},
	grossRaised:    &position{"", 3},
	editionsMinted: &position{"", 4},
	maxEditions:    &position{"", 5},
	price:          &position{"", 6},
	active:         &position{"", 7},
}

var legacyV2 = legacy{
	version:        domain.VersionV2,
	category:       &position{"", 0},
	uri:            &position{"", 1},
	goal:           &position{"goal", 2},
	grossRaised:    &position{"grossRaised", 3},
	netRaised:      &position{"netRaised", 4},
	editionsMinted: &position{"editionsMinted", 5},
	maxEditions:    &position{"maxEditions", 6},
	price:          &position{"price", 7},
	active:         &position{"", 8},
	closed:         &position{"", 9},
}

var legacyV3 = legacy{
	version:        domain.VersionV3,
	category:       &position{"category", 0},
	uri:            &position{"uri", 1},
	goal:           &position{"goal", 2},
	grossRaised:    &position{"grossRaised", 3},
	netRaised:      &position{"netRaised", 4},
	editionsMinted: &position{"editionsMinted", 5},
	maxEditions:    &position{"maxEditions", 6},
	price:          &position{"price", 7},
	active:         &position{"active", 8},
	paused:         &position{"paused", 9},
	closed:         &position{"closed", 10},
}

// Normalize converts a legacy tuple into the canonical state.
func (l legacy) Normalize(raw Raw) (*domain.OnchainCampaignState, error) {
	st := &domain.OnchainCampaignState{}

	var err error
	if st.Category, err = l.stringField(raw, "category", l.category); err != nil {
		return nil, err
	}
	if st.MetadataURI, err = l.stringField(raw, "metadataUri", l.uri); err != nil {
		return nil, err
	}
	if st.GoalNative, err = l.weiField(raw, "goal", l.goal); err != nil {
		return nil, err
	}
	if st.GrossRaisedNative, err = l.weiField(raw, "grossRaised", l.grossRaised); err != nil {
		return nil, err
	}
	if st.NetRaisedNative, err = l.weiField(raw, "netRaised", l.netRaised); err != nil {
		return nil, err
	}
	if st.EditionsMinted, err = l.countField(raw, "editionsMinted", l.editionsMinted); err != nil {
		return nil, err
	}
	if st.MaxEditions, err = l.countField(raw, "maxEditions", l.maxEditions); err != nil {
		return nil, err
	}
	if st.PriceNative, err = l.weiField(raw, "price", l.price); err != nil {
		return nil, err
	}
	if st.Active, err = l.boolField(raw, "active", l.active); err != nil {
		return nil, err
	}
	if st.Paused, err = l.boolField(raw, "paused", l.paused); err != nil {
		return nil, err
	}
	if st.Closed, err = l.boolField(raw, "closed", l.closed); err != nil {
		return nil, err
	}

	return st, nil
}

func (l legacy) get(raw Raw, canonical string, pos *position) (interface{}, error) {
	v, ok := raw.lookup(pos.name, pos.index)
	if !ok {
		return nil, fmt.Errorf("decode %s campaign: missing %s (name %q, index %d)",
			l.version, canonical, pos.name, pos.index)
	}
	return v, nil
}

func (l legacy) stringField(raw Raw, canonical string, pos *position) (*string, error) {
	if pos == nil {
		return nil, nil
	}
	v, err := l.get(raw, canonical, pos)
	if err != nil {
		return nil, err
	}
	s, err := asString(v)
	if err != nil {
		return nil, fmt.Errorf("decode %s campaign: %s: %w", l.version, canonical, err)
	}
	return ptr(s), nil
}

func (l legacy) weiField(raw Raw, canonical string, pos *position) (*float64, error) {
	if pos == nil {
		return nil, nil
	}
	v, err := l.get(raw, canonical, pos)
	if err != nil {
		return nil, err
	}
	n, err := asBigInt(v)
	if err != nil {
		return nil, fmt.Errorf("decode %s campaign: %s: %w", l.version, canonical, err)
	}
	return ptr(weiToNative(n)), nil
}

func (l legacy) countField(raw Raw, canonical string, pos *position) (*int64, error) {
	if pos == nil {
		return nil, nil
	}
	v, err := l.get(raw, canonical, pos)
	if err != nil {
		return nil, err
	}
	n, err := asBigInt(v)
	if err != nil {
		return nil, fmt.Errorf("decode %s campaign: %s: %w", l.version, canonical, err)
	}
	return ptr(n.Int64()), nil
}

func (l legacy) boolField(raw Raw, canonical string, pos *position) (*bool, error) {
	if pos == nil {
		return nil, nil
	}
	v, err := l.get(raw, canonical, pos)
	if err != nil {
		return nil, err
	}
	b, err := asBool(v)
	if err != nil {
		return nil, fmt.Errorf("decode %s campaign: %s: %w", l.version, canonical, err)
	}
	return ptr(b), nil
}
