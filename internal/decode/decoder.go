// Package decode normalizes the four on-chain campaign shapes into the
// one canonical OnchainCampaignState. Selection is by explicit version
// dispatch, never by structural guessing.
package decode

import (
	"fmt"
	"math/big"

	"campaign-engine/internal/domain"
)

// Raw is one contract read result before normalization. Positional
// always holds the full return tuple in ABI order; Named holds only the
// outputs the contract ABI gives names to (older generations name few
// or none of their outputs).
type Raw struct {
	Named      map[string]interface{}
	Positional []interface{}
}

// lookup reads a field by ABI name first, then by positional index.
func (r Raw) lookup(name string, index int) (interface{}, bool) {
	if name != "" {
		if v, ok := r.Named[name]; ok {
			return v, true
		}
	}
	if index >= 0 && index < len(r.Positional) {
		return r.Positional[index], true
	}
	return nil, false
}

// Normalizer converts one version's raw shape into the canonical state.
type Normalizer interface {
	Normalize(raw Raw) (*domain.OnchainCampaignState, error)
}

// ForVersion returns the normalizer for a contract generation.
func ForVersion(v domain.ContractVersion) (Normalizer, error) {
	switch v {
	case domain.VersionV1:
		return legacyV1, nil
	case domain.VersionV2:
		return legacyV2, nil
	case domain.VersionV3:
		return legacyV3, nil
	case domain.VersionV4:
		return modern{}, nil
	}
	return nil, fmt.Errorf("no decoder for contract version %q", v)
}

var weiPerNative = new(big.Float).SetFloat64(1e18)

// weiToNative converts a native-wei integer to a display float. The
// precision loss is acceptable for USD display; the value is never fed
// back into a contract call.
func weiToNative(wei *big.Int) float64 {
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerNative).Float64()
	return f
}

func asString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("want string, got %T", v)
	}
	return s, nil
}

func asBigInt(v interface{}) (*big.Int, error) {
	n, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("want *big.Int, got %T", v)
	}
	return n, nil
}

func asBool(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("want bool, got %T", v)
	}
	return b, nil
}

func ptr[T any](v T) *T { return &v }
