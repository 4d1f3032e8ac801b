package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-engine/internal/config"
	"campaign-engine/internal/domain"
)

func testRegistry() *Registry {
	return New(config.Config{
		Chains: []config.ChainConfig{
			{ChainID: 137, RPCEndpoint: "https://polygon.example", DefaultContractAddress: "0xdefa01", EthereumFamily: false},
			{ChainID: 1, RPCEndpoint: "https://eth.example", EthereumFamily: true},
		},
		NativeUsdRate:   0.5,
		EthereumUsdRate: 2500,
	})
}

func TestResolve(t *testing.T) {
	r := testRegistry()

	entry, err := r.Resolve(137, domain.VersionV2)
	require.NoError(t, err)
	assert.Equal(t, int64(137), entry.ChainID)
	assert.Equal(t, "https://polygon.example", entry.RPCEndpoint)
	assert.Equal(t, 0.5, entry.NativeToUsdRate)
	assert.Equal(t, domain.VersionV2, entry.Version)
	assert.Len(t, entry.Outputs, 10)

	// Ethereum-family chains get the Ethereum rate.
	entry, err = r.Resolve(1, domain.VersionV4)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, entry.NativeToUsdRate)
	assert.True(t, entry.EthereumFamily)
}

func TestResolveUnknown(t *testing.T) {
	r := testRegistry()

	_, err := r.Resolve(999, domain.VersionV1)
	assert.True(t, errors.Is(err, ErrUnknownChain))

	_, err = r.Resolve(137, domain.ContractVersion("v9"))
	assert.True(t, errors.Is(err, ErrUnknownVersion))
}

func TestIsEthereumFamily(t *testing.T) {
	r := testRegistry()
	assert.True(t, r.IsEthereumFamily(1))
	assert.False(t, r.IsEthereumFamily(137))
	assert.False(t, r.IsEthereumFamily(999))
}

func TestContractFor(t *testing.T) {
	r := testRegistry()
	entry, err := r.Resolve(137, domain.VersionV1)
	require.NoError(t, err)

	// Override wins over cached and default, and is lowercased.
	addr, err := entry.ContractFor("0xAAA", "0xbbb")
	require.NoError(t, err)
	assert.Equal(t, "0xaaa", addr)

	// Cached wins over default.
	addr, err = entry.ContractFor("", "0xBBB")
	require.NoError(t, err)
	assert.Equal(t, "0xbbb", addr)

	// Chain default is the last resort.
	addr, err = entry.ContractFor("", "")
	require.NoError(t, err)
	assert.Equal(t, "0xdefa01", addr)
}

func TestContractForFailsClosed(t *testing.T) {
	r := testRegistry()
	entry, err := r.Resolve(1, domain.VersionV1) // chain 1 has no default contract
	require.NoError(t, err)

	_, err = entry.ContractFor("", "")
	assert.True(t, errors.Is(err, ErrNoContractConfigured))

	// Whitespace-only addresses do not count as configured.
	_, err = entry.ContractFor("  ", " ")
	assert.True(t, errors.Is(err, ErrNoContractConfigured))
}

func TestCampaignOutputsCoverAllVersions(t *testing.T) {
	for _, v := range []domain.ContractVersion{domain.VersionV1, domain.VersionV2, domain.VersionV3, domain.VersionV4} {
		_, ok := campaignOutputs[v]
		assert.True(t, ok, "missing outputs for %s", v)
	}
}
