package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Chains: []ChainConfig{
			{ChainID: 137, RPCEndpoint: "https://rpc.example", DefaultContractAddress: "0xabc", EthereumFamily: false},
		},
		NativeUsdRate:   0.42,
		EthereumUsdRate: 2400,
		ReadTimeout:     DefaultReadTimeout,
		ReadConcurrency: DefaultReadConcurrency,
		ListenAddr:      DefaultListenAddr,
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("no chains", func(t *testing.T) {
		cfg := validConfig()
		cfg.Chains = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("duplicate chain id", func(t *testing.T) {
		cfg := validConfig()
		cfg.Chains = append(cfg.Chains, cfg.Chains[0])
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing endpoint", func(t *testing.T) {
		cfg := validConfig()
		cfg.Chains[0].RPCEndpoint = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero rate", func(t *testing.T) {
		cfg := validConfig()
		cfg.EthereumUsdRate = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero timeout", func(t *testing.T) {
		cfg := validConfig()
		cfg.ReadTimeout = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestParseChains(t *testing.T) {
	chains, err := ParseChains("137=https://polygon.example|0xAbCd|native; 1=https://eth.example||eth")
	require.NoError(t, err)
	require.Len(t, chains, 2)

	assert.Equal(t, int64(137), chains[0].ChainID)
	assert.Equal(t, "https://polygon.example", chains[0].RPCEndpoint)
	// default contract is lowercased for allowlist/key comparisons
	assert.Equal(t, "0xabcd", chains[0].DefaultContractAddress)
	assert.False(t, chains[0].EthereumFamily)

	assert.Equal(t, int64(1), chains[1].ChainID)
	assert.Empty(t, chains[1].DefaultContractAddress)
	assert.True(t, chains[1].EthereumFamily)
}

func TestParseChainsErrors(t *testing.T) {
	cases := []struct {
		name string
		spec string
	}{
		{"empty", ""},
		{"missing equals", "137"},
		{"bad chain id", "abc=https://rpc|0x1|native"},
		{"missing parts", "137=https://rpc|0x1"},
		{"bad family", "137=https://rpc|0x1|btc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseChains(tc.spec)
			assert.Error(t, err)
		})
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, 5*time.Second, DefaultReadTimeout)
	assert.Equal(t, 8, DefaultReadConcurrency)
}
