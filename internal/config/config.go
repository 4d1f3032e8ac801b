// Package config holds the immutable process configuration. It is built
// once at startup from flags and environment and passed by value into
// constructors; no component reads the environment after boot.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when a flag or env var is unset.
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultReadConcurrency = 8
	DefaultListenAddr      = ":8080"
)

// ChainConfig describes one supported blockchain network.
type ChainConfig struct {
	ChainID                int64
	RPCEndpoint            string
	DefaultContractAddress string // fallback when a cached record carries no address
	EthereumFamily         bool   // selects which of the two USD rates applies
}

// Config is the full engine configuration.
type Config struct {
	Chains []ChainConfig

	// Two static conversion rates, loaded at startup. EthereumUsdRate
	// applies to Ethereum-family chains, NativeUsdRate to everything else.
	NativeUsdRate   float64
	EthereumUsdRate float64

	// ReadTimeout bounds each individual on-chain read.
	ReadTimeout time.Duration
	// ReadConcurrency bounds the per-request on-chain fan-out.
	ReadConcurrency int

	ListenAddr string
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if len(c.Chains) == 0 {
		return fmt.Errorf("no chains configured")
	}
	seen := make(map[int64]bool, len(c.Chains))
	for _, ch := range c.Chains {
		if ch.ChainID <= 0 {
			return fmt.Errorf("invalid chain id %d", ch.ChainID)
		}
		if seen[ch.ChainID] {
			return fmt.Errorf("duplicate chain id %d", ch.ChainID)
		}
		seen[ch.ChainID] = true
		if ch.RPCEndpoint == "" {
			return fmt.Errorf("chain %d: missing rpc endpoint", ch.ChainID)
		}
	}
	if c.NativeUsdRate <= 0 {
		return fmt.Errorf("native usd rate must be positive, got %v", c.NativeUsdRate)
	}
	if c.EthereumUsdRate <= 0 {
		return fmt.Errorf("ethereum usd rate must be positive, got %v", c.EthereumUsdRate)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", c.ReadTimeout)
	}
	if c.ReadConcurrency <= 0 {
		return fmt.Errorf("read concurrency must be positive, got %d", c.ReadConcurrency)
	}
	return nil
}

// ParseChains parses a chain list of the form
//
//	chainID=rpcURL|defaultContract|family[;chainID=...]
//
// where family is "eth" for Ethereum-family chains or "native". The
// default contract may be empty.
func ParseChains(spec string) ([]ChainConfig, error) {
	var chains []ChainConfig
	for _, entry := range strings.Split(spec, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, rest, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid chain entry %q: missing '='", entry)
		}
		chainID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chain id in %q: %w", entry, err)
		}

		parts := strings.Split(rest, "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid chain entry %q: want rpcURL|contract|family", entry)
		}

		var family bool
		switch strings.ToLower(strings.TrimSpace(parts[2])) {
		case "eth":
			family = true
		case "native":
			family = false
		default:
			return nil, fmt.Errorf("invalid chain family %q: want eth or native", parts[2])
		}

		chains = append(chains, ChainConfig{
			ChainID:                chainID,
			RPCEndpoint:            strings.TrimSpace(parts[0]),
			DefaultContractAddress: strings.ToLower(strings.TrimSpace(parts[1])),
			EthereumFamily:         family,
		})
	}
	if len(chains) == 0 {
		return nil, fmt.Errorf("empty chain spec")
	}
	return chains, nil
}
