// Package registry resolves (chain id, contract version) pairs into
// everything a read needs: RPC endpoint, USD rate, default contract
// address, and the ABI output shape of that contract generation.
// Resolution is deterministic and does no I/O.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"campaign-engine/internal/config"
	"campaign-engine/internal/domain"
)

var (
	// ErrNoContractConfigured means neither an override, the cached
	// record, nor the chain default yields a contract address. Fails
	// closed: callers must not guess an address.
	ErrNoContractConfigured = errors.New("no contract configured")

	// ErrUnknownChain means the chain id is not in the process config.
	ErrUnknownChain = errors.New("unknown chain")

	// ErrUnknownVersion means the contract version label is not one of
	// the four supported generations.
	ErrUnknownVersion = errors.New("unknown contract version")
)

// Entry is one resolved registry lookup.
type Entry struct {
	ChainID                int64
	EthereumFamily         bool
	RPCEndpoint            string
	DefaultContractAddress string
	NativeToUsdRate        float64
	Version                domain.ContractVersion
	Outputs                abi.Arguments // getCampaign return shape for this generation
}

// Registry is the immutable chain/version lookup, built once at startup.
type Registry struct {
	chains  map[int64]config.ChainConfig
	native  float64
	ethRate float64
}

// New builds a registry from the process configuration.
func New(cfg config.Config) *Registry {
	chains := make(map[int64]config.ChainConfig, len(cfg.Chains))
	for _, ch := range cfg.Chains {
		chains[ch.ChainID] = ch
	}
	return &Registry{
		chains:  chains,
		native:  cfg.NativeUsdRate,
		ethRate: cfg.EthereumUsdRate,
	}
}

// Resolve returns the registry entry for one chain/version pair.
func (r *Registry) Resolve(chainID int64, version domain.ContractVersion) (Entry, error) {
	ch, ok := r.chains[chainID]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %d", ErrUnknownChain, chainID)
	}
	outputs, ok := campaignOutputs[version]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownVersion, version)
	}

	rate := r.native
	if ch.EthereumFamily {
		rate = r.ethRate
	}

	return Entry{
		ChainID:                ch.ChainID,
		EthereumFamily:         ch.EthereumFamily,
		RPCEndpoint:            ch.RPCEndpoint,
		DefaultContractAddress: ch.DefaultContractAddress,
		NativeToUsdRate:        rate,
		Version:                version,
		Outputs:                outputs,
	}, nil
}

// IsEthereumFamily reports which USD rate family a chain belongs to.
// Unknown chains report false.
func (r *Registry) IsEthereumFamily(chainID int64) bool {
	ch, ok := r.chains[chainID]
	return ok && ch.EthereumFamily
}

// ContractFor picks the contract address for a read: explicit override
// first, then the cached record's address, then the chain default.
// Returns ErrNoContractConfigured when all three are empty.
func (e Entry) ContractFor(override, cached string) (string, error) {
	for _, addr := range []string{override, cached, e.DefaultContractAddress} {
		if addr = strings.TrimSpace(addr); addr != "" {
			return strings.ToLower(addr), nil
		}
	}
	return "", fmt.Errorf("%w: chain %d version %s", ErrNoContractConfigured, e.ChainID, e.Version)
}
