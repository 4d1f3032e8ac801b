// Package chainrpc issues best-effort reads of campaign state against
// the registry-resolved contracts. Failures are tagged, never
// propagated: callers fall back to cached data.
package chainrpc

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/puzpuzpuz/xsync/v4"

	"campaign-engine/internal/decode"
	"campaign-engine/internal/domain"
	"campaign-engine/internal/registry"
)

// getCampaign(uint256) selector, identical across all four generations.
var getCampaignID = crypto.Keccak256([]byte("getCampaign(uint256)"))[:4]

var uint256Arg = func() abi.Arguments {
	typ, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Type: typ}}
}()

// ClientKey identifies one contract caller.
type ClientKey struct {
	RPCEndpoint string
	Contract    string // lowercased
	ChainID     int64
	Version     domain.ContractVersion
}

// Arena memoizes stateless contract callers per process. It is a
// read-through cache of clients only: campaign data never outlives a
// request.
type Arena struct {
	clients *xsync.Map[string, *ethclient.Client] // keyed by RPC endpoint
	callers *xsync.Map[ClientKey, *contractCaller]
}

// NewArena creates an empty client arena.
func NewArena() *Arena {
	return &Arena{
		clients: xsync.NewMap[string, *ethclient.Client](),
		callers: xsync.NewMap[ClientKey, *contractCaller](),
	}
}

// Close releases every dialed client.
func (a *Arena) Close() {
	a.clients.Range(func(_ string, c *ethclient.Client) bool {
		c.Close()
		return true
	})
}

func (a *Arena) client(endpoint string) (*ethclient.Client, error) {
	if c, ok := a.clients.Load(endpoint); ok {
		return c, nil
	}
	c, err := ethclient.Dial(endpoint)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}
	actual, loaded := a.clients.LoadOrStore(endpoint, c)
	if loaded {
		c.Close()
	}
	return actual, nil
}

// caller returns the memoized caller for one (endpoint, contract,
// chain, version) tuple, constructing it on first use.
func (a *Arena) caller(entry registry.Entry, contract string) (*contractCaller, error) {
	key := ClientKey{
		RPCEndpoint: entry.RPCEndpoint,
		Contract:    contract,
		ChainID:     entry.ChainID,
		Version:     entry.Version,
	}
	if c, ok := a.callers.Load(key); ok {
		return c, nil
	}

	cli, err := a.client(entry.RPCEndpoint)
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(contract) {
		return nil, fmt.Errorf("invalid contract address %q", contract)
	}

	c := &contractCaller{
		client:  cli,
		address: common.HexToAddress(contract),
		outputs: entry.Outputs,
	}
	actual, _ := a.callers.LoadOrStore(key, c)
	return actual, nil
}

// contractCaller performs getCampaign eth_calls against one contract.
type contractCaller struct {
	client  *ethclient.Client
	address common.Address
	outputs abi.Arguments
}

// call reads one campaign and returns the raw shape for the decoder:
// the full positional tuple plus whatever outputs this generation's ABI
// names.
func (c *contractCaller) call(ctx context.Context, campaignID int64) (decode.Raw, error) {
	args, err := uint256Arg.Pack(big.NewInt(campaignID))
	if err != nil {
		return decode.Raw{}, fmt.Errorf("pack campaign id: %w", err)
	}
	data := append(append([]byte{}, getCampaignID...), args...)

	ret, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data}, nil)
	if err != nil {
		return decode.Raw{}, err
	}
	if len(ret) == 0 {
		// eth_call against a missing id (or an address with no code)
		// yields empty return data.
		return decode.Raw{}, ErrReverted
	}

	vals, err := c.outputs.Unpack(ret)
	if err != nil {
		return decode.Raw{}, fmt.Errorf("unpack getCampaign return: %w", err)
	}

	named := make(map[string]interface{}, len(c.outputs))
	for i, arg := range c.outputs {
		if arg.Name != "" && i < len(vals) {
			named[arg.Name] = vals[i]
		}
	}
	return decode.Raw{Named: named, Positional: vals}, nil
}
