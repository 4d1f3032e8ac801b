package registry

import (
	"github.com/ethereum/go-ethereum/accounts/abi"

	"campaign-engine/internal/domain"
)

// getCampaign return shapes per contract generation.
//
// The three legacy generations return a flat positional tuple. Output
// names were only added to the interface over time: v1 ABIs carry no
// names at all, v2 names the financial fields, v3 names everything.
// The decoder therefore reads by name first and falls back to the
// positional index. v4 returns a fully named shape with different field
// names and integer-cent USD figures.

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

var (
	typString  = mustType("string")
	typUint256 = mustType("uint256")
	typBool    = mustType("bool")
)

// v1: category, uri, goal, grossRaised, editionsMinted, maxEditions,
// price, active. No output names.
var outputsV1 = abi.Arguments{
	{Type: typString},
	{Type: typString},
	{Type: typUint256},
	{Type: typUint256},
	{Type: typUint256},
	{Type: typUint256},
	{Type: typUint256},
	{Type: typBool},
}

// v2 adds netRaised (index 4) and closed (index 9); only the financial
// fields are named.
var outputsV2 = abi.Arguments{
	{Type: typString}, // category
	{Type: typString}, // uri
	{Name: "goal", Type: typUint256},
	{Name: "grossRaised", Type: typUint256},
	{Name: "netRaised", Type: typUint256},
	{Name: "editionsMinted", Type: typUint256},
	{Name: "maxEditions", Type: typUint256},
	{Name: "price", Type: typUint256},
	{Type: typBool}, // active
	{Type: typBool}, // closed
}

// v3 adds paused (index 9, shifting closed to 10) and names every output.
var outputsV3 = abi.Arguments{
	{Name: "category", Type: typString},
	{Name: "uri", Type: typString},
	{Name: "goal", Type: typUint256},
	{Name: "grossRaised", Type: typUint256},
	{Name: "netRaised", Type: typUint256},
	{Name: "editionsMinted", Type: typUint256},
	{Name: "maxEditions", Type: typUint256},
	{Name: "price", Type: typUint256},
	{Name: "active", Type: typBool},
	{Name: "paused", Type: typBool},
	{Name: "closed", Type: typBool},
}

// v4: renamed fields, goalUsd/priceUsd are integer cents.
var outputsV4 = abi.Arguments{
	{Name: "category", Type: typString},
	{Name: "metadataUri", Type: typString},
	{Name: "goalNative", Type: typUint256},
	{Name: "goalUsd", Type: typUint256},
	{Name: "grossNative", Type: typUint256},
	{Name: "netNative", Type: typUint256},
	{Name: "minted", Type: typUint256},
	{Name: "supplyCap", Type: typUint256},
	{Name: "priceNative", Type: typUint256},
	{Name: "priceUsd", Type: typUint256},
	{Name: "active", Type: typBool},
	{Name: "paused", Type: typBool},
	{Name: "closed", Type: typBool},
}

var campaignOutputs = map[domain.ContractVersion]abi.Arguments{
	domain.VersionV1: outputsV1,
	domain.VersionV2: outputsV2,
	domain.VersionV3: outputsV3,
	domain.VersionV4: outputsV4,
}
