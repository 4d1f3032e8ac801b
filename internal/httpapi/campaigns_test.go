package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-engine/internal/chainrpc"
	"campaign-engine/internal/chainrpc/stub"
	"campaign-engine/internal/config"
	"campaign-engine/internal/domain"
	"campaign-engine/internal/engine"
	"campaign-engine/internal/projection"
	"campaign-engine/internal/registry"
	"campaign-engine/internal/storage/memory"
)

const testContract = "0xabc0000000000000000000000000000000000001"

func newServer(t *testing.T) (*httptest.Server, *memory.CampaignStore, *stub.Reader) {
	t.Helper()

	cfg := config.Config{
		Chains: []config.ChainConfig{
			{ChainID: 137, RPCEndpoint: "http://localhost:8545", DefaultContractAddress: testContract},
		},
		NativeUsdRate:   1,
		EthereumUsdRate: 1,
	}

	campaigns := memory.NewCampaignStore()
	allowlist := memory.NewAllowlistStore()
	reader := stub.NewReader()
	require.NoError(t, allowlist.Insert(context.Background(), testContract))

	eng := engine.New(engine.Options{
		Campaigns: campaigns,
		Allowlist: allowlist,
		Tips:      memory.NewTipStore(),
		Updates:   memory.NewUpdateStore(),
		Registry:  registry.New(cfg),
		Reader:    reader,
	})
	t.Cleanup(eng.Close)

	srv := httptest.NewServer(NewController(eng, nil).NewRouter())
	t.Cleanup(srv.Close)
	return srv, campaigns, reader
}

func seedCampaign(t *testing.T, campaigns *memory.CampaignStore, campaignID, createdAt int64) {
	t.Helper()
	require.NoError(t, campaigns.Insert(context.Background(), &domain.CachedCampaignRecord{
		RecordID:        campaignID,
		CampaignID:      campaignID,
		ContractAddress: testContract,
		ChainID:         137,
		ContractVersion: domain.VersionV2,
		GoalUsd:         1000,
		MaxEditions:     100,
		EditionsSold:    2,
		Visible:         true,
		CreatedAt:       createdAt,
	}))
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestHandleList(t *testing.T) {
	srv, campaigns, _ := newServer(t)
	for i := int64(1); i <= 3; i++ {
		seedCampaign(t, campaigns, i, i*100)
	}

	var page projection.Page
	code := getJSON(t, srv.URL+"/list?limit=2", &page)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].CampaignID)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, 2, *page.NextCursor)

	// Follow the cursor to the last page.
	code = getJSON(t, srv.URL+"/list?limit=2&cursor=2", &page)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, page.Items, 1)
	assert.Nil(t, page.NextCursor)
}

func TestHandleListBadParams(t *testing.T) {
	srv, _, _ := newServer(t)

	for _, path := range []string{"/list?limit=0", "/list?limit=abc", "/list?cursor=-1"} {
		var body map[string]string
		code := getJSON(t, srv.URL+path, &body)
		assert.Equal(t, http.StatusBadRequest, code, path)
		assert.NotEmpty(t, body["error"], path)
	}
}

func TestHandleCampaign(t *testing.T) {
	srv, campaigns, reader := newServer(t)
	seedCampaign(t, campaigns, 7, 100)
	minted := int64(4)
	reader.SetState(7, &domain.OnchainCampaignState{EditionsMinted: &minted})

	var view domain.ReconciledCampaignView
	code := getJSON(t, srv.URL+"/campaign/7", &view)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(7), view.CampaignID)
	assert.Equal(t, int64(4), view.EditionsSold)
	assert.True(t, view.OnchainAvailable)
}

func TestHandleCampaignNotFound(t *testing.T) {
	srv, campaigns, reader := newServer(t)

	var body map[string]string
	code := getJSON(t, srv.URL+"/campaign/99", &body)
	assert.Equal(t, http.StatusNotFound, code)

	// A contract revert is also a 404.
	seedCampaign(t, campaigns, 7, 100)
	reader.SetError(7, chainrpc.ErrReverted)
	code = getJSON(t, srv.URL+"/campaign/7", &body)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHandleCampaignBadID(t *testing.T) {
	srv, _, _ := newServer(t)
	var body map[string]string
	code := getJSON(t, srv.URL+"/campaign/abc", &body)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandleCampaignChainOverride(t *testing.T) {
	srv, campaigns, _ := newServer(t)
	seedCampaign(t, campaigns, 7, 100)

	// Unknown chain id resolves nothing: misconfiguration, not 404.
	var body map[string]string
	code := getJSON(t, srv.URL+"/campaign/7?chainId=999", &body)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHandleHealth(t *testing.T) {
	srv, _, _ := newServer(t)
	var body map[string]string
	code := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}
