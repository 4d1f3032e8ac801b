package httpapi

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"campaign-engine/internal/engine"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

var (
	errInvalidLimit  = errors.New("invalid limit value")
	errInvalidCursor = errors.New("invalid cursor value")
)

type pageSpec struct {
	Limit  int
	Cursor int
}

func parsePageSpec(r *http.Request) (pageSpec, error) {
	qs := r.URL.Query()
	limit := defaultLimit
	if v := qs.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err != nil || n <= 0 {
			return pageSpec{}, errInvalidLimit
		} else {
			limit = int(math.Min(float64(n), maxLimit))
		}
	}

	var cursor int
	if v := qs.Get("cursor"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return pageSpec{}, errInvalidCursor
		}
		cursor = n
	}

	return pageSpec{Limit: limit, Cursor: cursor}, nil
}

// HandleList serves the public campaign listing.
// Query parameters:
//   - limit: max number of results (default/max defined in parsePageSpec)
//   - cursor: offset to start from, as returned in nextCursor
func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := c.Engine.List(r.Context(), page.Cursor, page.Limit)
	if err != nil {
		c.Log.Error("list campaigns failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleCampaign serves one reconciled campaign view.
// Query parameters:
//   - contract: optional contract address override
//   - chainId: optional chain id override
func (c *Controller) HandleCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid campaign id")
		return
	}

	opts := engine.GetOptions{
		ContractAddress: r.URL.Query().Get("contract"),
	}
	if v := r.URL.Query().Get("chainId"); v != "" {
		chainID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid chainId value")
			return
		}
		opts.ChainID = chainID
	}

	view, err := c.Engine.Get(r.Context(), campaignID, opts)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrCampaignNotFound):
			writeError(w, http.StatusNotFound, "campaign not found")
		case errors.Is(err, engine.ErrNoContractConfigured):
			writeError(w, http.StatusServiceUnavailable, "no contract configured")
		default:
			c.Log.Error("get campaign failed", zap.Int64("campaignId", campaignID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "query failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, view)
}
