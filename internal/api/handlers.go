package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/gridiron/core"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/internal/outwriter"
	"github.com/huangsam/gridiron/schema"
	"github.com/sirupsen/logrus"
)

// handler holds common dependencies for the HTTP handlers.
type handler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	snap    *schema.LeagueSnapshot
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (h *handler) context(ctx context.Context) context.Context {
	return core.WithSnapshot(core.WithSuppressHeader(ctx), h.snap)
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	players := 0
	if h.snap != nil {
		players = len(h.snap.Players)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"players":   players,
		"timestamp": time.Now().UTC(),
	})
}

// rankings serves GET /api/rankings?format=&td_pts=&position=&limit=
func (h *handler) rankings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.queryConfig(r, true)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	ranked, err := core.GetRankingResults(h.context(r.Context()), cfg, h.mgr)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"format":  cfg.Format.String(),
		"count":   len(ranked),
		"players": ranked,
	})
}

// player serves GET /api/players/{id}?format=&td_pts=
func (h *handler) player(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.queryConfig(r, false)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	cfg.PlayerID = chi.URLParam(r, "id")

	player, err := core.GetPlayerResult(h.context(r.Context()), cfg, h.mgr)
	switch {
	case errors.Is(err, core.ErrPlayerNotFound):
		respondError(w, r, http.StatusNotFound, err)
	case err != nil:
		respondError(w, r, http.StatusBadRequest, err)
	default:
		respondJSON(w, http.StatusOK, player)
	}
}

func (h *handler) weights(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, outwriter.BuildWeightsRenderModel(h.baseCfg.ComputedWeights, h.baseCfg.Format))
}

// queryConfig clones the base config with the request's overrides.
func (h *handler) queryConfig(r *http.Request, withFilters bool) (*contract.Config, error) {
	q := r.URL.Query()
	tdPts, err := intParam(q.Get("td_pts"), "td_pts")
	if err != nil {
		return nil, err
	}
	if !withFilters {
		return h.baseCfg.CloneWithQuery(q.Get("format"), tdPts, "", 0)
	}
	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		return nil, err
	}
	return h.baseCfg.CloneWithQuery(q.Get("format"), tdPts, q.Get("position"), limit)
}

func intParam(value, name string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (received %q)", name, value)
	}
	return n, nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		contract.LogWarn("Failed to encode response", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := getRequestID(r.Context())
	if status >= http.StatusInternalServerError {
		contract.Logger().WithFields(logrus.Fields{"request_id": id, "path": r.URL.Path}).WithError(err).Error("Request failed")
	}
	respondJSON(w, status, errorResponse{
		Error:     http.StatusText(status),
		Message:   err.Error(),
		Code:      status,
		RequestID: id,
	})
}
