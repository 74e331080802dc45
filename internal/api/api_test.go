package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huangsam/gridiron/core/agg"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	snap, err := agg.LoadSnapshot("../../testdata/league.json")
	require.NoError(t, err)
	cfg := &contract.Config{
		Format:      schema.DefaultFormat,
		Position:    schema.AllPositions,
		ResultLimit: 50,
		Workers:     2,
		Season:      2024,
		Consensus:   true,
	}
	return NewRouter(cfg, nil, snap)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestRouter(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(14), body["players"])
}

func TestRankings(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCount  int
		wantFormat string
	}{
		{"defaults", "/api/rankings", http.StatusOK, 14, "ppr/4pt"},
		{"position and limit", "/api/rankings?position=wr&limit=2", http.StatusOK, 2, "ppr/4pt"},
		{"format override", "/api/rankings?format=half&td_pts=6", http.StatusOK, 14, "half/6pt"},
		{"bad format", "/api/rankings?format=dynasty", http.StatusBadRequest, 0, ""},
		{"bad limit", "/api/rankings?limit=ten", http.StatusBadRequest, 0, ""},
		{"bad td points", "/api/rankings?td_pts=5", http.StatusBadRequest, 0, ""},
		{"negative td points", "/api/rankings?td_pts=-4", http.StatusBadRequest, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				var errResp errorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tt.wantStatus, errResp.Code)
				assert.NotEmpty(t, errResp.RequestID)
				return
			}
			var body struct {
				Format  string                `json:"format"`
				Count   int                   `json:"count"`
				Players []schema.RankedPlayer `json:"players"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantFormat, body.Format)
			assert.Equal(t, tt.wantCount, body.Count)
			assert.Len(t, body.Players, tt.wantCount)
		})
	}
}

func TestPlayer(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/api/players/4429795")
	require.Equal(t, http.StatusOK, rec.Code)
	var player schema.RankedPlayer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &player))
	assert.Equal(t, "Jahmyr Gibbs", player.Name)
	assert.True(t, player.HasData)

	rec = get(t, h, "/api/players/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, h, "/api/players/4429795?format=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeights(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/weights")
	require.Equal(t, http.StatusOK, rec.Code)
	var model schema.WeightsRenderModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &model))
	assert.Len(t, model.Blends, 3)
}

func TestRequestIDPassthrough(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	newTestRouter(t).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestServe_Cancelled(t *testing.T) {
	cfg := &contract.Config{
		SnapshotFile: "../../testdata/league.json",
		Addr:         "127.0.0.1:0",
		Format:       schema.DefaultFormat,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, Serve(ctx, cfg, nil))
}
