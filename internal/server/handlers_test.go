package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincity/investing-engine/internal/config"
	"github.com/fincity/investing-engine/internal/dialogue"
	"github.com/fincity/investing-engine/internal/gamestate"
	"github.com/fincity/investing-engine/internal/models"
	"github.com/fincity/investing-engine/internal/simulation"
	"github.com/fincity/investing-engine/pkg/logging"
)

func newTestServer(t *testing.T, completer dialogue.Completer) *Server {
	t.Helper()

	cfg := config.Default()
	engine := simulation.NewEngine()
	store := gamestate.NewMemoryStore(time.Minute)
	coach := dialogue.NewCoach(completer)
	logger := logging.Nop()

	handlers := NewHandlers(cfg, engine, store, coach, logger)
	return New(cfg, handlers, logger)
}

func postJSON(t *testing.T, srv *Server, path string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func getPath(t *testing.T, srv *Server, path string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func simulateBody() map[string]any {
	return map[string]any{
		"profile":        "balanced",
		"startValue":     10000,
		"years":          10,
		"contribMonthly": 0,
		"feesBps":        0,
		"rebalance":      "none",
		"seed":           "test1",
	}
}

func TestSimulateEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, data := postJSON(t, srv, "/api/investing/simulate", simulateBody(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out models.SimulateResponse
	require.NoError(t, json.Unmarshal(data, &out))

	assert.True(t, out.Success)
	assert.Len(t, out.Path, 120)
	assert.Equal(t, 1, out.Path[0].Month)
	assert.Equal(t, 120, out.Path[119].Month)
	assert.Equal(t, "balanced", out.Meta.Profile)
	assert.Equal(t, simulation.SeedFromString("test1"), out.Meta.Seed)
	assert.NotEmpty(t, out.Meta.Disclaimer)
	assert.Positive(t, out.Stats.EndValue)
	assert.NotNil(t, out.Trades)
}

func TestSimulateEndpointIsReproducible(t *testing.T) {
	srv := newTestServer(t, nil)

	_, first := postJSON(t, srv, "/api/investing/simulate", simulateBody(), nil)
	_, second := postJSON(t, srv, "/api/investing/simulate", simulateBody(), nil)

	var a, b models.SimulateResponse
	require.NoError(t, json.Unmarshal(first, &a))
	require.NoError(t, json.Unmarshal(second, &b))

	assert.Equal(t, a.Stats.EndValue, b.Stats.EndValue)
	assert.Equal(t, a.Path, b.Path)
}

func TestSimulateEndpointMintsSeedWhenAbsent(t *testing.T) {
	srv := newTestServer(t, nil)

	body := simulateBody()
	delete(body, "seed")

	resp, data := postJSON(t, srv, "/api/investing/simulate", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.SimulateResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.NotZero(t, out.Meta.Seed, "minted seed must be echoed for replay")
}

func TestSimulateEndpointValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"years zero", func(b map[string]any) { b["years"] = 0 }},
		{"years too long", func(b map[string]any) { b["years"] = 41 }},
		{"zero start value", func(b map[string]any) { b["startValue"] = 0 }},
		{"negative contribution", func(b map[string]any) { b["contribMonthly"] = -5 }},
		{"fees above cap", func(b map[string]any) { b["feesBps"] = 10001 }},
		{"unknown profile", func(b map[string]any) { b["profile"] = "degen" }},
		{"unknown rebalance", func(b map[string]any) { b["rebalance"] = "daily" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := simulateBody()
			tt.mutate(body)

			resp, data := postJSON(t, srv, "/api/investing/simulate", body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var out models.ErrorResponse
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, http.StatusBadRequest, out.Code)
			assert.NotEmpty(t, out.Message)
		})
	}
}

func TestSimulateEndpointRejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/investing/simulate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMonteCarloEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	body := simulateBody()
	body["runs"] = 100
	body["targetAmount"] = 20000

	resp, data := postJSON(t, srv, "/api/investing/montecarlo", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out models.MonteCarloResponse
	require.NoError(t, json.Unmarshal(data, &out))

	assert.True(t, out.Success)
	assert.Equal(t, 100, out.Runs)
	assert.Len(t, out.Bands, 120)
	require.NotNil(t, out.SuccessProb)
	prob := *out.SuccessProb
	assert.GreaterOrEqual(t, prob, 0.0)
	assert.LessOrEqual(t, prob, 1.0)

	// With 100 runs the probability is an exact count over 100.
	assert.InDelta(t, math.Round(prob*100), prob*100, 1e-9)

	for _, band := range out.Bands {
		assert.LessOrEqual(t, band.P10, band.P50, "month %d", band.Month)
		assert.LessOrEqual(t, band.P50, band.P90, "month %d", band.Month)
	}
}

func TestMonteCarloEndpointOmitsSuccessProbWithoutTarget(t *testing.T) {
	srv := newTestServer(t, nil)

	body := simulateBody()
	body["runs"] = 20

	resp, data := postJSON(t, srv, "/api/investing/montecarlo", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.MonteCarloResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Nil(t, out.SuccessProb)
	assert.NotContains(t, string(data), "successProb")
}

func TestMonteCarloEndpointRunLimits(t *testing.T) {
	srv := newTestServer(t, nil)

	body := simulateBody()
	body["runs"] = 0
	resp, _ := postJSON(t, srv, "/api/investing/montecarlo", body, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body["runs"] = 10001
	resp, data := postJSON(t, srv, "/api/investing/montecarlo", body, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out models.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Contains(t, out.Message, "runs")
}

func TestCoachEndpointSources(t *testing.T) {
	t.Run("ai reply", func(t *testing.T) {
		srv := newTestServer(t, dialogue.CompleterFunc(func(context.Context, string, string) (string, error) {
			return "Diversification spreads your risk.", nil
		}))

		resp, data := postJSON(t, srv, "/api/coach", models.CoachRequest{Question: "why diversify?"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out models.CoachResponse
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, "ai", out.Source)
		assert.Equal(t, "Diversification spreads your risk.", out.Reply)
		assert.NotEmpty(t, out.Disclaimer)
	})

	t.Run("fallback on failure", func(t *testing.T) {
		srv := newTestServer(t, dialogue.CompleterFunc(func(context.Context, string, string) (string, error) {
			return "", errors.New("service down")
		}))

		resp, data := postJSON(t, srv, "/api/coach", models.CoachRequest{Question: "why diversify?"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, "coach must degrade, not fail")

		var out models.CoachResponse
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, "fallback", out.Source)
		assert.Equal(t, dialogue.FallbackReply, out.Reply)
	})

	t.Run("question required", func(t *testing.T) {
		srv := newTestServer(t, nil)
		resp, _ := postJSON(t, srv, "/api/coach", models.CoachRequest{}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPlayerStateFlow(t *testing.T) {
	srv := newTestServer(t, nil)
	headers := map[string]string{playerHeader: "player-7"}

	// No header: rejected.
	resp, _ := getPath(t, srv, "/api/investing/state", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown player: 404.
	resp, _ = getPath(t, srv, "/api/investing/state", headers)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A simulation with the header records activity and awards XP.
	resp, _ = postJSON(t, srv, "/api/investing/simulate", simulateBody(), headers)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data := getPath(t, srv, "/api/investing/state", headers)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool            `json:"success"`
		State   gamestate.State `json:"state"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "player-7", out.State.PlayerID)
	assert.Equal(t, gamestate.XPSimulate, out.State.XP)
	require.Len(t, out.State.Activities, 1)
	assert.Equal(t, "simulate", out.State.Activities[0].Kind)
}

func TestHealthAndRoot(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, data := getPath(t, srv, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health models.HealthResponse
	require.NoError(t, json.Unmarshal(data, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, Version, health.Version)

	resp, data = getPath(t, srv, "/health/ready", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ready struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(data, &ready))
	assert.Equal(t, "ready", ready.Status)
	assert.Equal(t, "ok", ready.Checks["engine"])

	resp, data = getPath(t, srv, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "investing_")

	resp, _ = getPath(t, srv, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfilesEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, data := getPath(t, srv, "/api/investing/profiles", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success  bool `json:"success"`
		Profiles []struct {
			Name string        `json:"name"`
			Mix  models.MixDTO `json:"mix"`
		} `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Success)
	assert.Len(t, out.Profiles, 3)
}
