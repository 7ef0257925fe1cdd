package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/fincity/investing-engine/internal/config"
	"github.com/fincity/investing-engine/internal/dialogue"
	"github.com/fincity/investing-engine/internal/domain"
	"github.com/fincity/investing-engine/internal/gamestate"
	"github.com/fincity/investing-engine/internal/metrics"
	"github.com/fincity/investing-engine/internal/models"
	"github.com/fincity/investing-engine/internal/simulation"
	"github.com/fincity/investing-engine/pkg/logging"
)

// playerHeader identifies the player for activity tracking. Requests without
// it still succeed; they just leave no trace in the game state.
const playerHeader = "x-player-id"

// Handlers holds the route implementations and their collaborators.
type Handlers struct {
	engine           *simulation.Engine
	store            gamestate.Store
	coach            *dialogue.Coach
	logger           *logging.Logger
	maxRuns          int
	simulateTimeout  time.Duration
	aggregateTimeout time.Duration
}

// NewHandlers wires the engine, game-state store and coach into HTTP handlers.
func NewHandlers(cfg *config.Config, engine *simulation.Engine, store gamestate.Store, coach *dialogue.Coach, logger *logging.Logger) *Handlers {
	return &Handlers{
		engine:           engine,
		store:            store,
		coach:            coach,
		logger:           logger,
		maxRuns:          cfg.Simulation.MaxRuns,
		simulateTimeout:  cfg.SimulateTimeout(),
		aggregateTimeout: cfg.AggregateTimeout(),
	}
}

// Health handles GET /health.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{Status: "ok", Version: Version})
}

// Ready handles GET /health/ready. The engine is pure CPU work, so readiness
// only checks the in-process collaborators.
func (h *Handlers) Ready(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ready",
		"checks": fiber.Map{
			"engine":    "ok",
			"gamestate": "ok",
		},
	})
}

// Profiles handles GET /api/investing/profiles.
func (h *Handlers) Profiles(c *fiber.Ctx) error {
	out := make([]fiber.Map, 0, len(domain.ProfileNames()))
	for _, name := range domain.ProfileNames() {
		profile, _ := domain.ProfileByName(name)
		out = append(out, fiber.Map{
			"name": name,
			"mix": models.MixDTO{
				Stocks: profile.Mix.Stocks.InexactFloat64(),
				Bonds:  profile.Mix.Bonds.InexactFloat64(),
				Cash:   profile.Mix.Cash.InexactFloat64(),
			},
		})
	}
	return c.JSON(fiber.Map{"success": true, "profiles": out})
}

// Simulate handles POST /api/investing/simulate.
func (h *Handlers) Simulate(c *fiber.Ctx) error {
	var req models.SimulateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    fiber.StatusBadRequest,
		})
	}

	params, err := req.ToParams()
	if err != nil {
		return h.respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.simulateTimeout)
	defer cancel()

	result, err := h.engine.Simulate(ctx, params)
	if err != nil {
		return h.respondError(c, err)
	}

	metrics.SimulationsTotal.WithLabelValues(result.Profile).Inc()
	h.recordActivity(c, "simulate",
		fmt.Sprintf("simulated %s portfolio over %d years", result.Profile, params.Years))

	return c.JSON(models.NewSimulateResponse(result))
}

// MonteCarlo handles POST /api/investing/montecarlo.
func (h *Handlers) MonteCarlo(c *fiber.Ctx) error {
	var req models.MonteCarloRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    fiber.StatusBadRequest,
		})
	}

	if req.Runs > h.maxRuns {
		return h.respondError(c, &domain.InvalidParamsError{
			Field:  "runs",
			Reason: fmt.Sprintf("must be at most %d, got %d", h.maxRuns, req.Runs),
		})
	}

	params, err := req.SimulateRequest.ToParams()
	if err != nil {
		return h.respondError(c, err)
	}

	var target *decimal.Decimal
	if req.TargetAmount != nil {
		d := decimal.NewFromFloat(*req.TargetAmount)
		target = &d
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.aggregateTimeout)
	defer cancel()

	result, err := h.engine.RunMonteCarlo(ctx, params, req.Runs, target)
	if err != nil {
		return h.respondError(c, err)
	}

	metrics.MonteCarloRunsTotal.Add(float64(result.Runs))
	h.recordActivity(c, "montecarlo",
		fmt.Sprintf("ran %d monte carlo paths on %s", result.Runs, result.Profile))

	return c.JSON(models.NewMonteCarloResponse(result))
}

// Coach handles POST /api/coach.
func (h *Handlers) Coach(c *fiber.Ctx) error {
	var req models.CoachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    fiber.StatusBadRequest,
		})
	}
	if req.Question == "" {
		return h.respondError(c, &domain.InvalidParamsError{Field: "question", Reason: "is required"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.simulateTimeout)
	defer cancel()

	reply, fromAI := h.coach.Explain(ctx, req.Question, req.Context)
	source := "fallback"
	if fromAI {
		source = "ai"
	}
	metrics.CoachRequestsTotal.WithLabelValues(source).Inc()
	h.recordActivity(c, "coach", "asked the coach a question")

	return c.JSON(models.CoachResponse{
		Success:    true,
		Reply:      reply,
		Source:     source,
		Disclaimer: domain.Disclaimer,
	})
}

// PlayerState handles GET /api/investing/state.
func (h *Handlers) PlayerState(c *fiber.Ctx) error {
	playerID := c.Get(playerHeader)
	if playerID == "" {
		return h.respondError(c, &domain.InvalidParamsError{Field: playerHeader, Reason: "header is required"})
	}

	state, err := h.store.Get(c.Context(), playerID)
	if errors.Is(err, gamestate.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error:   "Player state not found",
			Message: fmt.Sprintf("no activity recorded for player %q", playerID),
			Code:    fiber.StatusNotFound,
		})
	}
	if err != nil {
		return h.respondError(c, &domain.UpstreamServiceError{Service: "gamestate", Err: err})
	}

	return c.JSON(fiber.Map{"success": true, "state": state})
}

// recordActivity tracks the action against the player's game state when the
// player header is present. Failures are logged, never surfaced: losing an
// XP tick must not fail the simulation that earned it.
func (h *Handlers) recordActivity(c *fiber.Ctx, kind, summary string) {
	playerID := c.Get(playerHeader)
	if playerID == "" {
		return
	}

	if _, err := gamestate.RecordActivity(c.Context(), h.store, playerID, kind, summary); err != nil {
		h.logger.Warnf("failed to record %s activity for player %s: %v", kind, playerID, err)
	}
}

// respondError maps domain errors onto HTTP statuses.
func (h *Handlers) respondError(c *fiber.Ctx, err error) error {
	var invalidParams *domain.InvalidParamsError
	var invalidMix *domain.InvalidMixError
	var upstream *domain.UpstreamServiceError

	switch {
	case errors.As(err, &invalidParams):
		metrics.ErrorsTotal.WithLabelValues("invalid_params").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid parameters",
			Message: err.Error(),
			Code:    fiber.StatusBadRequest,
		})
	// A mix that fails after validation is a configuration bug, not user
	// input, so it surfaces as a 500 rather than a 400.
	case errors.As(err, &invalidMix):
		metrics.ErrorsTotal.WithLabelValues("invalid_mix").Inc()
		h.logger.Errorf("mix resolution failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Invalid asset mix",
			Message: err.Error(),
			Code:    fiber.StatusInternalServerError,
		})
	case errors.As(err, &upstream):
		metrics.ErrorsTotal.WithLabelValues("upstream").Inc()
		return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse{
			Error:   "Upstream service unavailable",
			Message: err.Error(),
			Code:    fiber.StatusBadGateway,
		})
	case errors.Is(err, context.DeadlineExceeded):
		metrics.ErrorsTotal.WithLabelValues("timeout").Inc()
		return c.Status(fiber.StatusGatewayTimeout).JSON(models.ErrorResponse{
			Error:   "Request timed out",
			Message: err.Error(),
			Code:    fiber.StatusGatewayTimeout,
		})
	default:
		metrics.ErrorsTotal.WithLabelValues("internal").Inc()
		h.logger.Errorf("request failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Internal error",
			Message: err.Error(),
			Code:    fiber.StatusInternalServerError,
		})
	}
}

// timed records request latency per endpoint.
func timed(endpoint string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		metrics.RequestDuration.
			WithLabelValues(endpoint, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}
