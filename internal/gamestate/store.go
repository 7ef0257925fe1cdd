// Package gamestate tracks per-player progress for the investing district.
package gamestate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fincity/investing-engine/internal/domain"
	"github.com/fincity/investing-engine/pkg/cache"
)

// ErrNotFound is returned when a player has no stored state.
var ErrNotFound = errors.New("player state not found")

// XP awarded per activity kind.
const (
	XPSimulate   = 10
	XPMonteCarlo = 25
	XPCoach      = 5
)

// maxActivities bounds the per-player activity log.
const maxActivities = 20

// Activity is one recorded action in the investing district.
type Activity struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Summary   string    `json:"summary"`
	XP        int       `json:"xp"`
	CreatedAt time.Time `json:"createdAt"`
}

// State is a player's investing-district progress.
type State struct {
	PlayerID    string     `json:"playerId"`
	XP          int        `json:"xp"`
	Level       int        `json:"level"`
	Simulations int        `json:"simulations"`
	MonteCarlos int        `json:"monteCarlos"`
	Activities  []Activity `json:"activities"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Store holds player state for the game backend. Implementations must be
// safe for concurrent use.
type Store interface {
	// Get returns the state for a player, or ErrNotFound.
	Get(ctx context.Context, playerID string) (*State, error)
	// Put stores a player's state.
	Put(ctx context.Context, state *State) error
	// Ensure returns the player's state, creating an empty one if absent.
	Ensure(ctx context.Context, playerID string) (*State, error)
}

// xpForKind maps an activity kind to its award.
func xpForKind(kind string) int {
	switch kind {
	case "simulate":
		return XPSimulate
	case "montecarlo":
		return XPMonteCarlo
	case "coach":
		return XPCoach
	}
	return 0
}

// levelFor derives the level from accumulated XP: one level per 100 XP.
func levelFor(xp int) int { return 1 + xp/100 }

// RecordActivity appends an activity to the player's log, awards XP and
// stores the updated state. A blank player id gets a fresh uuid so anonymous
// sessions still accumulate progress. The stored state is never mutated in
// place; a copy is written back so concurrent readers see a consistent value.
// Store failures surface as *domain.UpstreamServiceError so callers can
// treat them as non-fatal.
func RecordActivity(ctx context.Context, store Store, playerID, kind, summary string) (*State, error) {
	if playerID == "" {
		playerID = uuid.NewString()
	}

	state, err := store.Ensure(ctx, playerID)
	if err != nil {
		return nil, &domain.UpstreamServiceError{Service: "gamestate", Err: err}
	}

	activity := Activity{
		ID:        uuid.NewString(),
		Kind:      kind,
		Summary:   summary,
		XP:        xpForKind(kind),
		CreatedAt: time.Now().UTC(),
	}

	activities := make([]Activity, 0, len(state.Activities)+1)
	activities = append(activities, state.Activities...)
	activities = append(activities, activity)
	if len(activities) > maxActivities {
		activities = activities[len(activities)-maxActivities:]
	}

	next := *state
	next.Activities = activities
	next.XP = state.XP + activity.XP
	next.Level = levelFor(next.XP)
	next.UpdatedAt = activity.CreatedAt
	switch kind {
	case "simulate":
		next.Simulations++
	case "montecarlo":
		next.MonteCarlos++
	}

	if err := store.Put(ctx, &next); err != nil {
		return nil, &domain.UpstreamServiceError{Service: "gamestate", Err: err}
	}
	return &next, nil
}

// MemoryStore keeps player state in a TTL cache. Entries expire after the
// configured idle period; the game backend remains the durable system of
// record.
type MemoryStore struct {
	states *cache.Cache[string, *State]
}

// NewMemoryStore creates an in-memory store whose entries live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{states: cache.New[string, *State](ttl)}
}

func (s *MemoryStore) Get(ctx context.Context, playerID string) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state, ok := s.states.Get(playerID)
	if !ok {
		return nil, ErrNotFound
	}
	return state, nil
}

func (s *MemoryStore) Put(ctx context.Context, state *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.states.Set(state.PlayerID, state)
	return nil
}

func (s *MemoryStore) Ensure(ctx context.Context, playerID string) (*State, error) {
	state, err := s.Get(ctx, playerID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	state = &State{
		PlayerID:  playerID,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Put(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}
