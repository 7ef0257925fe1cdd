package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplainUsesCompleter(t *testing.T) {
	var gotSystem, gotUser string
	coach := NewCoach(CompleterFunc(func(_ context.Context, system, user string) (string, error) {
		gotSystem, gotUser = system, user
		return "Fees quietly eat into returns every single month.", nil
	}))

	reply, fromAI := coach.Explain(context.Background(), "why did fees hurt so much?", "balanced, 10 years, 50 bps")

	assert.True(t, fromAI)
	assert.Equal(t, "Fees quietly eat into returns every single month.", reply)
	assert.Contains(t, gotSystem, "investing coach")
	assert.Contains(t, gotUser, "why did fees hurt so much?")
	assert.Contains(t, gotUser, "balanced, 10 years, 50 bps")
}

func TestExplainFallsBackOnError(t *testing.T) {
	coach := NewCoach(CompleterFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("rate limited")
	}))

	reply, fromAI := coach.Explain(context.Background(), "what happened?", "")

	assert.False(t, fromAI)
	assert.Equal(t, FallbackReply, reply)
}

func TestExplainFallsBackWithoutCompleter(t *testing.T) {
	coach := NewCoach(nil)

	reply, fromAI := coach.Explain(context.Background(), "anything", "")

	assert.False(t, fromAI)
	assert.Equal(t, FallbackReply, reply)
}

func TestExplainFallsBackOnEmptyReply(t *testing.T) {
	coach := NewCoach(CompleterFunc(func(context.Context, string, string) (string, error) {
		return "", nil
	}))

	reply, fromAI := coach.Explain(context.Background(), "anything", "")

	assert.False(t, fromAI)
	assert.Equal(t, FallbackReply, reply)
}

func TestExplainOmitsEmptySummary(t *testing.T) {
	var gotUser string
	coach := NewCoach(CompleterFunc(func(_ context.Context, _, user string) (string, error) {
		gotUser = user
		return "ok", nil
	}))

	coach.Explain(context.Background(), "question", "")
	assert.False(t, strings.Contains(gotUser, "latest simulation"))
}
