package dialogue

import (
	"context"
	"fmt"
	"strings"
)

// FallbackReply is served when no completion service is configured or the
// service is unavailable.
const FallbackReply = "Your coach is taking a quick break. In the meantime, remember that spreading money across asset classes softens the swings, and that even small fees add up over a long horizon."

const systemPrompt = "You are the investing coach inside a personal finance education game. " +
	"Explain portfolio simulation outcomes to teenagers in plain, encouraging language. " +
	"Keep replies under 120 words. Never give real investment advice, never recommend " +
	"specific securities, and remind players that simulations are illustrative."

// Logger is the logging surface the coach needs.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// Coach turns simulation outcomes into plain-language explanations. A nil
// completer or a failed completion degrades to FallbackReply instead of an
// error, so the game flow never blocks on the AI service.
type Coach struct {
	completer Completer
	logger    Logger
}

// NewCoach creates a coach. completer may be nil.
func NewCoach(completer Completer) *Coach {
	return &Coach{completer: completer, logger: nopLogger{}}
}

// SetLogger sets the coach logger. If nil is provided, a no-op logger is used.
func (c *Coach) SetLogger(l Logger) {
	if l == nil {
		c.logger = nopLogger{}
		return
	}
	c.logger = l
}

// Explain answers a player's question, optionally grounded in a summary of
// their latest simulation. The boolean reports whether the reply came from
// the AI service or the fallback.
func (c *Coach) Explain(ctx context.Context, question, summary string) (string, bool) {
	if c.completer == nil {
		return FallbackReply, false
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Player question: %s\n", question)
	if summary != "" {
		fmt.Fprintf(&user, "Their latest simulation: %s\n", summary)
	}

	reply, err := c.completer.Complete(ctx, systemPrompt, user.String())
	if err != nil {
		c.logger.Warnf("coach completion failed, serving fallback: %v", err)
		return FallbackReply, false
	}
	if reply == "" {
		return FallbackReply, false
	}

	c.logger.Debugf("coach reply generated (%d chars)", len(reply))
	return reply, true
}
