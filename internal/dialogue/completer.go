// Package dialogue generates coach explanations for simulation outcomes.
package dialogue

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/fincity/investing-engine/internal/domain"
)

// Completer produces a text completion for a system/user prompt pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, system, user string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}

// OpenAIClient implements Completer against the OpenAI chat API with a
// retry pipeline around each call.
type OpenAIClient struct {
	cli     oa.Client
	model   oa.ChatModel
	exec    failsafe.Executor[string]
	timeout time.Duration
}

// NewOpenAIClient creates a completer for the given model. Transient network
// failures are retried with backoff up to maxRetries times.
func NewOpenAIClient(apiKey, model string, timeout time.Duration, maxRetries int) *OpenAIClient {
	retryPolicy := retrypolicy.NewBuilder[string]().
		HandleIf(func(_ string, err error) bool { return err != nil }).
		WithBackoff(200*time.Millisecond, 2*time.Second).
		WithMaxRetries(maxRetries).
		Build()

	return &OpenAIClient{
		cli:     oa.NewClient(option.WithAPIKey(apiKey)),
		model:   oa.ChatModel(model),
		exec:    failsafe.With[string](retryPolicy),
		timeout: timeout,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.exec.GetWithExecution(func(_ failsafe.Execution[string]) (string, error) {
		resp, err := c.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
			Model: c.model,
			Messages: []oa.ChatCompletionMessageParamUnion{
				oa.SystemMessage(system),
				oa.UserMessage(user),
			},
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("empty completion response")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
	if err != nil {
		return "", &domain.UpstreamServiceError{Service: "openai", Err: err}
	}
	return reply, nil
}
