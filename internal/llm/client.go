package llm

import (
	"context"
	"log/slog"
	"time"

	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/metrics"
)

// Completer sends one prompt to a model and returns the raw completion text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ExtractionClient wraps a Completer with the retry policy and per-call timeout.
type ExtractionClient struct {
	completer   Completer
	policy      RetryPolicy
	callTimeout time.Duration
	logger      *slog.Logger
	sleep       SleepFunc
}

var _ domain.ProfileExtractor = (*ExtractionClient)(nil)

func NewExtractionClient(completer Completer, policy RetryPolicy, callTimeout time.Duration, logger *slog.Logger) *ExtractionClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionClient{
		completer:   completer,
		policy:      policy.normalized(),
		callTimeout: callTimeout,
		logger:      logger,
		sleep:       sleepContext,
	}
}

// WithSleep replaces the backoff wait, used by tests to skip real delays
func (c *ExtractionClient) WithSleep(fn SleepFunc) *ExtractionClient {
	c.sleep = fn
	return c
}

// ExtractProfile prompts the model with the resume text and returns the decoded
// JSON object. Transient failures are retried under the policy; parse failures
// are returned at once.
func (c *ExtractionClient) ExtractProfile(ctx context.Context, resumeText string) (map[string]any, error) {
	prompt := BuildPrompt(resumeText)

	var lastErr error
	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, &domain.LLMInvocationError{Attempts: attempt - 1, Cause: err}
		}

		completion, err := c.invoke(ctx, prompt)
		if err == nil {
			return ParseCompletion(completion)
		}
		lastErr = err

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &domain.LLMInvocationError{Attempts: attempt, Cause: ctxErr}
		}
		if !IsTransient(err) {
			c.logger.Error("llm call failed", "attempt", attempt, "error", err)
			return nil, &domain.LLMInvocationError{Attempts: attempt, Cause: err}
		}
		if attempt == c.policy.MaxAttempts {
			break
		}

		wait := c.policy.Backoff(attempt)
		c.logger.Warn("llm call failed, retrying", "attempt", attempt, "backoff", wait, "error", err)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, &domain.LLMInvocationError{Attempts: attempt, Cause: err}
		}
	}

	c.logger.Error("llm retries exhausted", "attempts", c.policy.MaxAttempts, "error", lastErr)
	return nil, &domain.LLMInvocationError{Attempts: c.policy.MaxAttempts, Cause: lastErr}
}

func (c *ExtractionClient) invoke(ctx context.Context, prompt string) (string, error) {
	callCtx := ctx
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	start := time.Now()
	completion, err := c.completer.Complete(callCtx, prompt)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		metrics.ObserveLLMAttempt(metrics.OutcomeSuccess, elapsed)
		c.logger.Debug("llm call succeeded", "duration", elapsed)
	case IsTransient(err) && ctx.Err() == nil:
		metrics.ObserveLLMAttempt(metrics.OutcomeRetry, elapsed)
	default:
		metrics.ObserveLLMAttempt(metrics.OutcomeFailure, elapsed)
	}
	return completion, err
}
