// Package generator wraps the generative text service. Output is treated as
// untrusted text; callers parse and validate it before anything is stored.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	units "github.com/docker/go-units"
)

var (
	ErrGenerationTimeout = errors.New("generation timed out")
	ErrResponseTooLarge  = errors.New("generated response exceeds size limit")
	ErrUnavailable       = errors.New("generator unavailable")
)

// Client produces raw text for a prompt. sessionID groups related calls for
// providers that keep conversation state.
type Client interface {
	Generate(ctx context.Context, prompt, systemPrompt, sessionID string) (string, error)
}

// Func adapts a function to Client.
type Func func(ctx context.Context, prompt, systemPrompt, sessionID string) (string, error)

func (f Func) Generate(ctx context.Context, prompt, systemPrompt, sessionID string) (string, error) {
	return f(ctx, prompt, systemPrompt, sessionID)
}

// IsRetryable reports whether a failed call may succeed if repeated.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrGenerationTimeout) || errors.Is(err, ErrUnavailable)
}

type bounded struct {
	client  Client
	timeout time.Duration
	limit   int64
	logger  *slog.Logger
}

// Bound applies a per-call timeout and a response size limit to client. A
// zero timeout or limit disables that bound.
func Bound(client Client, timeout time.Duration, limit int64, logger *slog.Logger) Client {
	return &bounded{
		client:  client,
		timeout: timeout,
		limit:   limit,
		logger:  logger.With("system", "generator"),
	}
}

func (b *bounded) Generate(ctx context.Context, prompt, systemPrompt, sessionID string) (string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := b.client.Generate(ctx, prompt, systemPrompt, sessionID)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			b.logger.Warn("generation timed out", "session", sessionID, "elapsed", elapsed)
			return "", fmt.Errorf("%w after %s", ErrGenerationTimeout, elapsed.Round(time.Millisecond))
		}
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		if !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		b.logger.Error("generation failed", "session", sessionID, "error", err)
		return "", err
	}

	if b.limit > 0 && int64(len(text)) > b.limit {
		return "", fmt.Errorf("%w: %s > %s", ErrResponseTooLarge,
			units.HumanSize(float64(len(text))), units.HumanSize(float64(b.limit)))
	}

	b.logger.Debug("generation completed", "session", sessionID, "elapsed", elapsed, "bytes", len(text))
	return text, nil
}

// New builds the configured provider client and bounds it.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (Client, error) {
	var (
		client Client
		err    error
	)

	switch cfg.Provider {
	case ProviderAgents:
		client, err = NewAgents(cfg.AgentConfig)
	case ProviderOpenAI:
		client, err = NewOpenAI(ctx, cfg.BaseURL, cfg.Model, cfg.APIKey)
	default:
		err = fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	limit, err := cfg.MaxResponseBytes()
	if err != nil {
		return nil, err
	}

	logger.Info("generator configured", "provider", cfg.Provider, "timeout", cfg.TimeoutDuration(), "max_response_size", cfg.MaxResponseSize)
	return Bound(client, cfg.TimeoutDuration(), limit, logger), nil
}
