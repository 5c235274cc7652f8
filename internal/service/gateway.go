package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rfp-desk/pkg/config"

	"go.uber.org/zap"
)

const defaultGatewayTimeout = 20 * time.Second

// Gateway guards the text generation capability. Availability is fixed at
// construction and read-only afterwards, so it is safe to share between
// concurrent extractions.
type Gateway struct {
	generator TextGenerator
	available bool
	timeout   time.Duration
	logger    *zap.Logger
}

// NewGateway builds the GigaChat gateway when credentials are configured.
// A missing key or a failed client construction yields an unavailable
// gateway; the process then runs on heuristics only.
func NewGateway(cfg *config.GigaChatConfig, logger *zap.Logger) (*Gateway, func()) {
	if !cfg.Configured() {
		logger.Warn("GIGACHAT_API_KEY not set, extraction runs in heuristic mode")
		return NewUnavailableGateway(logger), func() {}
	}

	llm, err := NewLLMService(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize LLM service, extraction runs in heuristic mode", zap.Error(err))
		return NewUnavailableGateway(logger), func() {}
	}

	return NewGatewayWithGenerator(llm, cfg.Timeout, logger), func() { _ = llm.Close() }
}

// NewGatewayWithGenerator wraps an arbitrary generator. A nil generator
// produces an unavailable gateway.
func NewGatewayWithGenerator(generator TextGenerator, timeout time.Duration, logger *zap.Logger) *Gateway {
	if timeout <= 0 {
		timeout = defaultGatewayTimeout
	}
	return &Gateway{
		generator: generator,
		available: generator != nil,
		timeout:   timeout,
		logger:    logger,
	}
}

func NewUnavailableGateway(logger *zap.Logger) *Gateway {
	return NewGatewayWithGenerator(nil, 0, logger)
}

func (g *Gateway) Available() bool {
	return g != nil && g.available
}

// Generate runs one bounded call. It never retries.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.Available() {
		return "", ErrGatewayUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := g.generator.Generate(ctx, prompt)
		done <- result{text, err}
	}()

	select {
	case <-ctx.Done():
		// the generator may ignore ctx; do not wait for it
		return "", fmt.Errorf("%w: %w", ErrGatewayError, ctx.Err())
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, ErrGatewayUnavailable) {
				return "", r.err
			}
			return "", fmt.Errorf("%w: %w", ErrGatewayError, r.err)
		}
		return r.text, nil
	}
}
