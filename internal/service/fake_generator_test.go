package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// fakeGenerator replays a canned response and records the prompts it saw.
type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	delay    time.Duration
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	response, err, delay := f.response, f.err, f.delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return response, err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func fakeGateway(gen *fakeGenerator) *Gateway {
	return NewGatewayWithGenerator(gen, time.Second, zap.NewNop())
}

func offlineGateway() *Gateway {
	return NewUnavailableGateway(zap.NewNop())
}
