package ai

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"ai-chat-service/internal/domain/ports/adapter"
)

var _ adapter.AIResponder = (*MockAdapter)(nil)

// ErrSimulatedFailure is returned when the mock decides a call fails.
var ErrSimulatedFailure = errors.New("mock: simulated API failure")

// MockAdapter is a dev/test responder. It simulates latency, fails a
// configurable fraction of calls, and replies with canned text keyed off
// the input.
type MockAdapter struct {
	failureRate float64
	minDelay    time.Duration
	maxDelay    time.Duration

	mu  sync.Mutex // guards rng; rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

func NewMockAdapter(failureRate float64) *MockAdapter {
	return &MockAdapter{
		failureRate: failureRate,
		minDelay:    50 * time.Millisecond,
		maxDelay:    250 * time.Millisecond,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (a *MockAdapter) GenerateResponse(ctx context.Context, history []adapter.Message, input string) (string, error) {
	a.mu.Lock()
	delay := a.minDelay + time.Duration(a.rng.Int63n(int64(a.maxDelay-a.minDelay)))
	fail := a.failureRate > 0 && a.rng.Float64() < a.failureRate
	a.mu.Unlock()

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if fail {
		return "", ErrSimulatedFailure
	}

	return cannedReply(input), nil
}

func cannedReply(input string) string {
	in := strings.ToLower(input)
	switch {
	case strings.Contains(in, "hello"), strings.Contains(in, "hi"):
		return "Hello! I'm a mock assistant. How can I help you today?"
	case strings.Contains(in, "how are you"):
		return "I'm doing well, thank you for asking! Always ready to help."
	case strings.Contains(in, "bye"), strings.Contains(in, "goodbye"):
		return "Goodbye! Have a great day!"
	default:
		return "This is a mock response. Configure a real provider key to get model-generated replies."
	}
}
