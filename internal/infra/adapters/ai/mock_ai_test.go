//go:build !integration

package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-chat-service/internal/domain/ports/adapter"
)

func TestMockAdapter_CannedReplies(t *testing.T) {
	ctx := context.Background()
	a := NewMockAdapter(0)

	reply, err := a.GenerateResponse(ctx, nil, "hello there")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(reply, "Hello") {
		t.Errorf("unexpected greeting reply: %q", reply)
	}

	reply, err = a.GenerateResponse(ctx, []adapter.Message{{Role: "user", Content: "earlier"}}, "something else entirely")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reply == "" {
		t.Error("expected a non-empty default reply")
	}
}

func TestMockAdapter_AlwaysFails(t *testing.T) {
	a := NewMockAdapter(1.0)
	_, err := a.GenerateResponse(context.Background(), nil, "hi")
	if !errors.Is(err, ErrSimulatedFailure) {
		t.Fatalf("expected ErrSimulatedFailure, got %v", err)
	}
}

func TestMockAdapter_ConcurrentCalls(t *testing.T) {
	a := NewMockAdapter(0.5)
	a.minDelay = 0
	a.maxDelay = time.Millisecond

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := a.GenerateResponse(context.Background(), nil, "hello"); err != nil && !errors.Is(err, ErrSimulatedFailure) {
				t.Errorf("generate: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestMockAdapter_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := NewMockAdapter(0)
	if _, err := a.GenerateResponse(ctx, nil, "hi"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
