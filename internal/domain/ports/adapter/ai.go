package adapter

import "context"

// Message is the provider-neutral chat message shape.
type Message struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// AIResponder is the port for reply generation. history is the prior
// conversation (oldest first, excluding the new input); input is the raw
// new user text. Implementations may fail with any error; the caller has
// no retry obligation.
type AIResponder interface {
	GenerateResponse(ctx context.Context, history []Message, input string) (string, error)
}
