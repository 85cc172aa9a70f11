package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a single completion call. Temperature is always set by the
// pipeline; MaxTokens of 0 means provider default.
type ChatRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}
