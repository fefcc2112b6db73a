package llm

import (
	"context"
	"fmt"
)

// Provider is the interface all LLM providers must implement
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a completion request and returns the full response
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Ping checks if the provider is reachable
	Ping(ctx context.Context) error
}

// CompletionRequest represents a request to the LLM
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

// CompletionResponse represents the full response. Content is empty when the
// reply carried no text in any known shape; Raw keeps the body for diagnostics.
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
	Raw          []byte
}

// Usage tracks token usage
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// BodyError is returned when a 2xx reply is not a decodable completion.
type BodyError struct {
	Provider string
	Body     string
	Err      error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("%s returned an undecodable body: %v", e.Provider, e.Err)
}

func (e *BodyError) Unwrap() error { return e.Err }

// NewRequest creates a simple completion request
func NewRequest(model string, systemPrompt, userPrompt string) *CompletionRequest {
	return &CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}
