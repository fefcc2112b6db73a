package llm

import "strings"

type CustomProvider struct {
	*OpenAIProvider
}

// NewCustomProvider targets any chat-completions endpoint. baseURL is the
// prefix before /chat/completions.
func NewCustomProvider(baseURL, apiKey, model string) *CustomProvider {
	return &CustomProvider{
		OpenAIProvider: newCompatible("custom", strings.TrimRight(baseURL, "/"), apiKey, model),
	}
}
