package llm

import "strings"

// OllamaProvider talks to a local Ollama through its OpenAI-compatible /v1
// endpoints. No API key is sent.
type OllamaProvider struct {
	*OpenAIProvider
}

func NewOllamaProvider(host, model string) *OllamaProvider {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = "qwen2.5:3b"
	}
	return &OllamaProvider{
		OpenAIProvider: newCompatible("ollama", strings.TrimRight(host, "/")+"/v1", "", model),
	}
}
