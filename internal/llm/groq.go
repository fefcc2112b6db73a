package llm

type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(apiKey, model string) *GroqProvider {
	if model == "" {
		model = "llama-3.1-8b-instant"
	}
	return &GroqProvider{
		OpenAIProvider: newCompatible("groq", "https://api.groq.com/openai/v1", apiKey, model),
	}
}
