package llm

type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(apiKey, model string) *OpenRouterProvider {
	if model == "" {
		model = "openai/gpt-4o-mini"
	}
	return &OpenRouterProvider{
		OpenAIProvider: newCompatible("openrouter", "https://openrouter.ai/api/v1", apiKey, model),
	}
}
