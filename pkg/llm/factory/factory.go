package factory

import (
	"fmt"

	"ai-lessonlab-be/pkg/llm"
	"ai-lessonlab-be/pkg/llm/ollama"
	"ai-lessonlab-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, openAIBaseURL, openAIKey, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(openAIBaseURL, openAIKey, modelName), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
