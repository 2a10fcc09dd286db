package factory

import (
	"fmt"
	"time"

	"retro-board-be/pkg/llm"
	"retro-board-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, host string, timeout time.Duration) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama", "":
		return ollama.NewOllamaProvider(host, modelName, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
