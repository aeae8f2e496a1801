package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sqlbridge/engine/pkg/config"
)

// NewCompleter builds the completion backend selected by configuration:
// "yandex" (default), "openai" for any OpenAI-compatible endpoint, or
// "debug" for the offline fixture backend.
func NewCompleter(cfg *config.ModelConfig, logger *zap.Logger) (Completer, error) {
	switch cfg.Provider {
	case "", "yandex":
		return NewYandexClient(&YandexConfig{
			Endpoint: cfg.Endpoint,
			APIKey:   cfg.APIKey,
			FolderID: cfg.FolderID,
		}, logger), nil
	case "openai":
		return NewOpenAIClient(&OpenAIConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.ModelName,
			APIKey:  cfg.APIKey,
		}, logger)
	case "debug":
		return DebugCompleter{}, nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
