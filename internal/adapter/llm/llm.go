package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
)

// Completer turns a system instruction and a prompt into generated text.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// New returns the completer for cfg.Provider, or nil when suggestions are disabled.
func New(cfg config.LLMConfig, logger *slog.Logger) (Completer, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg, logger), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg, logger), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
