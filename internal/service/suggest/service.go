// Package suggest drafts answer options for buyer questions with a
// language model.
package suggest

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"text/template"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

//go:embed prompt.tmpl
var defaultTemplate string

const systemMessage = "Eres un asistente de ventas experto para MercadoLibre."

const defaultPreviousAnswers = 10

type questionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

type answerRepo interface {
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]domain.Answer, error)
}

type completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Config controls prompt construction.
type Config struct {
	// TemplatePath replaces the embedded template when set.
	TemplatePath    string
	PreviousAnswers int
}

// Service builds prompts from stored product and question data and splits
// model output into labelled options.
type Service struct {
	log       *slog.Logger
	questions questionRepo
	products  productRepo
	answers   answerRepo
	llm       completer
	tmpl      *template.Template
	maxPrev   int
}

// NewService parses the prompt template. A nil completer leaves the service
// disabled: Generate then fails with domain.ErrUnavailable.
func NewService(
	logger *slog.Logger,
	questions questionRepo,
	products productRepo,
	answers answerRepo,
	llm completer,
	cfg Config,
) (*Service, error) {
	text := defaultTemplate
	if cfg.TemplatePath != "" {
		b, err := os.ReadFile(cfg.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("suggest: read template: %w", err)
		}
		text = string(b)
	}

	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("suggest: parse template: %w", err)
	}

	maxPrev := cfg.PreviousAnswers
	if maxPrev <= 0 {
		maxPrev = defaultPreviousAnswers
	}

	return &Service{
		log:       logger.With("service", "suggest"),
		questions: questions,
		products:  products,
		answers:   answers,
		llm:       llm,
		tmpl:      tmpl,
		maxPrev:   maxPrev,
	}, nil
}

// Enabled reports whether a completion provider is configured.
func (s *Service) Enabled() bool {
	return s.llm != nil
}
