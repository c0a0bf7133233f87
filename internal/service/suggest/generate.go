package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

const (
	noDescription     = "Sin descripción disponible"
	noPreviousAnswers = "No hay respuestas anteriores disponibles para este producto."
)

// promptData is the template context.
type promptData struct {
	ProductTitle       string
	ProductDescription string
	AdditionalInfo     string
	PreviousAnswers    string
	QuestionText       string
}

// Generate drafts three answer options for a stored question.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Suggestion, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("suggest.Generate: %w", domain.ErrUnavailable)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	q, err := s.questions.GetByID(ctx, in.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("suggest.Generate: get question: %w", err)
	}
	if in.ExternalQuestionID != 0 && in.ExternalQuestionID != q.ExternalID {
		return nil, domain.NewValidationError("ml_question_id", "does not match question")
	}

	prompt, err := s.BuildPrompt(ctx, q)
	if err != nil {
		return nil, err
	}

	out, err := s.llm.Complete(ctx, systemMessage, prompt)
	if err != nil {
		s.log.ErrorContext(ctx, "completion failed",
			slog.String("question_id", q.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("suggest.Generate: %w: %w", domain.ErrUpstream, err)
	}

	a, b, c := SplitOptions(out)
	s.log.InfoContext(ctx, "suggestions generated", slog.String("question_id", q.ID.String()))

	return &Suggestion{OptionA: a, OptionB: b, OptionC: c, PromptUsed: prompt}, nil
}

// BuildPrompt renders the template for q. Answers already given to other
// questions of the same product are included as context.
func (s *Service) BuildPrompt(ctx context.Context, q *domain.Question) (string, error) {
	product, err := s.products.GetByID(ctx, q.ProductID)
	if err != nil {
		return "", fmt.Errorf("suggest.BuildPrompt: get product: %w", err)
	}

	previous, err := s.answers.ListByProduct(ctx, product.ID, s.maxPrev+1)
	if err != nil {
		return "", fmt.Errorf("suggest.BuildPrompt: list answers: %w", err)
	}

	data := promptData{
		ProductTitle:       product.Title,
		ProductDescription: product.Description,
		AdditionalInfo:     additionalInfo(product.Attributes),
		PreviousAnswers:    formatPrevious(previous, q, s.maxPrev),
		QuestionText:       q.Text,
	}
	if strings.TrimSpace(data.ProductTitle) == "" {
		data.ProductTitle = domain.UntitledProductTitle
	}
	if strings.TrimSpace(data.ProductDescription) == "" {
		data.ProductDescription = noDescription
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("suggest.BuildPrompt: render: %w", err)
	}
	return buf.String(), nil
}

func additionalInfo(attrs domain.ProductAttributes) string {
	if attrs == (domain.ProductAttributes{}) {
		return ""
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return ""
	}
	return "Información adicional: " + string(b)
}

func formatPrevious(answers []domain.Answer, current *domain.Question, limit int) string {
	lines := make([]string, 0, len(answers))
	for _, a := range answers {
		if a.QuestionID == current.ID {
			continue
		}
		lines = append(lines, "Pregunta similar: "+a.Text)
		if len(lines) == limit {
			break
		}
	}
	if len(lines) == 0 {
		return noPreviousAnswers
	}
	return strings.Join(lines, "\n")
}
