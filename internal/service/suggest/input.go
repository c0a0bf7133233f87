package suggest

import (
	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// GenerateInput identifies the question to draft answers for.
type GenerateInput struct {
	QuestionID uuid.UUID
	// ExternalQuestionID is optional; when set it must match the stored question.
	ExternalQuestionID int64
}

// Validate validates the generate input.
func (i GenerateInput) Validate() error {
	if i.QuestionID == uuid.Nil {
		return domain.NewValidationError("question_id", "required")
	}
	if i.ExternalQuestionID < 0 {
		return domain.NewValidationError("ml_question_id", "must be positive")
	}
	return nil
}

// Suggestion holds three drafted answers and the prompt that produced them.
type Suggestion struct {
	OptionA    string `json:"option_a"`
	OptionB    string `json:"option_b"`
	OptionC    string `json:"option_c"`
	PromptUsed string `json:"prompt_used"`
}
