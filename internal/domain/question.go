package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmptyQuestionText replaces a question text the marketplace sent empty.
const EmptyQuestionText = "Sin texto"

// Question is a buyer question on a product. Each question belongs to
// exactly one product and is keyed by its marketplace id.
type Question struct {
	ID         uuid.UUID
	ExternalID int64
	ProductID  uuid.UUID
	Text       string
	Status     QuestionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsAnswered reports whether the question was already replied to.
func (q *Question) IsAnswered() bool {
	return q.Status == QuestionStatusAnswered
}
