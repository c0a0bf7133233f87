package domain

import (
	"time"

	"github.com/google/uuid"
)

// Answer is a reply posted by a seller. Answers are immutable once stored.
type Answer struct {
	ID          uuid.UUID
	QuestionID  uuid.UUID
	UserID      uuid.UUID
	Text        string
	Sent        bool
	AIGenerated bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
