package questions

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/marketplace"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// maxAnswerLength is the marketplace limit for a reply.
const maxAnswerLength = 2000

// SubmitAnswerInput holds the reply to post for one question.
type SubmitAnswerInput struct {
	QuestionID         uuid.UUID
	ExternalQuestionID int64
	Text               string
	AIGenerated        bool
}

// Validate validates the submit answer input.
func (i SubmitAnswerInput) Validate() error {
	var errs []domain.FieldError

	if i.QuestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "question_id", Message: "required"})
	}
	if i.ExternalQuestionID <= 0 {
		errs = append(errs, domain.FieldError{Field: "ml_question_id", Message: "required"})
	}

	text := strings.TrimSpace(i.Text)
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if utf8.RuneCountInString(text) > maxAnswerLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SyncResult summarises one synchronisation run.
type SyncResult struct {
	Fetched  int
	Created  int
	Existing int
	Skipped  int
	Failed   int
	// FailedIDs holds the marketplace ids counted in Failed.
	FailedIDs []int64
	// Questions maps marketplace question ids to local records.
	Questions map[int64]*domain.Question
	// Open lists the fetched questions that still need a reply, in marketplace order.
	Open []marketplace.Question
}

// GroupedQuestion is an unanswered question as shown on the dashboard.
type GroupedQuestion struct {
	ID                 uuid.UUID
	ExternalQuestionID int64
	ItemID             string
	Text               string
	DateCreated        string
}

// QuestionGroup collects the questions of one listing.
type QuestionGroup struct {
	Title     string
	Questions []GroupedQuestion
}

// BatchItemResult is the outcome of one answer in a batch.
type BatchItemResult struct {
	QuestionID uuid.UUID
	Success    bool
	Err        error
	Answer     *domain.Answer
}
