package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
	"github.com/Redbeardred/Oberyn-v0.2/internal/service/suggest"
)

type suggestService interface {
	Generate(ctx context.Context, in suggest.GenerateInput) (*suggest.Suggestion, error)
}

// SuggestHandler serves AI answer suggestions.
type SuggestHandler struct {
	svc suggestService
	log *slog.Logger
}

// NewSuggestHandler creates a SuggestHandler.
func NewSuggestHandler(svc suggestService, logger *slog.Logger) *SuggestHandler {
	return &SuggestHandler{svc: svc, log: logger.With("handler", "suggest")}
}

type generateRequest struct {
	QuestionID   string `json:"question_id"`
	MLQuestionID int64  `json:"ml_question_id"`
}

type generateResponse struct {
	Suggestion *suggest.Suggestion `json:"suggestion"`
}

// Generate handles POST /api/generate-answers.
func (h *SuggestHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	in := suggest.GenerateInput{ExternalQuestionID: req.MLQuestionID}
	if req.QuestionID != "" {
		id, err := uuid.Parse(req.QuestionID)
		if err != nil {
			handleError(h.log, w, r, "error generating answers", domain.NewValidationError("question_id", "must be a valid UUID"))
			return
		}
		in.QuestionID = id
	}

	s, err := h.svc.Generate(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, "error generating answers", err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Suggestion: s})
}
