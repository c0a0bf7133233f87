package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
	"github.com/Redbeardred/Oberyn-v0.2/internal/service/questions"
)

type questionService interface {
	ListUnanswered(ctx context.Context) (map[string]*questions.QuestionGroup, error)
	SubmitAnswer(ctx context.Context, in questions.SubmitAnswerInput) (*domain.Answer, error)
	SubmitBatch(ctx context.Context, inputs []questions.SubmitAnswerInput) ([]questions.BatchItemResult, error)
}

// QuestionHandler serves the question dashboard endpoints.
type QuestionHandler struct {
	svc questionService
	log *slog.Logger
}

// NewQuestionHandler creates a QuestionHandler.
func NewQuestionHandler(svc questionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{svc: svc, log: logger.With("handler", "questions")}
}

type groupedQuestionResponse struct {
	ID           string `json:"id"`
	MLQuestionID int64  `json:"ml_question_id"`
	ItemID       string `json:"item_id"`
	Text         string `json:"text"`
	DateCreated  string `json:"date_created"`
}

type questionGroupResponse struct {
	Title     string                    `json:"title"`
	Questions []groupedQuestionResponse `json:"questions"`
}

type listQuestionsResponse struct {
	GroupedQuestions map[string]questionGroupResponse `json:"groupedQuestions"`
}

type answerRequest struct {
	QuestionID   string `json:"question_id"`
	MLQuestionID int64  `json:"ml_question_id"`
	Text         string `json:"text"`
	AIGenerated  bool   `json:"ai_generated"`
}

type bulkAnswerRequest struct {
	Answers []answerRequest `json:"answers"`
}

type answerResponse struct {
	ID          string    `json:"id"`
	QuestionID  string    `json:"question_id"`
	Text        string    `json:"text"`
	Sent        bool      `json:"sent"`
	AIGenerated bool      `json:"ai_generated"`
	CreatedAt   time.Time `json:"created_at"`
}

type submitAnswerResponse struct {
	Success bool           `json:"success"`
	Answer  answerResponse `json:"answer"`
}

type bulkItemResponse struct {
	QuestionID string          `json:"question_id"`
	Success    bool            `json:"success"`
	Error      string          `json:"error,omitempty"`
	Answer     *answerResponse `json:"answer,omitempty"`
}

type bulkAnswerResponse struct {
	Results   []bulkItemResponse `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

// List handles GET /api/questions.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ListUnanswered(r.Context())
	if err != nil {
		handleError(h.log, w, r, "error fetching questions", err)
		return
	}

	resp := listQuestionsResponse{GroupedQuestions: make(map[string]questionGroupResponse, len(groups))}
	for itemID, g := range groups {
		out := questionGroupResponse{
			Title:     g.Title,
			Questions: make([]groupedQuestionResponse, 0, len(g.Questions)),
		}
		for _, q := range g.Questions {
			out.Questions = append(out.Questions, groupedQuestionResponse{
				ID:           q.ID.String(),
				MLQuestionID: q.ExternalQuestionID,
				ItemID:       q.ItemID,
				Text:         q.Text,
				DateCreated:  q.DateCreated,
			})
		}
		resp.GroupedQuestions[itemID] = out
	}

	writeJSON(w, http.StatusOK, resp)
}

// Answer handles POST /api/answer.
func (h *QuestionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	in, err := req.toInput()
	if err != nil {
		handleError(h.log, w, r, "error submitting answer", err)
		return
	}

	a, err := h.svc.SubmitAnswer(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, "error submitting answer", err)
		return
	}

	writeJSON(w, http.StatusOK, submitAnswerResponse{Success: true, Answer: toAnswerResponse(a)})
}

// BulkAnswer handles POST /api/bulk-answer. Malformed items are reported
// per item; the response is 200 whenever the batch itself was accepted.
func (h *QuestionHandler) BulkAnswer(w http.ResponseWriter, r *http.Request) {
	var req bulkAnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	inputs := make([]questions.SubmitAnswerInput, len(req.Answers))
	parseErrs := make([]error, len(req.Answers))
	for i, item := range req.Answers {
		// An unparsable id stays uuid.Nil, so the service rejects the item
		// without posting; its result carries the parse error instead.
		inputs[i], parseErrs[i] = item.toInput()
	}

	results, err := h.svc.SubmitBatch(r.Context(), inputs)
	if err != nil {
		handleError(h.log, w, r, "error submitting answers", err)
		return
	}

	resp := bulkAnswerResponse{Results: make([]bulkItemResponse, 0, len(results))}
	for i, res := range results {
		if parseErrs[i] != nil {
			res = questions.BatchItemResult{QuestionID: res.QuestionID, Err: parseErrs[i]}
		}
		item := bulkItemResponse{
			QuestionID: req.Answers[i].QuestionID,
			Success:    res.Success,
			Error:      errorMessage(res.Err),
		}
		if res.Answer != nil {
			a := toAnswerResponse(res.Answer)
			item.Answer = &a
		}
		if res.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
		resp.Results = append(resp.Results, item)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (req answerRequest) toInput() (questions.SubmitAnswerInput, error) {
	in := questions.SubmitAnswerInput{
		ExternalQuestionID: req.MLQuestionID,
		Text:               req.Text,
		AIGenerated:        req.AIGenerated,
	}
	if req.QuestionID == "" {
		return in, nil
	}
	id, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return in, domain.NewValidationError("question_id", "must be a valid UUID")
	}
	in.QuestionID = id
	return in, nil
}

func toAnswerResponse(a *domain.Answer) answerResponse {
	return answerResponse{
		ID:          a.ID.String(),
		QuestionID:  a.QuestionID.String(),
		Text:        a.Text,
		Sent:        a.Sent,
		AIGenerated: a.AIGenerated,
		CreatedAt:   a.CreatedAt,
	}
}
