package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
	"github.com/Redbeardred/Oberyn-v0.2/internal/service/questions"
	"github.com/Redbeardred/Oberyn-v0.2/pkg/ctxutil"
)

type syncService interface {
	Sync(ctx context.Context) (*questions.SyncResult, error)
}

// AdminHandler serves administrative operations.
type AdminHandler struct {
	svc syncService
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc syncService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: logger.With("handler", "admin")}
}

type syncResponse struct {
	Fetched  int `json:"fetched"`
	Created  int `json:"created"`
	Existing int `json:"existing"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
	Open     int `json:"open"`
}

// Sync handles POST /api/admin/sync. Admin role required.
func (h *AdminHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if !domain.UserRole(ctxutil.RoleFromCtx(r.Context())).IsAdmin() {
		handleError(h.log, w, r, "admin access required", domain.ErrForbidden)
		return
	}

	res, err := h.svc.Sync(r.Context())
	if err != nil {
		handleError(h.log, w, r, "error synchronising questions", err)
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{
		Fetched:  res.Fetched,
		Created:  res.Created,
		Existing: res.Existing,
		Skipped:  res.Skipped,
		Failed:   res.Failed,
		Open:     len(res.Open),
	})
}
