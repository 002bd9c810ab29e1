package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/internal/review/session"
	"github.com/talentgrid/talentgrid-backend/pkg/httputil"
	"github.com/talentgrid/talentgrid-backend/pkg/logger"
)

// MoveHandler handles grid move and change-tracking endpoints
type MoveHandler struct {
	service *session.Service
	logger  *logger.Logger
}

// NewMoveHandler creates a new move handler
func NewMoveHandler(svc *session.Service, log *logger.Logger) *MoveHandler {
	return &MoveHandler{
		service: svc,
		logger:  log,
	}
}

// MoveRequest records one grid repositioning
type MoveRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Position   int    `json:"position" validate:"required,min=1,max=9"`
}

// MoveResponse reports the move outcome. NetDiff is nil when the move
// returned the employee to its original cell.
type MoveResponse struct {
	Event    *domain.ChangeEvent `json:"event"`
	NetDiff  *domain.ChangeEvent `json:"net_diff,omitempty"`
	NetCount int                 `json:"net_count"`
}

// Create records a move
func (h *MoveHandler) Create(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req MoveRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	event, err := h.service.RecordMove(r.Context(), sessionID, req.EmployeeID, req.Position)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	sess, err := h.service.Get(sessionID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, MoveResponse{
		Event:    event,
		NetDiff:  sess.NetDiff(req.EmployeeID),
		NetCount: sess.NetCount(),
	})
}

// Changes returns the minimal net diffs in import order
func (h *MoveHandler) Changes(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	diffs := sess.NetDiffs()

	httputil.JSONWithMeta(w, http.StatusOK, diffs, &httputil.Meta{
		Changes: len(diffs),
	})
}

// History returns the employee's full audit trail, oldest first
func (h *MoveHandler) History(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	history, err := sess.History(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, history)
}
