package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentgrid/talentgrid-backend/internal/review/session"
	"github.com/talentgrid/talentgrid-backend/pkg/errors"
	"github.com/talentgrid/talentgrid-backend/pkg/httputil"
	"github.com/talentgrid/talentgrid-backend/pkg/logger"
)

// EmployeeHandler handles per-employee annotation endpoints
type EmployeeHandler struct {
	service *session.Service
	logger  *logger.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(svc *session.Service, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: svc,
		logger:  log,
	}
}

// Get returns one employee with current position, notes and flags
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	emp := sess.Roster().Get(chi.URLParam(r, "employeeID"))
	if emp == nil {
		httputil.Error(w, errors.NotFound("employee"))
		return
	}

	httputil.JSON(w, http.StatusOK, emp)
}

// NotesRequest replaces an employee's notes
type NotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateNotes replaces the employee's notes. Notes are orthogonal to move
// accounting; they survive a reverted move.
func (h *EmployeeHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	employeeID := chi.URLParam(r, "employeeID")

	var req NotesRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.service.UpdateNotes(r.Context(), sessionID, employeeID, req.Notes); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// FlagsRequest replaces an employee's flag set
type FlagsRequest struct {
	Flags []string `json:"flags"`
}

// UpdateFlags replaces the employee's flag set wholesale
func (h *EmployeeHandler) UpdateFlags(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	employeeID := chi.URLParam(r, "employeeID")

	var req FlagsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.service.SetFlags(r.Context(), sessionID, employeeID, req.Flags); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// ChainPath returns the employee's own id followed by its sanitized
// ancestor ids, nearest manager first
func (h *EmployeeHandler) ChainPath(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	path, err := sess.ChainPath(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, path)
}
