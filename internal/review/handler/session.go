package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/internal/review/session"
	"github.com/talentgrid/talentgrid-backend/pkg/httputil"
	"github.com/talentgrid/talentgrid-backend/pkg/logger"
)

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	service *session.Service
	logger  *logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(svc *session.Service, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: svc,
		logger:  log,
	}
}

// ImportEmployee is one roster row in an import request
type ImportEmployee struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	JobLevel     string   `json:"job_level"`
	JobFunction  string   `json:"job_function"`
	Location     string   `json:"location"`
	ManagerChain []string `json:"manager_chain"`
	Position     int      `json:"position" validate:"required,min=1,max=9"`
	Flags        []string `json:"flags"`
	Notes        string   `json:"notes"`
}

// ImportRequest is the request structure for creating a session
type ImportRequest struct {
	Employees []ImportEmployee `json:"employees" validate:"required,min=1,dive"`
}

// SessionResponse summarizes a session for API responses
type SessionResponse struct {
	SessionID  string `json:"session_id"`
	RosterSize int    `json:"roster_size"`
	NetCount   int    `json:"net_count"`
}

// Create imports a roster into a new session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	employees := make([]*domain.Employee, 0, len(req.Employees))
	for _, row := range req.Employees {
		employees = append(employees, &domain.Employee{
			ID:              row.ID,
			Name:            row.Name,
			JobLevel:        row.JobLevel,
			JobFunction:     row.JobFunction,
			Location:        row.Location,
			ManagerChain:    row.ManagerChain,
			CurrentPosition: row.Position,
			Flags:           domain.NewStringSet(row.Flags...),
			Notes:           row.Notes,
		})
	}

	sess, err := h.service.Import(r.Context(), employees)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, SessionResponse{
		SessionID:  sess.ID,
		RosterSize: sess.Roster().Len(),
		NetCount:   sess.NetCount(),
	})
}

// Get returns the session summary
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, SessionResponse{
		SessionID:  sess.ID,
		RosterSize: sess.Roster().Len(),
		NetCount:   sess.NetCount(),
	})
}

// Delete discards an in-memory session. The persisted snapshot, if any,
// stays untouched.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Close(chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// Roster returns the visible roster under the current criteria
func (h *SessionHandler) Roster(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	visible := sess.VisibleRoster()

	httputil.JSONWithMeta(w, http.StatusOK, visible, &httputil.Meta{
		Total:   sess.Roster().Len(),
		Visible: len(visible),
		Changes: sess.NetCount(),
	})
}

// Export returns the export payload: net diffs plus per-employee notes and
// flags, never raw history
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, sess.ExportPayload(), &httputil.Meta{
		Total:   sess.Roster().Len(),
		Changes: sess.NetCount(),
	})
}

// Snapshot persists the session state
func (h *SessionHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Snapshot(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"session_id": id})
}

// RestoreRequest names the session to restore from its snapshot
type RestoreRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// Restore rebuilds a session from its persisted snapshot
func (h *SessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req RestoreRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	sess, err := h.service.Restore(r.Context(), req.SessionID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, SessionResponse{
		SessionID:  sess.ID,
		RosterSize: sess.Roster().Len(),
		NetCount:   sess.NetCount(),
	})
}
