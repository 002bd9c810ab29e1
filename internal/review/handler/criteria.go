package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/internal/review/session"
	"github.com/talentgrid/talentgrid-backend/pkg/httputil"
	"github.com/talentgrid/talentgrid-backend/pkg/logger"
)

// CriteriaHandler handles filter criteria endpoints
type CriteriaHandler struct {
	service *session.Service
	logger  *logger.Logger
}

// NewCriteriaHandler creates a new criteria handler
func NewCriteriaHandler(svc *session.Service, log *logger.Logger) *CriteriaHandler {
	return &CriteriaHandler{
		service: svc,
		logger:  log,
	}
}

// Get returns the current criteria
func (h *CriteriaHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, sess.Criteria())
}

// PatchCriteriaRequest carries a partial criteria update. Absent fields stay
// untouched; multi-value facets are replaced wholesale when present.
type PatchCriteriaRequest struct {
	Levels                  []string `json:"levels,omitempty"`
	JobFunctions            []string `json:"job_functions,omitempty"`
	Locations               []string `json:"locations,omitempty"`
	ManagerIDs              []string `json:"manager_ids,omitempty"`
	Flags                   []string `json:"flags,omitempty"`
	ReportingChainManagerID *string  `json:"reporting_chain_manager_id,omitempty"`
	SearchQuery             *string  `json:"search_query,omitempty"`
}

// Patch applies a partial criteria update and returns the resulting
// visible roster metadata
func (h *CriteriaHandler) Patch(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req PatchCriteriaRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	criteria := sess.Criteria()
	if req.Levels != nil {
		criteria.Levels = domain.NewStringSet(req.Levels...)
	}
	if req.JobFunctions != nil {
		criteria.JobFunctions = domain.NewStringSet(req.JobFunctions...)
	}
	if req.Locations != nil {
		criteria.Locations = domain.NewStringSet(req.Locations...)
	}
	if req.ManagerIDs != nil {
		criteria.ManagerIDs = domain.NewStringSet(req.ManagerIDs...)
	}
	if req.Flags != nil {
		criteria.Flags = domain.NewStringSet(req.Flags...)
	}
	if req.ReportingChainManagerID != nil {
		criteria.ReportingChainManagerID = *req.ReportingChainManagerID
	}
	if req.SearchQuery != nil {
		criteria.SearchQuery = *req.SearchQuery
	}
	sess.SetCriteria(criteria)

	visible := sess.VisibleRoster()

	httputil.JSONWithMeta(w, http.StatusOK, sess.Criteria(), &httputil.Meta{
		Total:   sess.Roster().Len(),
		Visible: len(visible),
		Changes: sess.NetCount(),
	})
}

// ToggleRequest flips one facet value on or off
type ToggleRequest struct {
	Facet string `json:"facet" validate:"required,oneof=level job_function location manager flag exclusion"`
	Value string `json:"value" validate:"required"`
}

// ToggleResponse reports the toggle outcome
type ToggleResponse struct {
	Facet    string `json:"facet"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
	Visible  int    `json:"visible"`
}

// Toggle flips a single facet value. Toggling the same value twice restores
// the prior state.
func (h *CriteriaHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req ToggleRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	selected, err := sess.Toggle(req.Facet, req.Value)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, ToggleResponse{
		Facet:    req.Facet,
		Value:    req.Value,
		Selected: selected,
		Visible:  len(sess.VisibleRoster()),
	})
}
