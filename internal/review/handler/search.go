package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/talentgrid/talentgrid-backend/internal/review/session"
	"github.com/talentgrid/talentgrid-backend/pkg/httputil"
	"github.com/talentgrid/talentgrid-backend/pkg/logger"
)

// SearchHandler handles fuzzy search and exclusion endpoints
type SearchHandler struct {
	service *session.Service
	logger  *logger.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(svc *session.Service, log *logger.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  log,
	}
}

// Search runs a fuzzy search over name, job function and job level
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	matches := sess.Search(query)

	httputil.JSONWithMeta(w, http.StatusOK, matches, &httputil.Meta{
		Total: len(matches),
	})
}

// ExclusionSearch runs the same fuzzy search under the tighter
// exclusion-dialog result cap
func (h *SearchHandler) ExclusionSearch(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	matches := sess.SearchForExclusion(query)

	httputil.JSONWithMeta(w, http.StatusOK, matches, &httputil.Meta{
		Total: len(matches),
	})
}

// Exclude hides one employee from the visible roster
func (h *SearchHandler) Exclude(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	if err := sess.Exclude(chi.URLParam(r, "employeeID")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// Include lifts an exclusion. Lifting one that was never set is a no-op.
func (h *SearchHandler) Include(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	sess.Include(chi.URLParam(r, "employeeID"))

	httputil.NoContent(w)
}
