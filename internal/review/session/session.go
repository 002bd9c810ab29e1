// Package session owns the per-review-session state: the imported roster,
// the filter criteria value, the change ledger and the derived org forest
// and search index. The core computations stay pure; this layer is the thin
// stateful adapter around them.
package session

import (
	"time"

	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/internal/review/filter"
	"github.com/talentgrid/talentgrid-backend/internal/review/ledger"
	"github.com/talentgrid/talentgrid-backend/internal/review/orgchain"
	"github.com/talentgrid/talentgrid-backend/internal/review/search"
	"github.com/talentgrid/talentgrid-backend/pkg/errors"
)

// Facet names accepted by Toggle
const (
	FacetLevel       = "level"
	FacetJobFunction = "job_function"
	FacetLocation    = "location"
	FacetManager     = "manager"
	FacetFlag        = "flag"
	FacetExclusion   = "exclusion"
)

// Config carries the review core tunables
type Config struct {
	SearchThreshold      int
	SearchLimit          int
	ExclusionSearchLimit int
}

// Session is one user's review of one imported roster. Sessions have a
// single writer; no internal locking.
type Session struct {
	ID        string
	CreatedAt time.Time

	roster   *domain.Roster
	criteria domain.FilterCriteria
	ledger   *ledger.ChangeLedger
	resolver *orgchain.Resolver
	index    *search.Index
	engine   *filter.Engine
	config   Config
}

// New imports a roster into a fresh session, capturing every employee's
// original position.
func New(id string, employees []*domain.Employee, cfg Config, now time.Time) (*Session, error) {
	roster, err := domain.NewRoster(employees)
	if err != nil {
		return nil, err
	}
	return build(id, roster, domain.NewFilterCriteria(), ledger.New(roster), cfg, now), nil
}

func build(id string, roster *domain.Roster, criteria domain.FilterCriteria, l *ledger.ChangeLedger, cfg Config, now time.Time) *Session {
	resolver := orgchain.NewResolver(roster)
	index := search.NewIndex(roster, cfg.SearchThreshold)
	return &Session{
		ID:        id,
		CreatedAt: now,
		roster:    roster,
		criteria:  criteria,
		ledger:    l,
		resolver:  resolver,
		index:     index,
		engine:    filter.NewEngine(resolver, index),
		config:    cfg,
	}
}

// Roster returns the full roster in import order
func (s *Session) Roster() *domain.Roster {
	return s.roster
}

// Criteria returns a copy of the current filter criteria
func (s *Session) Criteria() domain.FilterCriteria {
	return s.criteria.Clone()
}

// VisibleRoster evaluates the current criteria against the roster
func (s *Session) VisibleRoster() []*domain.Employee {
	return s.engine.VisibleRoster(s.roster, s.criteria)
}

// SetCriteria replaces the criteria value wholesale
func (s *Session) SetCriteria(criteria domain.FilterCriteria) {
	s.criteria = criteria
}

// Toggle flips one facet value. Toggling the same value twice restores the
// prior criteria state. Returns whether the value is selected afterwards.
func (s *Session) Toggle(facet, value string) (bool, error) {
	switch facet {
	case FacetLevel:
		return s.criteria.Levels.Toggle(value), nil
	case FacetJobFunction:
		return s.criteria.JobFunctions.Toggle(value), nil
	case FacetLocation:
		return s.criteria.Locations.Toggle(value), nil
	case FacetManager:
		return s.criteria.ManagerIDs.Toggle(value), nil
	case FacetFlag:
		return s.criteria.Flags.Toggle(value), nil
	case FacetExclusion:
		return s.criteria.ExcludedIDs.Toggle(value), nil
	default:
		return false, errors.BadRequest("unknown facet " + facet)
	}
}

// SetReportingChain scopes the roster to the manager's reporting chain, or
// clears the scope when managerID is empty.
func (s *Session) SetReportingChain(managerID string) {
	s.criteria.ReportingChainManagerID = managerID
}

// SetSearchQuery sets the free-text search constraint
func (s *Session) SetSearchQuery(query string) {
	s.criteria.SearchQuery = query
}

// Exclude hides the employee from every filtered view
func (s *Session) Exclude(employeeID string) error {
	if !s.roster.Contains(employeeID) {
		return errors.Reference(employeeID)
	}
	s.criteria.ExcludedIDs.Add(employeeID)
	return nil
}

// Include removes the employee from the exclusion list
func (s *Session) Include(employeeID string) {
	s.criteria.ExcludedIDs.Remove(employeeID)
}

// RecordMove repositions an employee on the grid
func (s *Session) RecordMove(employeeID string, newPosition int, timestamp time.Time) (*domain.ChangeEvent, error) {
	return s.ledger.RecordMove(employeeID, newPosition, timestamp)
}

// NetDiffs returns the minimal change set in import order
func (s *Session) NetDiffs() []*domain.ChangeEvent {
	return s.ledger.NetDiffs()
}

// NetDiff returns the employee's net diff entry, or nil when unmodified
func (s *Session) NetDiff(employeeID string) *domain.ChangeEvent {
	return s.ledger.NetDiff(employeeID)
}

// NetCount returns the badge count
func (s *Session) NetCount() int {
	return s.ledger.NetCount()
}

// History returns the employee's full audit trail
func (s *Session) History(employeeID string) ([]*domain.ChangeEvent, error) {
	if !s.roster.Contains(employeeID) {
		return nil, errors.Reference(employeeID)
	}
	return s.ledger.History(employeeID), nil
}

// Search runs a roster search capped at the configured limit
func (s *Session) Search(query string) []search.Match {
	return s.index.Search(query, s.config.SearchLimit)
}

// SearchForExclusion runs a search capped at the exclusion-dialog limit
func (s *Session) SearchForExclusion(query string) []search.Match {
	return s.index.Search(query, s.config.ExclusionSearchLimit)
}

// UpdateNotes replaces the employee's notes. Notes are orthogonal to the
// position diff accounting and survive a reverted move.
func (s *Session) UpdateNotes(employeeID, notes string) error {
	emp := s.roster.Get(employeeID)
	if emp == nil {
		return errors.Reference(employeeID)
	}
	emp.Notes = notes
	s.roster.Touch()
	return nil
}

// SetFlags replaces the employee's flag set
func (s *Session) SetFlags(employeeID string, flags []string) error {
	emp := s.roster.Get(employeeID)
	if emp == nil {
		return errors.Reference(employeeID)
	}
	emp.Flags = domain.NewStringSet(flags...)
	s.roster.Touch()
	return nil
}

// ToggleFlag flips one flag on the employee
func (s *Session) ToggleFlag(employeeID, flag string) (bool, error) {
	emp := s.roster.Get(employeeID)
	if emp == nil {
		return false, errors.Reference(employeeID)
	}
	on := emp.Flags.Toggle(flag)
	s.roster.Touch()
	return on, nil
}

// ChainPath resolves the employee's ancestor path
func (s *Session) ChainPath(employeeID string) ([]string, error) {
	return s.resolver.ResolveChainPath(employeeID)
}

// SubtreeIDs returns the manager's descendant-or-self id set
func (s *Session) SubtreeIDs(managerID string) domain.StringSet {
	return s.resolver.SubtreeIDs(managerID)
}

// ExportEntry is what the export collaborator consumes per employee: the net
// diff plus notes and flags, never the raw audit trail.
type ExportEntry struct {
	EmployeeID string              `json:"employee_id"`
	Name       string              `json:"name"`
	Position   int                 `json:"position"`
	Notes      string              `json:"notes,omitempty"`
	Flags      []string            `json:"flags,omitempty"`
	NetDiff    *domain.ChangeEvent `json:"net_diff,omitempty"`
}

// ExportPayload assembles the export data for every employee in import order
func (s *Session) ExportPayload() []ExportEntry {
	entries := make([]ExportEntry, 0, s.roster.Len())
	for _, emp := range s.roster.Employees() {
		entries = append(entries, ExportEntry{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			Position:   emp.CurrentPosition,
			Notes:      emp.Notes,
			Flags:      emp.Flags.Values(),
			NetDiff:    s.ledger.NetDiff(emp.ID),
		})
	}
	return entries
}

// Snapshot is the plain-data form of a session for persistence. Every field
// round-trips exactly.
type Snapshot struct {
	SessionID string                         `json:"session_id"`
	CreatedAt time.Time                      `json:"created_at"`
	Employees []*domain.Employee             `json:"employees"`
	Criteria  domain.FilterCriteria          `json:"criteria"`
	RawEvents []*domain.ChangeEvent          `json:"raw_events"`
	NetMap    map[string]*domain.ChangeEvent `json:"net_map"`
}

// Snapshot captures the session as plain data
func (s *Session) Snapshot() *Snapshot {
	raw, net := s.ledger.Snapshot()
	return &Snapshot{
		SessionID: s.ID,
		CreatedAt: s.CreatedAt,
		Employees: s.roster.Employees(),
		Criteria:  s.criteria.Clone(),
		RawEvents: raw,
		NetMap:    net,
	}
}

// FromSnapshot rebuilds a session, preserving stored original positions
// instead of re-capturing them.
func FromSnapshot(snap *Snapshot, cfg Config) (*Session, error) {
	roster, err := domain.RestoreRoster(snap.Employees)
	if err != nil {
		return nil, err
	}
	l := ledger.Restore(roster, snap.RawEvents, snap.NetMap)
	return build(snap.SessionID, roster, snap.Criteria, l, cfg, snap.CreatedAt), nil
}
