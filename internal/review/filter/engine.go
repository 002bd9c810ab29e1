// Package filter evaluates the multi-facet criteria against the roster.
// Evaluation is a pure function of (roster, criteria); the memo cache is a
// throughput optimization only and never changes results.
package filter

import (
	"fmt"

	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/internal/review/orgchain"
	"github.com/talentgrid/talentgrid-backend/internal/review/search"
)

// Engine combines the facet predicates with the org chain resolver and the
// search index. One engine serves one session.
type Engine struct {
	resolver *orgchain.Resolver
	index    *search.Index

	cacheKey    string
	cacheResult []*domain.Employee
}

// NewEngine creates an engine over the session's resolver and search index.
func NewEngine(resolver *orgchain.Resolver, index *search.Index) *Engine {
	return &Engine{resolver: resolver, index: index}
}

// VisibleRoster returns the employees satisfying every facet, in import
// order. Zero matches yield an empty slice; criteria referencing ids absent
// from the roster degrade to matching nothing.
func (e *Engine) VisibleRoster(roster *domain.Roster, criteria domain.FilterCriteria) []*domain.Employee {
	key := fmt.Sprintf("%d|%s", roster.Version(), criteria.Key())
	if key == e.cacheKey && e.cacheResult != nil {
		return e.cacheResult
	}

	// The search facet intersects with the others, so resolve its id set
	// once up front. An empty query imposes no constraint.
	var searchIDs domain.StringSet
	if criteria.SearchQuery != "" {
		searchIDs = e.index.MatchIDs(criteria.SearchQuery)
	}

	visible := make([]*domain.Employee, 0, roster.Len())
	for _, emp := range roster.Employees() {
		if !e.matches(emp, criteria, searchIDs) {
			continue
		}
		// Exclusion is independent of every other facet and applied last.
		if criteria.ExcludedIDs.Contains(emp.ID) {
			continue
		}
		visible = append(visible, emp)
	}

	e.cacheKey = key
	e.cacheResult = visible
	return visible
}

func (e *Engine) matches(emp *domain.Employee, criteria domain.FilterCriteria, searchIDs domain.StringSet) bool {
	if !facetAllows(criteria.Levels, emp.JobLevel) {
		return false
	}
	if !facetAllows(criteria.JobFunctions, emp.JobFunction) {
		return false
	}
	if !facetAllows(criteria.Locations, emp.Location) {
		return false
	}
	if !criteria.ManagerIDs.IsEmpty() && !criteria.ManagerIDs.Contains(emp.ManagerID()) {
		return false
	}
	if !criteria.Flags.IsEmpty() && !anyFlagSelected(criteria.Flags, emp.Flags) {
		return false
	}
	if criteria.ReportingChainManagerID != "" &&
		!e.resolver.ChainContains(emp.ID, criteria.ReportingChainManagerID) {
		return false
	}
	if searchIDs != nil && !searchIDs.Contains(emp.ID) {
		return false
	}
	return true
}

// facetAllows implements OR-within-a-facet; an empty selection imposes no
// constraint.
func facetAllows(selected domain.StringSet, value string) bool {
	return selected.IsEmpty() || selected.Contains(value)
}

func anyFlagSelected(selected, flags domain.StringSet) bool {
	for flag := range selected {
		if flags.Contains(flag) {
			return true
		}
	}
	return false
}

// Invalidate drops the memo cache. Callers invoke it after any employee
// mutation not reflected in the roster version.
func (e *Engine) Invalidate() {
	e.cacheKey = ""
	e.cacheResult = nil
}
