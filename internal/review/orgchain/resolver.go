// Package orgchain builds a management forest from the flat per-employee
// ancestor arrays carried on the roster. All indexing uses employee ids;
// display names are never consulted, so identically-named employees resolve
// to disjoint subtrees as long as their ids differ.
package orgchain

import (
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/pkg/errors"
)

// Resolver answers subtree and ancestor-path queries over a built forest.
// Build it once per roster import; manager chains do not change in-session.
type Resolver struct {
	roster *domain.Roster

	// chains holds each employee's sanitized ancestor path (nearest first),
	// truncated at the first empty slot, the first id missing from the
	// roster, or the first repeated id (cycle guard).
	chains map[string][]string

	// children maps a manager id to its direct reports in import order.
	children map[string][]string

	// flagged lists employees whose chain contained a cycle or
	// self-reference and was truncated.
	flagged []string
}

// NewResolver builds the forest for the given roster.
func NewResolver(roster *domain.Roster) *Resolver {
	r := &Resolver{
		roster:   roster,
		chains:   make(map[string][]string, roster.Len()),
		children: make(map[string][]string),
	}

	for _, emp := range roster.Employees() {
		chain, truncated := r.sanitizeChain(emp)
		r.chains[emp.ID] = chain
		if truncated {
			emp.ChainTruncated = true
			r.flagged = append(r.flagged, emp.ID)
		}

		if len(chain) > 0 {
			parent := chain[0]
			r.children[parent] = append(r.children[parent], emp.ID)
		}
	}

	return r
}

// sanitizeChain walks an employee's raw manager chain and returns the usable
// prefix. The visited set seeded with the employee's own id catches both
// self-references and repeated ancestors, so a malformed chain is cut at the
// cycle point instead of looping.
func (r *Resolver) sanitizeChain(emp *domain.Employee) (chain []string, truncated bool) {
	seen := map[string]struct{}{emp.ID: {}}

	for _, ancestorID := range emp.ManagerChain {
		if ancestorID == "" {
			break
		}
		if !r.roster.Contains(ancestorID) {
			break
		}
		if _, dup := seen[ancestorID]; dup {
			return chain, true
		}
		seen[ancestorID] = struct{}{}
		chain = append(chain, ancestorID)
	}

	return chain, false
}

// ResolveChainPath returns the employee's own id followed by its sanitized
// ancestor ids, nearest manager first. Unknown employees yield a reference
// error, never a panic.
func (r *Resolver) ResolveChainPath(employeeID string) ([]string, error) {
	chain, ok := r.chains[employeeID]
	if !ok {
		return nil, errors.Reference(employeeID)
	}

	path := make([]string, 0, len(chain)+1)
	path = append(path, employeeID)
	path = append(path, chain...)
	return path, nil
}

// ChainContains reports whether managerID appears anywhere on the employee's
// resolved chain path, the employee itself included (descendant-or-self).
func (r *Resolver) ChainContains(employeeID, managerID string) bool {
	if employeeID == managerID {
		return r.roster.Contains(employeeID)
	}
	for _, id := range r.chains[employeeID] {
		if id == managerID {
			return true
		}
	}
	return false
}

// SubtreeIDs returns the manager's id plus every transitive report, found by
// a traversal over direct-report edges. The visited set bounds the walk by
// roster size, so even inconsistent chain data cannot loop indefinitely.
// An id absent from the roster yields an empty set.
func (r *Resolver) SubtreeIDs(managerID string) domain.StringSet {
	result := domain.NewStringSet()
	if !r.roster.Contains(managerID) {
		return result
	}

	visited := map[string]struct{}{}
	stack := []string{managerID}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, done := visited[id]; done {
			continue
		}
		visited[id] = struct{}{}
		result.Add(id)

		stack = append(stack, r.children[id]...)
	}

	return result
}

// Roots returns the ids of employees with no resolvable manager, in import
// order.
func (r *Resolver) Roots() []string {
	var roots []string
	for _, emp := range r.roster.Employees() {
		if len(r.chains[emp.ID]) == 0 {
			roots = append(roots, emp.ID)
		}
	}
	return roots
}

// Flagged returns the ids of employees whose chains were truncated at a
// cycle, in import order.
func (r *Resolver) Flagged() []string {
	return r.flagged
}
