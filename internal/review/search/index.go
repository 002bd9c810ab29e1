// Package search provides fuzzy name/title/level matching over the roster.
// The same index serves free-text roster search and the exclusion-management
// dialog; the two differ only in the result cap they pass.
package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
)

// Fields an employee is indexed under
const (
	FieldName     = "name"
	FieldFunction = "job_function"
	FieldLevel    = "job_level"
)

// Match is a single ranked search hit. Distance is the Levenshtein distance
// between the query and the matched value; lower is better.
type Match struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Field      string `json:"field"`
	Value      string `json:"value"`
	Distance   int    `json:"distance"`
}

type entry struct {
	employeeID string
	name       string
	field      string
	value      string
	order      int
}

// Index is a fuzzy matcher over roster entries. Rebuild it on import; the
// indexed fields do not change mid-session.
type Index struct {
	entries []entry
	targets []string

	// threshold is the maximum accepted distance; zero or negative disables
	// the cut.
	threshold int
}

// NewIndex builds an index over the roster's name, job function and job
// level fields.
func NewIndex(roster *domain.Roster, threshold int) *Index {
	idx := &Index{threshold: threshold}

	for order, emp := range roster.Employees() {
		idx.add(emp.ID, emp.Name, FieldName, emp.Name, order)
		idx.add(emp.ID, emp.Name, FieldFunction, emp.JobFunction, order)
		idx.add(emp.ID, emp.Name, FieldLevel, emp.JobLevel, order)
	}

	return idx
}

func (idx *Index) add(employeeID, name, field, value string, order int) {
	if value == "" {
		return
	}
	idx.entries = append(idx.entries, entry{
		employeeID: employeeID,
		name:       name,
		field:      field,
		value:      value,
		order:      order,
	})
	idx.targets = append(idx.targets, value)
}

// Search returns ranked matches for the query, best first and capped at
// limit. Each employee appears at most once, under its best-matching field.
// An empty query yields no matches.
func (idx *Index) Search(query string, limit int) []Match {
	if query == "" {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, idx.targets)

	best := make(map[string]Match)
	order := make(map[string]int)

	for _, rank := range ranks {
		if idx.threshold > 0 && rank.Distance > idx.threshold {
			continue
		}

		ent := idx.entries[rank.OriginalIndex]
		existing, seen := best[ent.employeeID]
		if seen && existing.Distance <= rank.Distance {
			continue
		}

		best[ent.employeeID] = Match{
			EmployeeID: ent.employeeID,
			Name:       ent.name,
			Field:      ent.field,
			Value:      ent.value,
			Distance:   rank.Distance,
		}
		order[ent.employeeID] = ent.order
	}

	matches := make([]Match, 0, len(best))
	for _, m := range best {
		matches = append(matches, m)
	}

	// Distance first, import order as the tie-breaker for determinism.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return order[matches[i].EmployeeID] < order[matches[j].EmployeeID]
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}

// MatchIDs returns the set of employee ids matching the query, uncapped.
// The filter engine intersects this with its other facets.
func (idx *Index) MatchIDs(query string) domain.StringSet {
	ids := domain.NewStringSet()
	for _, m := range idx.Search(query, 0) {
		ids.Add(m.EmployeeID)
	}
	return ids
}
