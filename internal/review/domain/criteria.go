package domain

import (
	"strings"
)

// FilterCriteria is a plain value object holding every filter facet. Facets
// combine with logical AND across facets and logical OR within one; an empty
// facet imposes no constraint. ExcludedIDs is a NOT-IN predicate applied last
// and independently of the other facets.
type FilterCriteria struct {
	Levels       StringSet `json:"levels"`
	JobFunctions StringSet `json:"job_functions"`
	Locations    StringSet `json:"locations"`
	ManagerIDs   StringSet `json:"manager_ids"`
	Flags        StringSet `json:"flags"`
	ExcludedIDs  StringSet `json:"excluded_ids"`

	// ReportingChainManagerID scopes the roster to the named manager's
	// subtree (descendant-or-self). Always a concrete id, never a name.
	// Empty means unset.
	ReportingChainManagerID string `json:"reporting_chain_manager_id"`

	SearchQuery string `json:"search_query"`
}

// NewFilterCriteria creates an empty criteria value
func NewFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Levels:       NewStringSet(),
		JobFunctions: NewStringSet(),
		Locations:    NewStringSet(),
		ManagerIDs:   NewStringSet(),
		Flags:        NewStringSet(),
		ExcludedIDs:  NewStringSet(),
	}
}

// Clone returns an independent copy
func (c FilterCriteria) Clone() FilterCriteria {
	clone := c
	clone.Levels = c.Levels.Clone()
	clone.JobFunctions = c.JobFunctions.Clone()
	clone.Locations = c.Locations.Clone()
	clone.ManagerIDs = c.ManagerIDs.Clone()
	clone.Flags = c.Flags.Clone()
	clone.ExcludedIDs = c.ExcludedIDs.Clone()
	return clone
}

// IsEmpty reports whether no facet imposes any constraint
func (c FilterCriteria) IsEmpty() bool {
	return c.Levels.IsEmpty() &&
		c.JobFunctions.IsEmpty() &&
		c.Locations.IsEmpty() &&
		c.ManagerIDs.IsEmpty() &&
		c.Flags.IsEmpty() &&
		c.ExcludedIDs.IsEmpty() &&
		c.ReportingChainManagerID == "" &&
		c.SearchQuery == ""
}

// Key returns a stable structural key over every facet, used to memoize
// filter evaluation. Two criteria values with equal facet contents always
// produce the same key.
func (c FilterCriteria) Key() string {
	var b strings.Builder
	writeFacet := func(tag string, s StringSet) {
		b.WriteString(tag)
		b.WriteByte('=')
		for _, v := range s.Values() {
			b.WriteString(v)
			b.WriteByte(',')
		}
		b.WriteByte(';')
	}

	writeFacet("lv", c.Levels)
	writeFacet("fn", c.JobFunctions)
	writeFacet("lo", c.Locations)
	writeFacet("mg", c.ManagerIDs)
	writeFacet("fl", c.Flags)
	writeFacet("ex", c.ExcludedIDs)
	b.WriteString("rc=")
	b.WriteString(c.ReportingChainManagerID)
	b.WriteString(";q=")
	b.WriteString(c.SearchQuery)
	return b.String()
}
