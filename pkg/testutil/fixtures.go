package testutil

import (
	"fmt"

	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
)

// FixtureFactory creates test fixtures with sensible defaults
type FixtureFactory struct {
	sequence int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{sequence: 0}
}

// nextSeq returns the next sequence number for unique values
func (f *FixtureFactory) nextSeq() int {
	f.sequence++
	return f.sequence
}

// Employee creates an employee fixture with defaults
func (f *FixtureFactory) Employee(opts ...func(*domain.Employee)) *domain.Employee {
	seq := f.nextSeq()

	emp := &domain.Employee{
		ID:              fmt.Sprintf("%d", seq),
		Name:            fmt.Sprintf("Employee %d", seq),
		JobLevel:        "MT2",
		JobFunction:     "Engineering",
		Location:        "Berlin",
		CurrentPosition: 5,
		Flags:           domain.NewStringSet(),
	}

	for _, opt := range opts {
		opt(emp)
	}

	return emp
}

// WithID sets the employee id
func WithID(id string) func(*domain.Employee) {
	return func(e *domain.Employee) {
		e.ID = id
	}
}

// WithName sets the employee name
func WithName(name string) func(*domain.Employee) {
	return func(e *domain.Employee) {
		e.Name = name
	}
}

// WithJobLevel sets the employee job level
func WithJobLevel(level string) func(*domain.Employee) {
	return func(e *domain.Employee) {
		e.JobLevel = level
	}
}

// WithJobFunction sets the employee job function
func WithJobFunction(function string) func(*domain.Employee) {
	return func(e *domain.Employee) {
		e.JobFunction = function
	}
}

// WithLocation sets the employee location
func WithLocation(location string) func(*domain.Employee) {
	return func(e *domain.Employee) {
		e.Location = location
	}
}

// WithManagerChain sets the employee manager chain, nearest first
func WithManagerChain(ids ...string) func(*domain.Employee) {
	return func(e *domain.Employee) {
		e.ManagerChain = ids
	}
}

// WithPosition sets the employee grid position
func WithPosition(position int) func(*domain.Employee) {
	return func(e *domain.Employee) {
		e.CurrentPosition = position
	}
}

// WithFlag adds a flag to the employee
func WithFlag(flag string) func(*domain.Employee) {
	return func(e *domain.Employee) {
		e.Flags.Add(flag)
	}
}

// DefaultRoster returns a small three-level organization: one director,
// two managers, and four individual contributors
func DefaultRoster(factory *FixtureFactory) []*domain.Employee {
	return []*domain.Employee{
		factory.Employee(WithID("100"), WithName("Dana Director"), WithJobLevel("MT6"), WithJobFunction("Leadership"), WithPosition(3)),
		factory.Employee(WithID("42"), WithName("Jane Smith"), WithJobLevel("MT5"), WithManagerChain("100"), WithPosition(6)),
		factory.Employee(WithID("43"), WithName("John Doe"), WithJobLevel("MT5"), WithJobFunction("Design"), WithLocation("Munich"), WithManagerChain("100"), WithPosition(5)),
		factory.Employee(WithID("1"), WithName("Leo Brown"), WithManagerChain("42", "100"), WithPosition(9)),
		factory.Employee(WithID("2"), WithName("Nora Klein"), WithManagerChain("42", "100"), WithPosition(4), WithFlag("top-talent")),
		factory.Employee(WithID("3"), WithName("Omar Haddad"), WithJobFunction("Design"), WithLocation("Munich"), WithManagerChain("43", "100"), WithPosition(7)),
		factory.Employee(WithID("4"), WithName("Pia Vogel"), WithJobFunction("Design"), WithLocation("Munich"), WithManagerChain("43", "100"), WithPosition(2)),
	}
}
