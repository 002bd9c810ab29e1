package domain

import (
	"time"

	"github.com/talentgrid/talentgrid-backend/pkg/errors"
)

// MaxChainDepth bounds the number of ancestor ids carried per employee
const MaxChainDepth = 6

// Employee is a roster entry. ID is the only identity key used anywhere in
// filtering, ledger accounting and chain resolution; Name is display-only and
// may collide between employees.
type Employee struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	JobLevel         string    `json:"job_level"`
	JobFunction      string    `json:"job_function"`
	Location         string    `json:"location"`
	ManagerChain     []string  `json:"manager_chain"`
	CurrentPosition  int       `json:"current_position"`
	OriginalPosition int       `json:"original_position"`
	Flags            StringSet `json:"flags"`
	Notes            string    `json:"notes"`

	// ChainTruncated is set by the org chain resolver when the manager chain
	// contained a cycle or self-reference and had to be cut short.
	ChainTruncated bool `json:"chain_truncated,omitempty"`
}

// ManagerID returns the employee's immediate manager id, or "" for a root
func (e *Employee) ManagerID() string {
	if len(e.ManagerChain) == 0 {
		return ""
	}
	return e.ManagerChain[0]
}

// Modified reports whether the employee sits away from its import cell
func (e *Employee) Modified() bool {
	return e.CurrentPosition != e.OriginalPosition
}

// ChangeEvent records a single repositioning. Raw events form the permanent
// per-employee audit history; the net diff projection reuses the same shape
// with OldPosition always holding the import baseline.
type ChangeEvent struct {
	EventID        string    `json:"event_id"`
	EmployeeID     string    `json:"employee_id"`
	Timestamp      time.Time `json:"timestamp"`
	OldPosition    int       `json:"old_position"`
	NewPosition    int       `json:"new_position"`
	OldPerformance Category  `json:"old_performance"`
	OldPotential   Category  `json:"old_potential"`
	NewPerformance Category  `json:"new_performance"`
	NewPotential   Category  `json:"new_potential"`
}

// Roster holds employees in import order plus an id index. Version increments
// on any employee mutation so downstream memoization can key on it.
type Roster struct {
	employees []*Employee
	byID      map[string]*Employee
	version   uint64
}

// NewRoster builds a roster from imported employees, capturing each
// employee's original position at this moment. Duplicate ids are rejected;
// out-of-range positions are rejected.
func NewRoster(employees []*Employee) (*Roster, error) {
	r := &Roster{
		employees: make([]*Employee, 0, len(employees)),
		byID:      make(map[string]*Employee, len(employees)),
		version:   1,
	}

	for _, emp := range employees {
		if emp.ID == "" {
			return nil, errors.Validation(map[string]string{"id": "must not be empty"})
		}
		if _, exists := r.byID[emp.ID]; exists {
			return nil, errors.Conflict("duplicate employee id " + emp.ID)
		}
		if !ValidPosition(emp.CurrentPosition) {
			return nil, errors.InvariantViolation(
				"employee " + emp.ID + " has a grid position outside 1-9")
		}
		if len(emp.ManagerChain) > MaxChainDepth {
			emp.ManagerChain = emp.ManagerChain[:MaxChainDepth]
		}
		if emp.Flags == nil {
			emp.Flags = NewStringSet()
		}

		// The import-time snapshot; never recomputed afterwards.
		emp.OriginalPosition = emp.CurrentPosition

		r.employees = append(r.employees, emp)
		r.byID[emp.ID] = emp
	}

	return r, nil
}

// RestoreRoster rebuilds a roster from snapshot data, preserving the stored
// original positions instead of re-capturing them.
func RestoreRoster(employees []*Employee) (*Roster, error) {
	r := &Roster{
		employees: make([]*Employee, 0, len(employees)),
		byID:      make(map[string]*Employee, len(employees)),
		version:   1,
	}

	for _, emp := range employees {
		if emp.ID == "" {
			return nil, errors.Validation(map[string]string{"id": "must not be empty"})
		}
		if _, exists := r.byID[emp.ID]; exists {
			return nil, errors.Conflict("duplicate employee id " + emp.ID)
		}
		if emp.Flags == nil {
			emp.Flags = NewStringSet()
		}
		r.employees = append(r.employees, emp)
		r.byID[emp.ID] = emp
	}

	return r, nil
}

// Employees returns all employees in import order. Callers must not reorder
// the returned slice.
func (r *Roster) Employees() []*Employee {
	return r.employees
}

// Get returns the employee with the given id, or nil
func (r *Roster) Get(id string) *Employee {
	return r.byID[id]
}

// Contains reports whether id is in the roster
func (r *Roster) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the roster size
func (r *Roster) Len() int {
	return len(r.employees)
}

// Version returns the mutation counter
func (r *Roster) Version() uint64 {
	return r.version
}

// Touch bumps the version after an employee mutation
func (r *Roster) Touch() {
	r.version++
}
