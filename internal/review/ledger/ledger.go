// Package ledger tracks grid moves as an append-only audit trail plus a
// derived net-diff projection. The projection holds at most one entry per
// employee, always diffed against the import-time baseline; the reported
// change count is the projection size, never the raw event count.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/pkg/errors"
)

// ChangeLedger records repositioning events for one session. Events apply
// strictly in submission order; the session's single-writer model makes
// explicit locking unnecessary.
type ChangeLedger struct {
	roster    *domain.Roster
	rawEvents []*domain.ChangeEvent
	netMap    map[string]*domain.ChangeEvent
}

// New creates an empty ledger over the roster.
func New(roster *domain.Roster) *ChangeLedger {
	return &ChangeLedger{
		roster: roster,
		netMap: make(map[string]*domain.ChangeEvent),
	}
}

// RecordMove appends a move event and updates the net projection. The
// employee's current position is updated as a side effect. Unknown employees
// and out-of-range positions are rejected with the ledger left unchanged.
func (l *ChangeLedger) RecordMove(employeeID string, newPosition int, timestamp time.Time) (*domain.ChangeEvent, error) {
	emp := l.roster.Get(employeeID)
	if emp == nil {
		return nil, errors.Reference(employeeID)
	}
	if !domain.ValidPosition(newPosition) {
		return nil, errors.InvariantViolation(
			fmt.Sprintf("grid position %d is outside 1-9", newPosition))
	}

	oldPosition := emp.CurrentPosition
	oldPerf, oldPot := domain.MustCellCategories(oldPosition)
	newPerf, newPot := domain.MustCellCategories(newPosition)

	event := &domain.ChangeEvent{
		EventID:        uuid.New().String(),
		EmployeeID:     employeeID,
		Timestamp:      timestamp,
		OldPosition:    oldPosition,
		NewPosition:    newPosition,
		OldPerformance: oldPerf,
		OldPotential:   oldPot,
		NewPerformance: newPerf,
		NewPotential:   newPot,
	}
	l.rawEvents = append(l.rawEvents, event)

	emp.CurrentPosition = newPosition
	l.roster.Touch()

	if newPosition == emp.OriginalPosition {
		// Back on the import cell: the employee has no net change.
		delete(l.netMap, employeeID)
	} else {
		l.netMap[employeeID] = l.netEvent(emp, event)
	}

	return event, nil
}

// netEvent derives the single accumulated entry for an employee. The old
// side is always the import baseline so intermediate cells never leak into
// the projection.
func (l *ChangeLedger) netEvent(emp *domain.Employee, latest *domain.ChangeEvent) *domain.ChangeEvent {
	basePerf, basePot := domain.MustCellCategories(emp.OriginalPosition)
	return &domain.ChangeEvent{
		EventID:        latest.EventID,
		EmployeeID:     emp.ID,
		Timestamp:      latest.Timestamp,
		OldPosition:    emp.OriginalPosition,
		NewPosition:    latest.NewPosition,
		OldPerformance: basePerf,
		OldPotential:   basePot,
		NewPerformance: latest.NewPerformance,
		NewPotential:   latest.NewPotential,
	}
}

// NetDiffs returns the net projection in roster import order. Employees
// sitting on their original cell have no entry.
func (l *ChangeLedger) NetDiffs() []*domain.ChangeEvent {
	diffs := make([]*domain.ChangeEvent, 0, len(l.netMap))
	for _, emp := range l.roster.Employees() {
		if diff, ok := l.netMap[emp.ID]; ok {
			diffs = append(diffs, diff)
		}
	}
	return diffs
}

// NetCount returns the badge count: the size of the net projection.
func (l *ChangeLedger) NetCount() int {
	return len(l.netMap)
}

// NetDiff returns the employee's net entry, or nil if it sits on its
// original cell.
func (l *ChangeLedger) NetDiff(employeeID string) *domain.ChangeEvent {
	return l.netMap[employeeID]
}

// History returns every recorded move for the employee in submission order.
// Raw events are never individually deleted.
func (l *ChangeLedger) History(employeeID string) []*domain.ChangeEvent {
	var history []*domain.ChangeEvent
	for _, event := range l.rawEvents {
		if event.EmployeeID == employeeID {
			history = append(history, event)
		}
	}
	return history
}

// RawEvents returns the full audit trail in submission order.
func (l *ChangeLedger) RawEvents() []*domain.ChangeEvent {
	return l.rawEvents
}

// Snapshot returns the ledger state as plain data for persistence.
func (l *ChangeLedger) Snapshot() ([]*domain.ChangeEvent, map[string]*domain.ChangeEvent) {
	return l.rawEvents, l.netMap
}

// Restore rebuilds a ledger from snapshot data.
func Restore(roster *domain.Roster, rawEvents []*domain.ChangeEvent, netMap map[string]*domain.ChangeEvent) *ChangeLedger {
	if netMap == nil {
		netMap = make(map[string]*domain.ChangeEvent)
	}
	return &ChangeLedger{
		roster:    roster,
		rawEvents: rawEvents,
		netMap:    netMap,
	}
}
