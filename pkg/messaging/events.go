package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Review session events
	EventSessionImported    = "review.session.imported"
	EventSessionSnapshotted = "review.session.snapshotted"
	EventSessionRestored    = "review.session.restored"

	// Move events
	EventMoveRecorded = "review.move.recorded"
	EventMoveReverted = "review.move.reverted"

	// Employee annotation events
	EventNotesUpdated = "review.notes.updated"
	EventFlagsUpdated = "review.flags.updated"
)

// Exchange names
const (
	ExchangeReviewEvents = "review.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Review session events

// SessionImportedEvent is published when a roster is imported into a new session
type SessionImportedEvent struct {
	SessionID   string `json:"session_id"`
	RosterSize  int    `json:"roster_size"`
	FlaggedRows int    `json:"flagged_rows,omitempty"`
}

// SessionSnapshottedEvent is published when a session snapshot is persisted
type SessionSnapshottedEvent struct {
	SessionID string `json:"session_id"`
	NetCount  int    `json:"net_count"`
}

// MoveRecordedEvent is published when a grid move is recorded
type MoveRecordedEvent struct {
	SessionID   string `json:"session_id"`
	EmployeeID  string `json:"employee_id"`
	OldPosition int    `json:"old_position"`
	NewPosition int    `json:"new_position"`
	NetCount    int    `json:"net_count"`
}

// MoveRevertedEvent is published when a move returns an employee to its
// original cell and the net entry clears
type MoveRevertedEvent struct {
	SessionID  string `json:"session_id"`
	EmployeeID string `json:"employee_id"`
	NetCount   int    `json:"net_count"`
}

// NotesUpdatedEvent is published when an employee's notes change
type NotesUpdatedEvent struct {
	SessionID  string `json:"session_id"`
	EmployeeID string `json:"employee_id"`
}

// FlagsUpdatedEvent is published when an employee's flag set changes
type FlagsUpdatedEvent struct {
	SessionID  string   `json:"session_id"`
	EmployeeID string   `json:"employee_id"`
	Flags      []string `json:"flags"`
}
