package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/pkg/errors"
	"github.com/talentgrid/talentgrid-backend/pkg/logger"
)

// EventPublisher fans review events out to interested consumers. Publishing
// is fire-and-forget; failures never affect session state.
type EventPublisher interface {
	SessionImported(ctx context.Context, sessionID string, rosterSize, flagged int)
	MoveRecorded(ctx context.Context, sessionID string, event *domain.ChangeEvent, netCount int)
	MoveReverted(ctx context.Context, sessionID, employeeID string, netCount int)
	SessionSnapshotted(ctx context.Context, sessionID string, netCount int)
	NotesUpdated(ctx context.Context, sessionID, employeeID string)
	FlagsUpdated(ctx context.Context, sessionID, employeeID string, flags []string)
}

// SnapshotStore persists session snapshots for resume
type SnapshotStore interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

// Service owns the session registry and wires persistence and events around
// the core. The registry map is the only shared state; each session itself
// has a single writer.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store     SnapshotStore
	publisher EventPublisher
	config    Config
	logger    *logger.Logger
	now       func() time.Time
}

// NewService creates a review service. store and publisher may be nil in
// tests; both are optional collaborators.
func NewService(store SnapshotStore, publisher EventPublisher, cfg Config, log *logger.Logger) *Service {
	return &Service{
		sessions:  make(map[string]*Session),
		store:     store,
		publisher: publisher,
		config:    cfg,
		logger:    log,
		now:       time.Now,
	}
}

// WithClock overrides the time source, used by tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Import creates a session from an imported roster
func (s *Service) Import(ctx context.Context, employees []*domain.Employee) (*Session, error) {
	sess, err := New(uuid.New().String(), employees, s.config, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	flagged := len(sess.resolver.Flagged())
	if flagged > 0 {
		s.logger.Warn().
			Str("session_id", sess.ID).
			Int("flagged", flagged).
			Msg("roster contains malformed manager chains")
	}

	s.logger.Info().
		Str("session_id", sess.ID).
		Int("roster_size", sess.Roster().Len()).
		Msg("roster imported")

	if s.publisher != nil {
		s.publisher.SessionImported(ctx, sess.ID, sess.Roster().Len(), flagged)
	}

	return sess, nil
}

// Get returns the session with the given id
func (s *Service) Get(sessionID string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.NotFound("session")
	}
	return sess, nil
}

// Close discards a session without persisting it
func (s *Service) Close(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return errors.NotFound("session")
	}
	delete(s.sessions, sessionID)
	return nil
}

// RecordMove appends a move to the session ledger and publishes the outcome
func (s *Service) RecordMove(ctx context.Context, sessionID, employeeID string, newPosition int) (*domain.ChangeEvent, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	event, err := sess.RecordMove(employeeID, newPosition, s.now().UTC())
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Str("employee_id", employeeID).
			Int("position", newPosition).
			Msg("move rejected")
		return nil, err
	}

	netCount := sess.NetCount()
	s.logger.Info().
		Str("session_id", sessionID).
		Str("employee_id", employeeID).
		Int("old_position", event.OldPosition).
		Int("new_position", event.NewPosition).
		Int("net_count", netCount).
		Msg("move recorded")

	if s.publisher != nil {
		if sess.Roster().Get(employeeID).Modified() {
			s.publisher.MoveRecorded(ctx, sessionID, event, netCount)
		} else {
			s.publisher.MoveReverted(ctx, sessionID, employeeID, netCount)
		}
	}

	return event, nil
}

// UpdateNotes updates an employee's notes
func (s *Service) UpdateNotes(ctx context.Context, sessionID, employeeID, notes string) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	if err := sess.UpdateNotes(employeeID, notes); err != nil {
		return err
	}
	if s.publisher != nil {
		s.publisher.NotesUpdated(ctx, sessionID, employeeID)
	}
	return nil
}

// SetFlags replaces an employee's flag set
func (s *Service) SetFlags(ctx context.Context, sessionID, employeeID string, flags []string) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	if err := sess.SetFlags(employeeID, flags); err != nil {
		return err
	}
	if s.publisher != nil {
		s.publisher.FlagsUpdated(ctx, sessionID, employeeID, flags)
	}
	return nil
}

// Snapshot persists the session for resume
func (s *Service) Snapshot(ctx context.Context, sessionID string) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	if s.store == nil {
		return errors.Internal("snapshot store not configured")
	}

	snap := sess.Snapshot()
	if err := s.store.Save(ctx, snap); err != nil {
		return err
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Int("net_count", sess.NetCount()).
		Msg("session snapshotted")

	if s.publisher != nil {
		s.publisher.SessionSnapshotted(ctx, sessionID, sess.NetCount())
	}
	return nil
}

// Restore loads a persisted session back into the registry
func (s *Service) Restore(ctx context.Context, sessionID string) (*Session, error) {
	if s.store == nil {
		return nil, errors.Internal("snapshot store not configured")
	}

	snap, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess, err := FromSnapshot(snap, s.config)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info().
		Str("session_id", sess.ID).
		Int("roster_size", sess.Roster().Len()).
		Msg("session restored")

	return sess, nil
}
