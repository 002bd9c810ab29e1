package events

import (
	"context"

	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/pkg/logger"
	"github.com/talentgrid/talentgrid-backend/pkg/messaging"
)

// ReviewEventPublisher publishes review session events
type ReviewEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewReviewEventPublisher creates a new review event publisher
func NewReviewEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*ReviewEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeReviewEvents, "review-service", log)
	if err != nil {
		return nil, err
	}

	return &ReviewEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// SessionImported publishes a session imported event
func (p *ReviewEventPublisher) SessionImported(ctx context.Context, sessionID string, rosterSize, flagged int) {
	data := messaging.SessionImportedEvent{
		SessionID:   sessionID,
		RosterSize:  rosterSize,
		FlaggedRows: flagged,
	}

	if err := p.publisher.Publish(ctx, messaging.EventSessionImported, data); err != nil {
		p.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to publish session imported event")
	}
}

// MoveRecorded publishes a move recorded event
func (p *ReviewEventPublisher) MoveRecorded(ctx context.Context, sessionID string, event *domain.ChangeEvent, netCount int) {
	data := messaging.MoveRecordedEvent{
		SessionID:   sessionID,
		EmployeeID:  event.EmployeeID,
		OldPosition: event.OldPosition,
		NewPosition: event.NewPosition,
		NetCount:    netCount,
	}

	if err := p.publisher.Publish(ctx, messaging.EventMoveRecorded, data); err != nil {
		p.logger.Error().Err(err).
			Str("session_id", sessionID).
			Str("employee_id", event.EmployeeID).
			Msg("failed to publish move recorded event")
	}
}

// MoveReverted publishes a move reverted event
func (p *ReviewEventPublisher) MoveReverted(ctx context.Context, sessionID, employeeID string, netCount int) {
	data := messaging.MoveRevertedEvent{
		SessionID:  sessionID,
		EmployeeID: employeeID,
		NetCount:   netCount,
	}

	if err := p.publisher.Publish(ctx, messaging.EventMoveReverted, data); err != nil {
		p.logger.Error().Err(err).
			Str("session_id", sessionID).
			Str("employee_id", employeeID).
			Msg("failed to publish move reverted event")
	}
}

// SessionSnapshotted publishes a session snapshotted event
func (p *ReviewEventPublisher) SessionSnapshotted(ctx context.Context, sessionID string, netCount int) {
	data := messaging.SessionSnapshottedEvent{
		SessionID: sessionID,
		NetCount:  netCount,
	}

	if err := p.publisher.Publish(ctx, messaging.EventSessionSnapshotted, data); err != nil {
		p.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to publish session snapshotted event")
	}
}

// NotesUpdated publishes a notes updated event
func (p *ReviewEventPublisher) NotesUpdated(ctx context.Context, sessionID, employeeID string) {
	data := messaging.NotesUpdatedEvent{
		SessionID:  sessionID,
		EmployeeID: employeeID,
	}

	if err := p.publisher.Publish(ctx, messaging.EventNotesUpdated, data); err != nil {
		p.logger.Error().Err(err).
			Str("session_id", sessionID).
			Str("employee_id", employeeID).
			Msg("failed to publish notes updated event")
	}
}

// FlagsUpdated publishes a flags updated event
func (p *ReviewEventPublisher) FlagsUpdated(ctx context.Context, sessionID, employeeID string, flags []string) {
	data := messaging.FlagsUpdatedEvent{
		SessionID:  sessionID,
		EmployeeID: employeeID,
		Flags:      flags,
	}

	if err := p.publisher.Publish(ctx, messaging.EventFlagsUpdated, data); err != nil {
		p.logger.Error().Err(err).
			Str("session_id", sessionID).
			Str("employee_id", employeeID).
			Msg("failed to publish flags updated event")
	}
}
