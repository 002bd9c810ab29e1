package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/internal/review/session"
	"github.com/talentgrid/talentgrid-backend/pkg/errors"
	"github.com/talentgrid/talentgrid-backend/pkg/logger"
)

type fakeStore struct {
	snapshots map[string]*session.Snapshot
}

func newFakeStore() *fakeStore {
	return &fakeStore{snapshots: make(map[string]*session.Snapshot)}
}

func (f *fakeStore) Save(_ context.Context, snap *session.Snapshot) error {
	f.snapshots[snap.SessionID] = snap
	return nil
}

func (f *fakeStore) Load(_ context.Context, sessionID string) (*session.Snapshot, error) {
	snap, ok := f.snapshots[sessionID]
	if !ok {
		return nil, errors.NotFound("session snapshot")
	}
	return snap, nil
}

func (f *fakeStore) Delete(_ context.Context, sessionID string) error {
	delete(f.snapshots, sessionID)
	return nil
}

type recordingPublisher struct {
	imported    int
	recorded    int
	reverted    int
	snapshotted int
	notes       int
	flags       int
}

func (r *recordingPublisher) SessionImported(context.Context, string, int, int) { r.imported++ }
func (r *recordingPublisher) MoveRecorded(context.Context, string, *domain.ChangeEvent, int) {
	r.recorded++
}
func (r *recordingPublisher) MoveReverted(context.Context, string, string, int) { r.reverted++ }
func (r *recordingPublisher) SessionSnapshotted(context.Context, string, int)   { r.snapshotted++ }
func (r *recordingPublisher) NotesUpdated(context.Context, string, string)      { r.notes++ }
func (r *recordingPublisher) FlagsUpdated(context.Context, string, string, []string) { r.flags++ }

func newService(store session.SnapshotStore, pub session.EventPublisher) *session.Service {
	log := logger.New("review-service-test", "test")
	return session.NewService(store, pub, testConfig, log).
		WithClock(func() time.Time { return time.Unix(42, 0).UTC() })
}

func TestService_ImportAndGet(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(newFakeStore(), pub)

	sess, err := svc.Import(context.Background(), employees())
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, pub.imported)

	found, err := svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, found)

	_, err = svc.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestService_RecordMovePublishesOutcome(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(newFakeStore(), pub)

	sess, err := svc.Import(context.Background(), employees())
	require.NoError(t, err)

	// Employee 1 starts at 9.
	_, err = svc.RecordMove(context.Background(), sess.ID, "1", 6)
	require.NoError(t, err)
	assert.Equal(t, 1, pub.recorded)
	assert.Equal(t, 0, pub.reverted)

	_, err = svc.RecordMove(context.Background(), sess.ID, "1", 9)
	require.NoError(t, err)
	assert.Equal(t, 1, pub.recorded)
	assert.Equal(t, 1, pub.reverted)
	assert.Equal(t, 0, sess.NetCount())
}

func TestService_RecordMoveRejectionsLeaveStateAlone(t *testing.T) {
	svc := newService(newFakeStore(), nil)

	sess, err := svc.Import(context.Background(), employees())
	require.NoError(t, err)

	_, err = svc.RecordMove(context.Background(), sess.ID, "unknown", 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrReference))

	_, err = svc.RecordMove(context.Background(), sess.ID, "1", 11)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvariantViolation))

	assert.Equal(t, 0, sess.NetCount())
	history, err := sess.History("1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestService_SnapshotRestore(t *testing.T) {
	store := newFakeStore()
	pub := &recordingPublisher{}
	svc := newService(store, pub)

	sess, err := svc.Import(context.Background(), employees())
	require.NoError(t, err)

	_, err = svc.RecordMove(context.Background(), sess.ID, "1", 3)
	require.NoError(t, err)
	require.NoError(t, svc.Snapshot(context.Background(), sess.ID))
	assert.Equal(t, 1, pub.snapshotted)

	require.NoError(t, svc.Close(sess.ID))
	_, err = svc.Get(sess.ID)
	require.Error(t, err)

	restored, err := svc.Restore(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.NetCount())
	assert.Equal(t, 3, restored.Roster().Get("1").CurrentPosition)
	assert.Equal(t, 9, restored.Roster().Get("1").OriginalPosition)
}

func TestService_NotesAndFlags(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(newFakeStore(), pub)

	sess, err := svc.Import(context.Background(), employees())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateNotes(context.Background(), sess.ID, "1", "solid quarter"))
	require.NoError(t, svc.SetFlags(context.Background(), sess.ID, "1", []string{"top-talent"}))
	assert.Equal(t, 1, pub.notes)
	assert.Equal(t, 1, pub.flags)

	err = svc.UpdateNotes(context.Background(), sess.ID, "ghost", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrReference))
}
