package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/internal/review/repository"
	"github.com/talentgrid/talentgrid-backend/internal/review/session"
	"github.com/talentgrid/talentgrid-backend/pkg/database"
	"github.com/talentgrid/talentgrid-backend/pkg/errors"
	"github.com/talentgrid/talentgrid-backend/pkg/logger"
	"github.com/talentgrid/talentgrid-backend/pkg/testutil"
)

func newRepo(t *testing.T) (*repository.SnapshotRepository, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	log := logger.New("review-service-test", "test")
	return repository.NewSnapshotRepository(database.FromSqlx(mockDB.DB, log)), mockDB
}

func sampleSnapshot() *session.Snapshot {
	return &session.Snapshot{
		SessionID: "sess-1",
		CreatedAt: time.Unix(42, 0).UTC(),
		Employees: []*domain.Employee{
			{
				ID:               "1",
				Name:             "Leo Brown",
				JobLevel:         "MT4",
				JobFunction:      "Engineering",
				Location:         "Berlin",
				CurrentPosition:  3,
				OriginalPosition: 9,
				Flags:            domain.NewStringSet("top-talent"),
			},
		},
		Criteria: domain.NewFilterCriteria(),
	}
}

func TestSnapshotRepository_Save(t *testing.T) {
	repo, mockDB := newRepo(t)
	defer mockDB.Close()

	mockDB.Mock.ExpectExec("INSERT INTO session_snapshots").
		WithArgs("sess-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), sampleSnapshot())
	require.NoError(t, err)

	mockDB.AssertExpectations(t)
}

func TestSnapshotRepository_LoadRoundTrip(t *testing.T) {
	repo, mockDB := newRepo(t)
	defer mockDB.Close()

	snap := sampleSnapshot()
	payload, err := json.Marshal(snap)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"session_id", "payload", "created_at", "updated_at"}).
		AddRow("sess-1", payload, time.Now(), time.Now())

	mockDB.Mock.ExpectQuery("SELECT session_id, payload, created_at, updated_at").
		WithArgs("sess-1").
		WillReturnRows(rows)

	loaded, err := repo.Load(context.Background(), "sess-1")
	require.NoError(t, err)

	assert.Equal(t, snap.SessionID, loaded.SessionID)
	require.Len(t, loaded.Employees, 1)
	assert.Equal(t, "Leo Brown", loaded.Employees[0].Name)
	assert.Equal(t, 3, loaded.Employees[0].CurrentPosition)
	assert.Equal(t, 9, loaded.Employees[0].OriginalPosition)
	assert.True(t, loaded.Employees[0].Flags.Contains("top-talent"))

	mockDB.AssertExpectations(t)
}

func TestSnapshotRepository_LoadNotFound(t *testing.T) {
	repo, mockDB := newRepo(t)
	defer mockDB.Close()

	mockDB.Mock.ExpectQuery("SELECT session_id, payload, created_at, updated_at").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Load(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.AssertExpectations(t)
}

func TestSnapshotRepository_Delete(t *testing.T) {
	repo, mockDB := newRepo(t)
	defer mockDB.Close()

	mockDB.Mock.ExpectExec("DELETE FROM session_snapshots").
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "sess-1")
	require.NoError(t, err)

	mockDB.AssertExpectations(t)
}
