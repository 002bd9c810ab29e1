package session_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/internal/review/session"
)

var testConfig = session.Config{
	SearchLimit:          50,
	ExclusionSearchLimit: 2,
}

func employees() []*domain.Employee {
	return []*domain.Employee{
		{ID: "42", Name: "Jane Smith", JobLevel: "MT5", JobFunction: "Engineering", Location: "Berlin", CurrentPosition: 5},
		{ID: "1", Name: "Leo Brown", JobLevel: "MT4", JobFunction: "Engineering", Location: "Berlin", CurrentPosition: 9, ManagerChain: []string{"42"}},
		{ID: "2", Name: "Leo Brown", JobLevel: "MT4", JobFunction: "Design", Location: "Munich", CurrentPosition: 4, ManagerChain: []string{"42"}},
		{ID: "3", Name: "Ada King", JobLevel: "MT3", JobFunction: "Finance", Location: "Hamburg", CurrentPosition: 2},
	}
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New("sess-1", employees(), testConfig, time.Unix(0, 0).UTC())
	require.NoError(t, err)
	return sess
}

func TestSession_ToggleIsReversible(t *testing.T) {
	sess := newSession(t)

	before := sess.Criteria().Key()

	on, err := sess.Toggle(session.FacetLevel, "MT4")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Len(t, sess.VisibleRoster(), 2)

	off, err := sess.Toggle(session.FacetLevel, "MT4")
	require.NoError(t, err)
	assert.False(t, off)
	assert.Equal(t, before, sess.Criteria().Key(), "double toggle restores the prior state")
	assert.Len(t, sess.VisibleRoster(), 4)
}

func TestSession_ToggleUnknownFacet(t *testing.T) {
	sess := newSession(t)
	_, err := sess.Toggle("department", "x")
	require.Error(t, err)
}

func TestSession_ExclusionIndependentOfFacets(t *testing.T) {
	sess := newSession(t)

	_, err := sess.Toggle(session.FacetLevel, "MT4")
	require.NoError(t, err)
	require.Len(t, sess.VisibleRoster(), 2)

	require.NoError(t, sess.Exclude("1"))
	assert.Len(t, sess.VisibleRoster(), 1)

	sess.Include("1")
	assert.Len(t, sess.VisibleRoster(), 2)
}

func TestSession_ExcludeUnknownEmployee(t *testing.T) {
	sess := newSession(t)
	require.Error(t, sess.Exclude("999"))
}

func TestSession_NotesSurviveRevertedMove(t *testing.T) {
	sess := newSession(t)

	require.NoError(t, sess.UpdateNotes("1", "promotion candidate"))
	_, err := sess.ToggleFlag("1", "top-talent")
	require.NoError(t, err)

	// Move away and back to the original cell.
	_, err = sess.RecordMove("1", 6, time.Unix(1, 0))
	require.NoError(t, err)
	_, err = sess.RecordMove("1", 9, time.Unix(2, 0))
	require.NoError(t, err)

	assert.Equal(t, 0, sess.NetCount())
	emp := sess.Roster().Get("1")
	assert.Equal(t, "promotion candidate", emp.Notes, "notes are orthogonal to diff accounting")
	assert.True(t, emp.Flags.Contains("top-talent"))
}

func TestSession_ExclusionSearchUsesSmallerCap(t *testing.T) {
	sess := newSession(t)

	full := sess.Search("MT")
	capped := sess.SearchForExclusion("MT")

	assert.Greater(t, len(full), len(capped))
	assert.Len(t, capped, testConfig.ExclusionSearchLimit)
}

func TestSession_ExportPayload(t *testing.T) {
	sess := newSession(t)

	require.NoError(t, sess.UpdateNotes("1", "note"))
	_, err := sess.RecordMove("1", 3, time.Unix(1, 0))
	require.NoError(t, err)

	payload := sess.ExportPayload()
	require.Len(t, payload, 4)

	byID := make(map[string]session.ExportEntry)
	for _, entry := range payload {
		byID[entry.EmployeeID] = entry
	}

	moved := byID["1"]
	require.NotNil(t, moved.NetDiff)
	assert.Equal(t, 9, moved.NetDiff.OldPosition)
	assert.Equal(t, 3, moved.NetDiff.NewPosition)
	assert.Equal(t, "note", moved.Notes)

	assert.Nil(t, byID["42"].NetDiff, "unmoved employees export no diff")
}

func TestSession_SnapshotRoundTrip(t *testing.T) {
	sess := newSession(t)

	_, err := sess.RecordMove("1", 6, time.Unix(1, 0).UTC())
	require.NoError(t, err)
	_, err = sess.Toggle(session.FacetLocation, "Berlin")
	require.NoError(t, err)
	sess.SetReportingChain("42")
	sess.SetSearchQuery("leo")
	require.NoError(t, sess.UpdateNotes("2", "keep an eye"))

	snap := sess.Snapshot()

	// Snapshots are plain data; a JSON round-trip must preserve every field.
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded session.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored, err := session.FromSnapshot(&decoded, testConfig)
	require.NoError(t, err)

	assert.Equal(t, sess.ID, restored.ID)
	assert.Equal(t, sess.Criteria().Key(), restored.Criteria().Key())
	assert.Equal(t, sess.NetCount(), restored.NetCount())

	origEmp := sess.Roster().Get("1")
	restEmp := restored.Roster().Get("1")
	assert.Equal(t, origEmp.CurrentPosition, restEmp.CurrentPosition)
	assert.Equal(t, origEmp.OriginalPosition, restEmp.OriginalPosition,
		"restore must not re-capture original positions")
	assert.Equal(t, "keep an eye", restored.Roster().Get("2").Notes)

	origIDs := make([]string, 0)
	for _, emp := range sess.VisibleRoster() {
		origIDs = append(origIDs, emp.ID)
	}
	restIDs := make([]string, 0)
	for _, emp := range restored.VisibleRoster() {
		restIDs = append(restIDs, emp.ID)
	}
	assert.Equal(t, origIDs, restIDs, "restored session filters identically")
}

func TestSession_ChainDisambiguation(t *testing.T) {
	sess := newSession(t)

	// Both Leo Browns report to Jane Smith but keep distinct paths.
	pathA, err := sess.ChainPath("1")
	require.NoError(t, err)
	pathB, err := sess.ChainPath("2")
	require.NoError(t, err)
	assert.NotEqual(t, pathA, pathB)

	subtree := sess.SubtreeIDs("42")
	assert.ElementsMatch(t, []string{"42", "1", "2"}, subtree.Values())
}
