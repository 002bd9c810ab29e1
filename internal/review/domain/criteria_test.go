package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
)

func TestStringSet_ToggleIsReversible(t *testing.T) {
	s := domain.NewStringSet()

	assert.True(t, s.Toggle("MT4"))
	assert.True(t, s.Contains("MT4"))

	assert.False(t, s.Toggle("MT4"))
	assert.False(t, s.Contains("MT4"))
	assert.True(t, s.IsEmpty())
}

func TestFilterCriteria_KeyIsStable(t *testing.T) {
	a := domain.NewFilterCriteria()
	a.Levels.Add("MT4")
	a.Levels.Add("MT3")
	a.Locations.Add("Berlin")

	b := domain.NewFilterCriteria()
	b.Locations.Add("Berlin")
	b.Levels.Add("MT3")
	b.Levels.Add("MT4")

	assert.Equal(t, a.Key(), b.Key(), "insertion order must not affect the key")

	b.Levels.Remove("MT3")
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestFilterCriteria_CloneIsIndependent(t *testing.T) {
	orig := domain.NewFilterCriteria()
	orig.Flags.Add("top-talent")

	clone := orig.Clone()
	clone.Flags.Add("flight-risk")
	clone.ReportingChainManagerID = "42"

	assert.False(t, orig.Flags.Contains("flight-risk"))
	assert.Empty(t, orig.ReportingChainManagerID)
}

func TestFilterCriteria_JSONRoundTrip(t *testing.T) {
	c := domain.NewFilterCriteria()
	c.Levels.Add("MT4")
	c.JobFunctions.Add("Engineering")
	c.ExcludedIDs.Add("7")
	c.ReportingChainManagerID = "42"
	c.SearchQuery = "leo"

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var restored domain.FilterCriteria
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, c.Key(), restored.Key(), "round-trip must preserve every field")

	again, err := json.Marshal(restored)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again), "encoding must be deterministic")
}

func TestFilterCriteria_IsEmpty(t *testing.T) {
	c := domain.NewFilterCriteria()
	assert.True(t, c.IsEmpty())

	c.SearchQuery = "x"
	assert.False(t, c.IsEmpty())
}
