package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
)

func TestNewRoster_CapturesOriginalPosition(t *testing.T) {
	roster, err := domain.NewRoster([]*domain.Employee{
		{ID: "1", Name: "Ada King", CurrentPosition: 9},
		{ID: "2", Name: "Leo Brown", CurrentPosition: 5},
	})
	require.NoError(t, err)

	emp := roster.Get("1")
	require.NotNil(t, emp)
	assert.Equal(t, 9, emp.OriginalPosition)
	assert.False(t, emp.Modified())

	emp.CurrentPosition = 3
	assert.Equal(t, 9, emp.OriginalPosition, "original position must never be recomputed")
	assert.True(t, emp.Modified())
}

func TestNewRoster_RejectsDuplicateIDs(t *testing.T) {
	_, err := domain.NewRoster([]*domain.Employee{
		{ID: "1", Name: "Leo Brown", CurrentPosition: 5},
		{ID: "1", Name: "Leo Brown", CurrentPosition: 6},
	})
	require.Error(t, err)
}

func TestNewRoster_AllowsDuplicateNames(t *testing.T) {
	roster, err := domain.NewRoster([]*domain.Employee{
		{ID: "1", Name: "Leo Brown", CurrentPosition: 5},
		{ID: "2", Name: "Leo Brown", CurrentPosition: 6},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, roster.Len())
	assert.NotSame(t, roster.Get("1"), roster.Get("2"))
}

func TestNewRoster_RejectsOutOfRangePosition(t *testing.T) {
	_, err := domain.NewRoster([]*domain.Employee{
		{ID: "1", Name: "Ada King", CurrentPosition: 12},
	})
	require.Error(t, err)
}

func TestNewRoster_TruncatesLongChains(t *testing.T) {
	roster, err := domain.NewRoster([]*domain.Employee{
		{ID: "1", Name: "Ada King", CurrentPosition: 1,
			ManagerChain: []string{"2", "3", "4", "5", "6", "7", "8", "9"}},
	})
	require.NoError(t, err)
	assert.Len(t, roster.Get("1").ManagerChain, domain.MaxChainDepth)
}

func TestRoster_PreservesImportOrder(t *testing.T) {
	roster, err := domain.NewRoster([]*domain.Employee{
		{ID: "c", Name: "C", CurrentPosition: 1},
		{ID: "a", Name: "A", CurrentPosition: 2},
		{ID: "b", Name: "B", CurrentPosition: 3},
	})
	require.NoError(t, err)

	var ids []string
	for _, emp := range roster.Employees() {
		ids = append(ids, emp.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}
