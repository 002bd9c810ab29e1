package domain_test

import (
	"testing"

	"github.com/talentgrid/talentgrid-backend/internal/review/domain"
	"github.com/talentgrid/talentgrid-backend/pkg/errors"
)

func TestCellCategories(t *testing.T) {
	tests := []struct {
		pos     int
		perf    domain.Category
		pot     domain.Category
	}{
		{1, domain.CategoryLow, domain.CategoryHigh},
		{2, domain.CategoryMedium, domain.CategoryHigh},
		{3, domain.CategoryHigh, domain.CategoryHigh},
		{4, domain.CategoryLow, domain.CategoryMedium},
		{5, domain.CategoryMedium, domain.CategoryMedium},
		{6, domain.CategoryHigh, domain.CategoryMedium},
		{7, domain.CategoryLow, domain.CategoryLow},
		{8, domain.CategoryMedium, domain.CategoryLow},
		{9, domain.CategoryHigh, domain.CategoryLow},
	}

	for _, tt := range tests {
		perf, pot, err := domain.CellCategories(tt.pos)
		if err != nil {
			t.Fatalf("CellCategories(%d) unexpected error: %v", tt.pos, err)
		}
		if perf != tt.perf || pot != tt.pot {
			t.Errorf("CellCategories(%d) = (%s, %s), want (%s, %s)",
				tt.pos, perf, pot, tt.perf, tt.pot)
		}
	}
}

func TestCellCategories_OutOfRange(t *testing.T) {
	for _, pos := range []int{0, -1, 10, 100} {
		_, _, err := domain.CellCategories(pos)
		if err == nil {
			t.Errorf("CellCategories(%d) expected error", pos)
			continue
		}
		if !errors.Is(err, errors.ErrInvariantViolation) {
			t.Errorf("CellCategories(%d) error = %v, want invariant violation", pos, err)
		}
	}
}
