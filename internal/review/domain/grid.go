package domain

import (
	"fmt"

	"github.com/talentgrid/talentgrid-backend/pkg/errors"
)

// Category is a performance or potential rating derived from a grid cell
type Category string

const (
	CategoryLow    Category = "low"
	CategoryMedium Category = "medium"
	CategoryHigh   Category = "high"
)

// Grid positions are integers 1-9 laid out row-major from the top-left cell.
// Columns encode performance (low to high, left to right), rows encode
// potential (high at the top). Position 3 is the "star" cell (high potential,
// high performance), position 7 the lowest in both dimensions.
const (
	MinPosition = 1
	MaxPosition = 9
)

var categories = [3]Category{CategoryLow, CategoryMedium, CategoryHigh}

// ValidPosition reports whether pos is a legal grid cell
func ValidPosition(pos int) bool {
	return pos >= MinPosition && pos <= MaxPosition
}

// CellCategories maps a grid cell to its (performance, potential) pair.
// Returns an InvariantViolation for positions outside 1-9.
func CellCategories(pos int) (performance, potential Category, err error) {
	if !ValidPosition(pos) {
		return "", "", errors.InvariantViolation(
			fmt.Sprintf("grid position %d is outside 1-9", pos))
	}

	row := (pos - MinPosition) / 3
	col := (pos - MinPosition) % 3

	return categories[col], categories[2-row], nil
}

// MustCellCategories is CellCategories for positions already validated by the
// caller. Panics on an illegal cell, which indicates a programming error.
func MustCellCategories(pos int) (performance, potential Category) {
	perf, pot, err := CellCategories(pos)
	if err != nil {
		panic(err)
	}
	return perf, pot
}
