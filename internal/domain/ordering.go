package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// PositionUpdate is one (entity, new position) pair of a bulk reorder.
type PositionUpdate struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

// NextPosition returns the rank for a new sibling: max(existing)+1, or 0 for
// an empty scope. Ranks are sparse and never recycled; gaps from deletions
// stay.
func NextPosition(existing []int) int {
	if len(existing) == 0 {
		return 0
	}
	max := existing[0]
	for _, p := range existing[1:] {
		if p > max {
			max = p
		}
	}
	return max + 1
}

// ValidateReorder checks the shape of a bulk reorder payload. Positions are
// stored as given: collisions and non-monotonic values are the caller's
// concern, not rejected here.
func ValidateReorder(updates []PositionUpdate) error {
	if len(updates) == 0 {
		return fmt.Errorf("ordering: empty reorder: %w", ErrValidation)
	}
	for i, u := range updates {
		if u.ID == uuid.Nil {
			return fmt.Errorf("ordering: entry %d has no id: %w", i, ErrValidation)
		}
	}
	return nil
}
