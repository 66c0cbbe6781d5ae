package domain_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corkboard/corkboard/internal/domain"
)

func TestNextPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []int
		want     int
	}{
		{name: "empty_scope", existing: nil, want: 0},
		{name: "single_sibling", existing: []int{0}, want: 1},
		{name: "dense", existing: []int{0, 1, 2}, want: 3},
		{name: "sparse_gaps", existing: []int{0, 4, 9}, want: 10},
		{name: "unsorted", existing: []int{7, 2, 5}, want: 8},
		{name: "colliding_ranks", existing: []int{3, 3, 3}, want: 4},
		{name: "negative_ranks", existing: []int{-5, -2}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, domain.NextPosition(tt.existing))
		})
	}
}

// NextPosition never reuses a rank already present in the scope.
func TestNextPosition_NeverCollides(t *testing.T) {
	t.Parallel()

	existing := []int{0, 1, 5, 5, 12}
	next := domain.NextPosition(existing)

	for _, p := range existing {
		assert.NotEqual(t, p, next)
	}

	for n := 1; n <= 50; n++ {
		existing = append(existing, next)
		next = domain.NextPosition(existing)
		for _, p := range existing {
			assert.NotEqual(t, p, next)
		}
	}
}

func TestValidateReorder(t *testing.T) {
	t.Parallel()

	t.Run("empty_batch", func(t *testing.T) {
		t.Parallel()

		err := domain.ValidateReorder(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing_id", func(t *testing.T) {
		t.Parallel()

		err := domain.ValidateReorder([]domain.PositionUpdate{
			{ID: uuid.New(), Position: 0},
			{ID: uuid.Nil, Position: 1},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("valid_batch", func(t *testing.T) {
		t.Parallel()

		updates := []domain.PositionUpdate{
			{ID: uuid.New(), Position: 2},
			{ID: uuid.New(), Position: 0},
			{ID: uuid.New(), Position: 1},
		}
		assert.NoError(t, domain.ValidateReorder(updates))
	})

	// Colliding or non-monotonic positions are stored as given, so they
	// pass shape validation.
	t.Run("colliding_positions_accepted", func(t *testing.T) {
		t.Parallel()

		updates := []domain.PositionUpdate{
			{ID: uuid.New(), Position: 7},
			{ID: uuid.New(), Position: 7},
			{ID: uuid.New(), Position: -1},
		}
		assert.NoError(t, domain.ValidateReorder(updates))
	})
}

func TestNewBoard(t *testing.T) {
	t.Parallel()

	owner := uuid.New()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		b, err := domain.NewBoard(owner, "Sprint")
		require.NoError(t, err)
		assert.Equal(t, "Sprint", b.Title)
		assert.Equal(t, owner, b.OwnerID)
		assert.NotEqual(t, uuid.Nil, b.ID)
	})

	t.Run("trims_title", func(t *testing.T) {
		t.Parallel()

		b, err := domain.NewBoard(owner, "  Sprint  ")
		require.NoError(t, err)
		assert.Equal(t, "Sprint", b.Title)
	})

	tests := []struct {
		owner uuid.UUID
		title string
	}{
		{owner: uuid.Nil, title: "Sprint"},
		{owner: owner, title: ""},
		{owner: owner, title: "   "},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("invalid_%d", i), func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewBoard(tt.owner, tt.title)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
