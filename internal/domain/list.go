package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// List is an ordered column of cards within a board. Position is a sparse
// integer rank; ascending position defines display order.
type List struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListRepository interface {
	Create(ctx context.Context, l *List) error
	GetByID(ctx context.Context, id uuid.UUID) (*List, error)
	// ListByBoard returns lists ordered by ascending position.
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*List, error)
	// PositionsByBoard returns the position values of all lists on a board.
	PositionsByBoard(ctx context.Context, boardID uuid.UUID) ([]int, error)
	Update(ctx context.Context, l *List) error
	// Delete removes the list and all its cards and comments in one
	// transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	// Reorder applies all position updates in one transaction. Every list
	// must belong to boardID; otherwise nothing is applied and ErrNotFound
	// is returned.
	Reorder(ctx context.Context, boardID uuid.UUID, updates []PositionUpdate) error
}
