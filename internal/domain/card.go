package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Card is a task unit owned by exactly one list at a time. Ownership changes
// atomically on move; there is never an intermediate unowned state.
type Card struct {
	ID          uuid.UUID  `json:"id"`
	ListID      uuid.UUID  `json:"list_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Labels      []string   `json:"labels"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	CardID    uuid.UUID `json:"card_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type CardRepository interface {
	Create(ctx context.Context, c *Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*Card, error)
	// ListByList returns cards ordered by ascending position.
	ListByList(ctx context.Context, listID uuid.UUID) ([]*Card, error)
	// ListByBoard returns all cards of a board ordered by list and position,
	// for nested board reads.
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*Card, error)
	PositionsByList(ctx context.Context, listID uuid.UUID) ([]int, error)
	Update(ctx context.Context, c *Card) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Move sets list_id and position in a single statement so the card's
	// list membership switches with no observable intermediate state.
	Move(ctx context.Context, cardID, targetListID uuid.UUID, position int) error
	// Reorder applies all position updates in one transaction. Every card
	// must belong to listID; otherwise nothing is applied and ErrNotFound
	// is returned.
	Reorder(ctx context.Context, listID uuid.UUID, updates []PositionUpdate) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	// ListByCard returns comments newest-first.
	ListByCard(ctx context.Context, cardID uuid.UUID) ([]*Comment, error)
}
