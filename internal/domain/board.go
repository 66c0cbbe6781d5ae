package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
)

type Board struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is a (board, user) access grant. The owner's row is created
// automatically at board creation; further rows come from invitations.
type Member struct {
	BoardID   uuid.UUID  `json:"board_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Role      MemberRole `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewBoard creates a Board with validated required fields.
func NewBoard(ownerID uuid.UUID, title string) (*Board, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("board: owner ID is required: %w", ErrValidation)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("board: title is required: %w", ErrValidation)
	}
	now := time.Now()
	return &Board{
		ID:        uuid.New(),
		Title:     title,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type BoardRepository interface {
	// Create inserts the board and its owner member row in one transaction.
	Create(ctx context.Context, b *Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*Board, error)
	// ListForUser returns boards the user owns or is a member of.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Board, error)
	Update(ctx context.Context, b *Board) error
	// Delete removes the board and all descendant members, lists, cards and
	// comments in one transaction. No orphan rows survive.
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberRepository interface {
	Add(ctx context.Context, m *Member) error
	Remove(ctx context.Context, boardID, userID uuid.UUID) error
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*Member, error)
}
