package v1

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/corkboard/corkboard/internal/board"
	"github.com/corkboard/corkboard/internal/domain"
)

// BoardService abstracts board aggregate operations for handler testing.
// *board.Service satisfies this interface.
type BoardService interface {
	ListBoards(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	CreateBoard(ctx context.Context, userID uuid.UUID, title string) (*domain.Board, error)
	GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*board.BoardTree, error)
	UpdateBoardTitle(ctx context.Context, userID, boardID uuid.UUID, title string) (*domain.Board, error)
	DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) (*domain.Board, error)

	AddMember(ctx context.Context, userID, boardID uuid.UUID, email string) (*domain.Member, error)
	RemoveMember(ctx context.Context, userID, boardID, memberUserID uuid.UUID) error

	CreateList(ctx context.Context, userID, boardID uuid.UUID, title string) (*domain.List, error)
	UpdateList(ctx context.Context, userID, listID uuid.UUID, title string) (*domain.List, error)
	DeleteList(ctx context.Context, userID, listID uuid.UUID) error
	ReorderLists(ctx context.Context, userID uuid.UUID, updates []domain.PositionUpdate) error

	CreateCard(ctx context.Context, userID, listID uuid.UUID, title, description string, dueDate *time.Time, labels []string) (*domain.Card, error)
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*board.CardDetail, error)
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, params board.UpdateCardParams) (*domain.Card, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
	MoveCard(ctx context.Context, userID, cardID, targetListID uuid.UUID, position int) (*domain.Card, error)
	ReorderCards(ctx context.Context, userID uuid.UUID, updates []domain.PositionUpdate) error

	AddComment(ctx context.Context, userID, cardID uuid.UUID, body string) (*domain.Comment, error)
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GenerateAPIKey(ctx context.Context, userID uuid.UUID, name string) (string, *domain.APIKey, error)
	ListAPIKeys(ctx context.Context, userID uuid.UUID) ([]*domain.APIKey, error)
	RevokeAPIKey(ctx context.Context, userID, keyID uuid.UUID) error
}

// serviceError maps domain sentinel errors onto HTTP problem responses.
// Anything unmapped becomes an opaque 500 so internals never leak.
func serviceError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(notFoundMsg)
	case errors.Is(err, domain.ErrForbidden):
		return huma.Error403Forbidden("you do not have access to this board")
	case errors.Is(err, domain.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, domain.ErrConflict):
		return huma.Error409Conflict(err.Error())
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}
