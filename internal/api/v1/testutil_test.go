package v1_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/corkboard/corkboard/internal/board"
	"github.com/corkboard/corkboard/internal/domain"
	"github.com/corkboard/corkboard/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject user into context for DoCtx
// ---------------------------------------------------------------------------

func userCtx(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyUserID, userID)
}

// ---------------------------------------------------------------------------
// Mock BoardService
// ---------------------------------------------------------------------------

type mockBoardService struct {
	listBoardsFunc       func(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	createBoardFunc      func(ctx context.Context, userID uuid.UUID, title string) (*domain.Board, error)
	getBoardFunc         func(ctx context.Context, userID, boardID uuid.UUID) (*board.BoardTree, error)
	updateBoardTitleFunc func(ctx context.Context, userID, boardID uuid.UUID, title string) (*domain.Board, error)
	deleteBoardFunc      func(ctx context.Context, userID, boardID uuid.UUID) (*domain.Board, error)
	addMemberFunc        func(ctx context.Context, userID, boardID uuid.UUID, email string) (*domain.Member, error)
	removeMemberFunc     func(ctx context.Context, userID, boardID, memberUserID uuid.UUID) error
	createListFunc       func(ctx context.Context, userID, boardID uuid.UUID, title string) (*domain.List, error)
	updateListFunc       func(ctx context.Context, userID, listID uuid.UUID, title string) (*domain.List, error)
	deleteListFunc       func(ctx context.Context, userID, listID uuid.UUID) error
	reorderListsFunc     func(ctx context.Context, userID uuid.UUID, updates []domain.PositionUpdate) error
	createCardFunc       func(ctx context.Context, userID, listID uuid.UUID, title, description string, dueDate *time.Time, labels []string) (*domain.Card, error)
	getCardFunc          func(ctx context.Context, userID, cardID uuid.UUID) (*board.CardDetail, error)
	updateCardFunc       func(ctx context.Context, userID, cardID uuid.UUID, params board.UpdateCardParams) (*domain.Card, error)
	deleteCardFunc       func(ctx context.Context, userID, cardID uuid.UUID) error
	moveCardFunc         func(ctx context.Context, userID, cardID, targetListID uuid.UUID, position int) (*domain.Card, error)
	reorderCardsFunc     func(ctx context.Context, userID uuid.UUID, updates []domain.PositionUpdate) error
	addCommentFunc       func(ctx context.Context, userID, cardID uuid.UUID, body string) (*domain.Comment, error)
}

func (m *mockBoardService) ListBoards(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	return m.listBoardsFunc(ctx, userID)
}

func (m *mockBoardService) CreateBoard(ctx context.Context, userID uuid.UUID, title string) (*domain.Board, error) {
	return m.createBoardFunc(ctx, userID, title)
}

func (m *mockBoardService) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*board.BoardTree, error) {
	return m.getBoardFunc(ctx, userID, boardID)
}

func (m *mockBoardService) UpdateBoardTitle(ctx context.Context, userID, boardID uuid.UUID, title string) (*domain.Board, error) {
	return m.updateBoardTitleFunc(ctx, userID, boardID, title)
}

func (m *mockBoardService) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) (*domain.Board, error) {
	return m.deleteBoardFunc(ctx, userID, boardID)
}

func (m *mockBoardService) AddMember(ctx context.Context, userID, boardID uuid.UUID, email string) (*domain.Member, error) {
	return m.addMemberFunc(ctx, userID, boardID, email)
}

func (m *mockBoardService) RemoveMember(ctx context.Context, userID, boardID, memberUserID uuid.UUID) error {
	return m.removeMemberFunc(ctx, userID, boardID, memberUserID)
}

func (m *mockBoardService) CreateList(ctx context.Context, userID, boardID uuid.UUID, title string) (*domain.List, error) {
	return m.createListFunc(ctx, userID, boardID, title)
}

func (m *mockBoardService) UpdateList(ctx context.Context, userID, listID uuid.UUID, title string) (*domain.List, error) {
	return m.updateListFunc(ctx, userID, listID, title)
}

func (m *mockBoardService) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	return m.deleteListFunc(ctx, userID, listID)
}

func (m *mockBoardService) ReorderLists(ctx context.Context, userID uuid.UUID, updates []domain.PositionUpdate) error {
	return m.reorderListsFunc(ctx, userID, updates)
}

func (m *mockBoardService) CreateCard(ctx context.Context, userID, listID uuid.UUID, title, description string, dueDate *time.Time, labels []string) (*domain.Card, error) {
	return m.createCardFunc(ctx, userID, listID, title, description, dueDate, labels)
}

func (m *mockBoardService) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*board.CardDetail, error) {
	return m.getCardFunc(ctx, userID, cardID)
}

func (m *mockBoardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, params board.UpdateCardParams) (*domain.Card, error) {
	return m.updateCardFunc(ctx, userID, cardID, params)
}

func (m *mockBoardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	return m.deleteCardFunc(ctx, userID, cardID)
}

func (m *mockBoardService) MoveCard(ctx context.Context, userID, cardID, targetListID uuid.UUID, position int) (*domain.Card, error) {
	return m.moveCardFunc(ctx, userID, cardID, targetListID, position)
}

func (m *mockBoardService) ReorderCards(ctx context.Context, userID uuid.UUID, updates []domain.PositionUpdate) error {
	return m.reorderCardsFunc(ctx, userID, updates)
}

func (m *mockBoardService) AddComment(ctx context.Context, userID, cardID uuid.UUID, body string) (*domain.Comment, error) {
	return m.addCommentFunc(ctx, userID, cardID, body)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc       func(ctx context.Context, email, password, name string) (*domain.User, error)
	loginFunc          func(ctx context.Context, email, password string) (string, string, error)
	refreshTokenFunc   func(ctx context.Context, refreshToken string) (string, error)
	getUserFunc        func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	generateAPIKeyFunc func(ctx context.Context, userID uuid.UUID, name string) (string, *domain.APIKey, error)
	listAPIKeysFunc    func(ctx context.Context, userID uuid.UUID) ([]*domain.APIKey, error)
	revokeAPIKeyFunc   func(ctx context.Context, userID, keyID uuid.UUID) error
}

func (m *mockAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	return m.registerFunc(ctx, email, password, name)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.getUserFunc(ctx, userID)
}

func (m *mockAuthService) GenerateAPIKey(ctx context.Context, userID uuid.UUID, name string) (string, *domain.APIKey, error) {
	return m.generateAPIKeyFunc(ctx, userID, name)
}

func (m *mockAuthService) ListAPIKeys(ctx context.Context, userID uuid.UUID) ([]*domain.APIKey, error) {
	return m.listAPIKeysFunc(ctx, userID)
}

func (m *mockAuthService) RevokeAPIKey(ctx context.Context, userID, keyID uuid.UUID) error {
	return m.revokeAPIKeyFunc(ctx, userID, keyID)
}
