// Package board implements the board aggregate: every list/card lifecycle
// operation follows the same shape — load the owning board's access context,
// authorize, validate, mutate, return the refreshed entity.
package board

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/corkboard/corkboard/internal/domain"
	redisstore "github.com/corkboard/corkboard/internal/store/redis"
)

// Store is the transactional data access the service operates on.
// *postgres.Store satisfies this interface.
type Store interface {
	Users() domain.UserRepository
	Boards() domain.BoardRepository
	Members() domain.MemberRepository
	Lists() domain.ListRepository
	Cards() domain.CardRepository
	Comments() domain.CommentRepository
	Access() domain.AccessLoader
}

// PubSubPublisher fans out board events to live subscribers.
// *redis.PubSub satisfies this interface.
type PubSubPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Service orchestrates board, list and card lifecycle operations.
type Service struct {
	store  Store
	pubsub PubSubPublisher // may be nil; events are then dropped
}

func NewService(store Store, pubsub PubSubPublisher) *Service {
	return &Service{store: store, pubsub: pubsub}
}

// ListTree is a list with its cards in display order.
type ListTree struct {
	domain.List
	Cards []*domain.Card `json:"cards"`
}

// BoardTree is the full nested board read: members, then lists in display
// order, each with its cards in display order.
type BoardTree struct {
	domain.Board
	Members []*domain.Member `json:"members"`
	Lists   []*ListTree      `json:"lists"`
}

// CardDetail is a card with its comments, newest first.
type CardDetail struct {
	domain.Card
	Comments []*domain.Comment `json:"comments"`
}

// UpdateCardParams carries a partial card update. Nil fields are unchanged.
type UpdateCardParams struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Labels      []string
}

// ---------------------------------------------------------------------------
// Boards
// ---------------------------------------------------------------------------

func (s *Service) ListBoards(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	boards, err := s.store.Boards().ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("board.ListBoards: %w", err)
	}

	return boards, nil
}

func (s *Service) CreateBoard(ctx context.Context, userID uuid.UUID, title string) (*domain.Board, error) {
	b, err := domain.NewBoard(userID, title)
	if err != nil {
		return nil, fmt.Errorf("board.CreateBoard: %w", err)
	}

	if err := s.store.Boards().Create(ctx, b); err != nil {
		return nil, fmt.Errorf("board.CreateBoard: %w", err)
	}

	return b, nil
}

func (s *Service) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*BoardTree, error) {
	access, err := s.store.Access().ByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.GetBoard: %w", err)
	}
	if !access.CanContribute(userID) {
		return nil, fmt.Errorf("board.GetBoard: %w", domain.ErrForbidden)
	}

	b, err := s.store.Boards().GetByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.GetBoard: %w", err)
	}

	members, err := s.store.Members().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.GetBoard: %w", err)
	}

	lists, err := s.store.Lists().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.GetBoard: %w", err)
	}

	cards, err := s.store.Cards().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.GetBoard: %w", err)
	}

	byList := make(map[uuid.UUID][]*domain.Card, len(lists))
	for _, c := range cards {
		byList[c.ListID] = append(byList[c.ListID], c)
	}

	tree := &BoardTree{
		Board:   *b,
		Members: members,
		Lists:   make([]*ListTree, 0, len(lists)),
	}
	for _, l := range lists {
		lc := byList[l.ID]
		if lc == nil {
			lc = make([]*domain.Card, 0)
		}
		tree.Lists = append(tree.Lists, &ListTree{List: *l, Cards: lc})
	}

	return tree, nil
}

func (s *Service) UpdateBoardTitle(ctx context.Context, userID, boardID uuid.UUID, title string) (*domain.Board, error) {
	access, err := s.store.Access().ByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.UpdateBoardTitle: %w", err)
	}
	if !access.CanAdminister(userID) {
		return nil, fmt.Errorf("board.UpdateBoardTitle: %w", domain.ErrForbidden)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("board.UpdateBoardTitle: empty title: %w", domain.ErrValidation)
	}

	b, err := s.store.Boards().GetByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.UpdateBoardTitle: %w", err)
	}

	b.Title = title
	if err := s.store.Boards().Update(ctx, b); err != nil {
		return nil, fmt.Errorf("board.UpdateBoardTitle: %w", err)
	}
	b.UpdatedAt = time.Now()

	s.publish(ctx, boardID, "board.updated", map[string]any{"board_id": boardID, "title": title})

	return b, nil
}

// DeleteBoard removes the board and everything under it, returning the
// deleted record so callers can echo id and title.
func (s *Service) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) (*domain.Board, error) {
	access, err := s.store.Access().ByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.DeleteBoard: %w", err)
	}
	if !access.CanAdminister(userID) {
		return nil, fmt.Errorf("board.DeleteBoard: %w", domain.ErrForbidden)
	}

	b, err := s.store.Boards().GetByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.DeleteBoard: %w", err)
	}

	if err := s.store.Boards().Delete(ctx, boardID); err != nil {
		return nil, fmt.Errorf("board.DeleteBoard: %w", err)
	}

	s.publish(ctx, boardID, "board.deleted", map[string]any{"board_id": boardID})

	return b, nil
}

// ---------------------------------------------------------------------------
// Members
// ---------------------------------------------------------------------------

// AddMember invites a user (by email) to the board. Owner only.
func (s *Service) AddMember(ctx context.Context, userID, boardID uuid.UUID, email string) (*domain.Member, error) {
	access, err := s.store.Access().ByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.AddMember: %w", err)
	}
	if !access.CanAdminister(userID) {
		return nil, fmt.Errorf("board.AddMember: %w", domain.ErrForbidden)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("board.AddMember: empty email: %w", domain.ErrValidation)
	}

	invited, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("board.AddMember: %w", err)
	}

	m := &domain.Member{
		BoardID:   boardID,
		UserID:    invited.ID,
		Role:      domain.RoleMember,
		CreatedAt: time.Now(),
	}
	if err := s.store.Members().Add(ctx, m); err != nil {
		return nil, fmt.Errorf("board.AddMember: %w", err)
	}

	s.publish(ctx, boardID, "member.added", map[string]any{"board_id": boardID, "user_id": invited.ID})

	return m, nil
}

// RemoveMember revokes a user's board access. Owner only; the owner's own
// grant cannot be removed.
func (s *Service) RemoveMember(ctx context.Context, userID, boardID, memberUserID uuid.UUID) error {
	access, err := s.store.Access().ByBoard(ctx, boardID)
	if err != nil {
		return fmt.Errorf("board.RemoveMember: %w", err)
	}
	if !access.CanAdminister(userID) {
		return fmt.Errorf("board.RemoveMember: %w", domain.ErrForbidden)
	}
	if memberUserID == access.OwnerID {
		return fmt.Errorf("board.RemoveMember: cannot remove the owner: %w", domain.ErrValidation)
	}

	if err := s.store.Members().Remove(ctx, boardID, memberUserID); err != nil {
		return fmt.Errorf("board.RemoveMember: %w", err)
	}

	s.publish(ctx, boardID, "member.removed", map[string]any{"board_id": boardID, "user_id": memberUserID})

	return nil
}

// ---------------------------------------------------------------------------
// Lists
// ---------------------------------------------------------------------------

func (s *Service) CreateList(ctx context.Context, userID, boardID uuid.UUID, title string) (*domain.List, error) {
	access, err := s.store.Access().ByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.CreateList: %w", err)
	}
	if !access.CanContribute(userID) {
		return nil, fmt.Errorf("board.CreateList: %w", domain.ErrForbidden)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("board.CreateList: empty title: %w", domain.ErrValidation)
	}

	positions, err := s.store.Lists().PositionsByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board.CreateList: %w", err)
	}

	now := time.Now()
	l := &domain.List{
		ID:        uuid.New(),
		BoardID:   boardID,
		Title:     title,
		Position:  domain.NextPosition(positions),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Lists().Create(ctx, l); err != nil {
		return nil, fmt.Errorf("board.CreateList: %w", err)
	}

	s.publish(ctx, boardID, "list.created", map[string]any{"board_id": boardID, "list_id": l.ID})

	return l, nil
}

func (s *Service) UpdateList(ctx context.Context, userID, listID uuid.UUID, title string) (*domain.List, error) {
	access, err := s.store.Access().ByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("board.UpdateList: %w", err)
	}
	if !access.CanContribute(userID) {
		return nil, fmt.Errorf("board.UpdateList: %w", domain.ErrForbidden)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("board.UpdateList: empty title: %w", domain.ErrValidation)
	}

	l, err := s.store.Lists().GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("board.UpdateList: %w", err)
	}

	l.Title = title
	if err := s.store.Lists().Update(ctx, l); err != nil {
		return nil, fmt.Errorf("board.UpdateList: %w", err)
	}
	l.UpdatedAt = time.Now()

	s.publish(ctx, access.BoardID, "list.updated", map[string]any{"board_id": access.BoardID, "list_id": listID})

	return l, nil
}

func (s *Service) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	access, err := s.store.Access().ByList(ctx, listID)
	if err != nil {
		return fmt.Errorf("board.DeleteList: %w", err)
	}
	if !access.CanContribute(userID) {
		return fmt.Errorf("board.DeleteList: %w", domain.ErrForbidden)
	}

	if err := s.store.Lists().Delete(ctx, listID); err != nil {
		return fmt.Errorf("board.DeleteList: %w", err)
	}

	s.publish(ctx, access.BoardID, "list.deleted", map[string]any{"board_id": access.BoardID, "list_id": listID})

	return nil
}

// ReorderLists applies a bulk list reorder. Authorization runs against the
// board of the first entry; the store then constrains every update to that
// board, so a stray id from another board aborts the whole batch.
func (s *Service) ReorderLists(ctx context.Context, userID uuid.UUID, updates []domain.PositionUpdate) error {
	if err := domain.ValidateReorder(updates); err != nil {
		return fmt.Errorf("board.ReorderLists: %w", err)
	}

	access, err := s.store.Access().ByList(ctx, updates[0].ID)
	if err != nil {
		return fmt.Errorf("board.ReorderLists: %w", err)
	}
	if !access.CanContribute(userID) {
		return fmt.Errorf("board.ReorderLists: %w", domain.ErrForbidden)
	}

	if err := s.store.Lists().Reorder(ctx, access.BoardID, updates); err != nil {
		return fmt.Errorf("board.ReorderLists: %w", err)
	}

	s.publish(ctx, access.BoardID, "lists.reordered", map[string]any{"board_id": access.BoardID})

	return nil
}

// ---------------------------------------------------------------------------
// Cards
// ---------------------------------------------------------------------------

func (s *Service) CreateCard(ctx context.Context, userID, listID uuid.UUID, title, description string, dueDate *time.Time, labels []string) (*domain.Card, error) {
	access, err := s.store.Access().ByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("board.CreateCard: %w", err)
	}
	if !access.CanContribute(userID) {
		return nil, fmt.Errorf("board.CreateCard: %w", domain.ErrForbidden)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("board.CreateCard: empty title: %w", domain.ErrValidation)
	}

	positions, err := s.store.Cards().PositionsByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("board.CreateCard: %w", err)
	}

	if labels == nil {
		labels = []string{}
	}

	now := time.Now()
	c := &domain.Card{
		ID:          uuid.New(),
		ListID:      listID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Labels:      labels,
		Position:    domain.NextPosition(positions),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Cards().Create(ctx, c); err != nil {
		return nil, fmt.Errorf("board.CreateCard: %w", err)
	}

	s.publish(ctx, access.BoardID, "card.created", map[string]any{"board_id": access.BoardID, "card_id": c.ID, "list_id": listID})

	return c, nil
}

func (s *Service) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*CardDetail, error) {
	access, err := s.store.Access().ByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("board.GetCard: %w", err)
	}
	if !access.CanContribute(userID) {
		return nil, fmt.Errorf("board.GetCard: %w", domain.ErrForbidden)
	}

	c, err := s.store.Cards().GetByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("board.GetCard: %w", err)
	}

	comments, err := s.store.Comments().ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("board.GetCard: %w", err)
	}
	if comments == nil {
		comments = make([]*domain.Comment, 0)
	}

	return &CardDetail{Card: *c, Comments: comments}, nil
}

func (s *Service) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, params UpdateCardParams) (*domain.Card, error) {
	access, err := s.store.Access().ByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("board.UpdateCard: %w", err)
	}
	if !access.CanContribute(userID) {
		return nil, fmt.Errorf("board.UpdateCard: %w", domain.ErrForbidden)
	}

	c, err := s.store.Cards().GetByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("board.UpdateCard: %w", err)
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, fmt.Errorf("board.UpdateCard: empty title: %w", domain.ErrValidation)
		}
		c.Title = title
	}
	if params.Description != nil {
		c.Description = *params.Description
	}
	if params.DueDate != nil {
		c.DueDate = params.DueDate
	}
	if params.Labels != nil {
		c.Labels = params.Labels
	}

	if err := s.store.Cards().Update(ctx, c); err != nil {
		return nil, fmt.Errorf("board.UpdateCard: %w", err)
	}
	c.UpdatedAt = time.Now()

	s.publish(ctx, access.BoardID, "card.updated", map[string]any{"board_id": access.BoardID, "card_id": cardID})

	return c, nil
}

func (s *Service) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	access, err := s.store.Access().ByCard(ctx, cardID)
	if err != nil {
		return fmt.Errorf("board.DeleteCard: %w", err)
	}
	if !access.CanContribute(userID) {
		return fmt.Errorf("board.DeleteCard: %w", domain.ErrForbidden)
	}

	if err := s.store.Cards().Delete(ctx, cardID); err != nil {
		return fmt.Errorf("board.DeleteCard: %w", err)
	}

	s.publish(ctx, access.BoardID, "card.deleted", map[string]any{"board_id": access.BoardID, "card_id": cardID})

	return nil
}

// MoveCard moves a card to a target list at the given rank. The caller must
// hold access on both the card's current board and the target list's board;
// the two may differ, so cross-board moves work when both sides allow them.
func (s *Service) MoveCard(ctx context.Context, userID, cardID, targetListID uuid.UUID, position int) (*domain.Card, error) {
	source, err := s.store.Access().ByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("board.MoveCard: %w", err)
	}
	if !source.CanContribute(userID) {
		return nil, fmt.Errorf("board.MoveCard: %w", domain.ErrForbidden)
	}

	target, err := s.store.Access().ByList(ctx, targetListID)
	if err != nil {
		return nil, fmt.Errorf("board.MoveCard: target list: %w", err)
	}
	if !target.CanContribute(userID) {
		return nil, fmt.Errorf("board.MoveCard: target board: %w", domain.ErrForbidden)
	}

	if err := s.store.Cards().Move(ctx, cardID, targetListID, position); err != nil {
		return nil, fmt.Errorf("board.MoveCard: %w", err)
	}

	c, err := s.store.Cards().GetByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("board.MoveCard: %w", err)
	}

	evt := map[string]any{
		"board_id": target.BoardID,
		"card_id":  cardID,
		"list_id":  targetListID,
		"position": position,
	}
	s.publish(ctx, source.BoardID, "card.moved", evt)
	if target.BoardID != source.BoardID {
		s.publish(ctx, target.BoardID, "card.moved", evt)
	}

	return c, nil
}

// ReorderCards applies a bulk card reorder within one list. Authorization
// runs against the first entry's board; the store constrains every update
// to the first entry's list.
func (s *Service) ReorderCards(ctx context.Context, userID uuid.UUID, updates []domain.PositionUpdate) error {
	if err := domain.ValidateReorder(updates); err != nil {
		return fmt.Errorf("board.ReorderCards: %w", err)
	}

	access, err := s.store.Access().ByCard(ctx, updates[0].ID)
	if err != nil {
		return fmt.Errorf("board.ReorderCards: %w", err)
	}
	if !access.CanContribute(userID) {
		return fmt.Errorf("board.ReorderCards: %w", domain.ErrForbidden)
	}

	first, err := s.store.Cards().GetByID(ctx, updates[0].ID)
	if err != nil {
		return fmt.Errorf("board.ReorderCards: %w", err)
	}

	if err := s.store.Cards().Reorder(ctx, first.ListID, updates); err != nil {
		return fmt.Errorf("board.ReorderCards: %w", err)
	}

	s.publish(ctx, access.BoardID, "cards.reordered", map[string]any{"board_id": access.BoardID, "list_id": first.ListID})

	return nil
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

func (s *Service) AddComment(ctx context.Context, userID, cardID uuid.UUID, body string) (*domain.Comment, error) {
	access, err := s.store.Access().ByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("board.AddComment: %w", err)
	}
	if !access.CanContribute(userID) {
		return nil, fmt.Errorf("board.AddComment: %w", domain.ErrForbidden)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("board.AddComment: empty body: %w", domain.ErrValidation)
	}

	c := &domain.Comment{
		ID:        uuid.New(),
		CardID:    cardID,
		AuthorID:  userID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.store.Comments().Create(ctx, c); err != nil {
		return nil, fmt.Errorf("board.AddComment: %w", err)
	}

	s.publish(ctx, access.BoardID, "comment.added", map[string]any{"board_id": access.BoardID, "card_id": cardID})

	return c, nil
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// publish fans out a board event. Failures are logged, never surfaced; live
// updates are best-effort and must not fail the mutation that triggered them.
func (s *Service) publish(ctx context.Context, boardID uuid.UUID, eventType string, fields map[string]any) {
	if s.pubsub == nil {
		return
	}

	evt := make(map[string]any, len(fields)+1)
	evt["type"] = eventType
	for k, v := range fields {
		evt[k] = v
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}

	channel := redisstore.BoardChannel(boardID)
	if pubErr := s.pubsub.Publish(ctx, channel, payload); pubErr != nil {
		log.Error().Err(pubErr).Str("channel", channel).Msg("board.publish: failed to publish event")
	}
}
