package v1_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/corkboard/corkboard/internal/api/v1"
	"github.com/corkboard/corkboard/internal/board"
	"github.com/corkboard/corkboard/internal/domain"
)

// ---------------------------------------------------------------------------
// POST /lists/{listID}/cards
// ---------------------------------------------------------------------------

func TestCreateCardHandler(t *testing.T) {
	t.Parallel()

	t.Run("happy_path_full_body", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		listID := uuid.New()
		due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
		created := &domain.Card{
			ID:          uuid.New(),
			ListID:      listID,
			Title:       "Ship it",
			Description: "before the demo",
			DueDate:     &due,
			Labels:      []string{"urgent"},
			Position:    3,
		}

		_, api := humatest.New(t)
		svc := &mockBoardService{
			createCardFunc: func(_ context.Context, userID, lid uuid.UUID, title, description string, dueDate *time.Time, labels []string) (*domain.Card, error) {
				assert.Equal(t, uid, userID)
				assert.Equal(t, listID, lid)
				assert.Equal(t, "Ship it", title)
				assert.Equal(t, "before the demo", description)
				require.NotNil(t, dueDate)
				assert.True(t, due.Equal(*dueDate))
				assert.Equal(t, []string{"urgent"}, labels)
				return created, nil
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PostCtx(userCtx(uid), "/lists/"+listID.String()+"/cards", map[string]any{
			"title":       "Ship it",
			"description": "before the demo",
			"due_date":    due.Format(time.RFC3339),
			"labels":      []string{"urgent"},
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Card
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, created.ID, body.ID)
		assert.Equal(t, 3, body.Position)
	})

	t.Run("minimal_body", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		listID := uuid.New()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			createCardFunc: func(_ context.Context, _, _ uuid.UUID, title, description string, dueDate *time.Time, labels []string) (*domain.Card, error) {
				assert.Equal(t, "Ship it", title)
				assert.Empty(t, description)
				assert.Nil(t, dueDate)
				assert.Empty(t, labels)
				return &domain.Card{ID: uuid.New(), ListID: listID, Title: title, Labels: []string{}}, nil
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PostCtx(userCtx(uid), "/lists/"+listID.String()+"/cards", map[string]any{
			"title": "Ship it",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Card
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotNil(t, body.Labels, "labels must serialize as [] not null")
	})

	t.Run("list_not_found", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			createCardFunc: func(_ context.Context, _, _ uuid.UUID, _, _ string, _ *time.Time, _ []string) (*domain.Card, error) {
				return nil, fmt.Errorf("board.CreateCard: %w", domain.ErrNotFound)
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PostCtx(userCtx(uuid.New()), "/lists/"+uuid.NewString()+"/cards", map[string]any{
			"title": "Ship it",
		})

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// GET /cards/{id}
// ---------------------------------------------------------------------------

func TestGetCardHandler(t *testing.T) {
	t.Parallel()

	t.Run("happy_path_with_comments", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		cardID := uuid.New()
		detail := &board.CardDetail{
			Card: domain.Card{ID: cardID, Title: "Ship it", Labels: []string{}},
			Comments: []*domain.Comment{
				{ID: uuid.New(), CardID: cardID, AuthorID: uid, Body: "on it"},
			},
		}

		_, api := humatest.New(t)
		svc := &mockBoardService{
			getCardFunc: func(_ context.Context, userID, id uuid.UUID) (*board.CardDetail, error) {
				assert.Equal(t, uid, userID)
				assert.Equal(t, cardID, id)
				return detail, nil
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.GetCtx(userCtx(uid), "/cards/"+cardID.String())

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			ID       uuid.UUID         `json:"id"`
			Comments []*domain.Comment `json:"comments"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, cardID, body.ID)
		require.Len(t, body.Comments, 1)
		assert.Equal(t, "on it", body.Comments[0].Body)
	})

	t.Run("forbidden", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			getCardFunc: func(_ context.Context, _, _ uuid.UUID) (*board.CardDetail, error) {
				return nil, fmt.Errorf("board.GetCard: %w", domain.ErrForbidden)
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.GetCtx(userCtx(uuid.New()), "/cards/"+uuid.NewString())

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// PUT /cards/{id}
// ---------------------------------------------------------------------------

func TestUpdateCardHandler(t *testing.T) {
	t.Parallel()

	t.Run("partial_update_only_title", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		cardID := uuid.New()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			updateCardFunc: func(_ context.Context, userID, id uuid.UUID, params board.UpdateCardParams) (*domain.Card, error) {
				assert.Equal(t, uid, userID)
				assert.Equal(t, cardID, id)
				require.NotNil(t, params.Title)
				assert.Equal(t, "Renamed", *params.Title)
				assert.Nil(t, params.Description, "absent fields stay nil")
				assert.Nil(t, params.DueDate)
				return &domain.Card{ID: cardID, Title: "Renamed", Labels: []string{}}, nil
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PutCtx(userCtx(uid), "/cards/"+cardID.String(), map[string]any{
			"title": "Renamed",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Card
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Renamed", body.Title)
	})

	t.Run("empty_title_rejected", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			updateCardFunc: func(_ context.Context, _, _ uuid.UUID, _ board.UpdateCardParams) (*domain.Card, error) {
				return nil, fmt.Errorf("card: title is required: %w", domain.ErrValidation)
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PutCtx(userCtx(uuid.New()), "/cards/"+uuid.NewString(), map[string]any{
			"title": " ",
		})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// POST /cards/{id}/move
// ---------------------------------------------------------------------------

func TestMoveCardHandler(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		cardID := uuid.New()
		targetList := uuid.New()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			moveCardFunc: func(_ context.Context, userID, id, listID uuid.UUID, position int) (*domain.Card, error) {
				assert.Equal(t, uid, userID)
				assert.Equal(t, cardID, id)
				assert.Equal(t, targetList, listID)
				assert.Equal(t, 2, position)
				return &domain.Card{ID: cardID, ListID: targetList, Position: 2, Labels: []string{}}, nil
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PostCtx(userCtx(uid), "/cards/"+cardID.String()+"/move", map[string]any{
			"list_id":  targetList.String(),
			"position": 2,
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Card
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, targetList, body.ListID)
		assert.Equal(t, 2, body.Position)
	})

	t.Run("target_list_not_found", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			moveCardFunc: func(_ context.Context, _, _, _ uuid.UUID, _ int) (*domain.Card, error) {
				return nil, fmt.Errorf("board.MoveCard: %w", domain.ErrNotFound)
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PostCtx(userCtx(uuid.New()), "/cards/"+uuid.NewString()+"/move", map[string]any{
			"list_id":  uuid.NewString(),
			"position": 0,
		})

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("no_access_to_target_board", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			moveCardFunc: func(_ context.Context, _, _, _ uuid.UUID, _ int) (*domain.Card, error) {
				return nil, fmt.Errorf("board.MoveCard: %w", domain.ErrForbidden)
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PostCtx(userCtx(uuid.New()), "/cards/"+uuid.NewString()+"/move", map[string]any{
			"list_id":  uuid.NewString(),
			"position": 0,
		})

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// POST /cards/reorder
// ---------------------------------------------------------------------------

func TestReorderCardsHandler(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		a := uuid.New()
		b := uuid.New()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			reorderCardsFunc: func(_ context.Context, userID uuid.UUID, updates []domain.PositionUpdate) error {
				assert.Equal(t, uid, userID)
				require.Len(t, updates, 2)
				assert.Equal(t, a, updates[0].ID)
				assert.Equal(t, b, updates[1].ID)
				return nil
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PostCtx(userCtx(uid), "/cards/reorder", map[string]any{
			"cards": []map[string]any{
				{"id": a.String(), "position": 1},
				{"id": b.String(), "position": 0},
			},
		})

		assert.Equal(t, http.StatusNoContent, resp.Code)
	})

	t.Run("empty_batch_rejected_by_schema", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBoardService{}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PostCtx(userCtx(uuid.New()), "/cards/reorder", map[string]any{
			"cards": []map[string]any{},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// POST /cards/{id}/comments
// ---------------------------------------------------------------------------

func TestAddCommentHandler(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		cardID := uuid.New()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			addCommentFunc: func(_ context.Context, userID, id uuid.UUID, body string) (*domain.Comment, error) {
				assert.Equal(t, uid, userID)
				assert.Equal(t, cardID, id)
				assert.Equal(t, "looks good", body)
				return &domain.Comment{ID: uuid.New(), CardID: cardID, AuthorID: uid, Body: body}, nil
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PostCtx(userCtx(uid), "/cards/"+cardID.String()+"/comments", map[string]any{
			"body": "looks good",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Comment
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, uid, body.AuthorID)
		assert.Equal(t, "looks good", body.Body)
	})

	t.Run("card_not_found", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBoardService{
			addCommentFunc: func(_ context.Context, _, _ uuid.UUID, _ string) (*domain.Comment, error) {
				return nil, fmt.Errorf("board.AddComment: %w", domain.ErrNotFound)
			},
		}
		v1.RegisterCardRoutes(api, svc)

		resp := api.PostCtx(userCtx(uuid.New()), "/cards/"+uuid.NewString()+"/comments", map[string]any{
			"body": "hello",
		})

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
