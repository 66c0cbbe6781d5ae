package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/corkboard/corkboard/internal/board"
	"github.com/corkboard/corkboard/internal/domain"
	"github.com/corkboard/corkboard/internal/server/middleware"
)

type CreateCardInput struct {
	ListID uuid.UUID `path:"listID" doc:"List ID"`
	Body   struct {
		Title       string     `json:"title" minLength:"1" maxLength:"500" doc:"Card title"`
		Description string     `json:"description,omitempty" doc:"Card description"`
		DueDate     *time.Time `json:"due_date,omitempty" doc:"Due date"`
		Labels      []string   `json:"labels,omitempty" doc:"Labels"`
	}
}

type CreateCardOutput struct {
	Body *domain.Card
}

type GetCardInput struct {
	ID uuid.UUID `path:"id" doc:"Card ID"`
}

type GetCardOutput struct {
	Body *board.CardDetail
}

type UpdateCardInput struct {
	ID   uuid.UUID `path:"id" doc:"Card ID"`
	Body struct {
		Title       *string    `json:"title,omitempty" maxLength:"500" doc:"Card title"`
		Description *string    `json:"description,omitempty" doc:"Card description"`
		DueDate     *time.Time `json:"due_date,omitempty" doc:"Due date"`
		Labels      []string   `json:"labels,omitempty" doc:"Labels"`
	}
}

type UpdateCardOutput struct {
	Body *domain.Card
}

type DeleteCardInput struct {
	ID uuid.UUID `path:"id" doc:"Card ID"`
}

type MoveCardInput struct {
	ID   uuid.UUID `path:"id" doc:"Card ID"`
	Body struct {
		ListID   uuid.UUID `json:"list_id" doc:"Target list ID"`
		Position int       `json:"position" doc:"Position in the target list"`
	}
}

type MoveCardOutput struct {
	Body *domain.Card
}

type ReorderCardsInput struct {
	Body struct {
		Cards []ReorderEntry `json:"cards" minItems:"1" doc:"New positions, applied atomically"`
	}
}

type AddCommentInput struct {
	ID   uuid.UUID `path:"id" doc:"Card ID"`
	Body struct {
		Body string `json:"body" minLength:"1" maxLength:"10000" doc:"Comment body"`
	}
}

type AddCommentOutput struct {
	Body *domain.Comment
}

func RegisterCardRoutes(api huma.API, boards BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-card",
		Method:      http.MethodPost,
		Path:        "/lists/{listID}/cards",
		Summary:     "Create a card in a list",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *CreateCardInput) (*CreateCardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		c, err := boards.CreateCard(ctx, userID, input.ListID, input.Body.Title, input.Body.Description, input.Body.DueDate, input.Body.Labels)
		if err != nil {
			return nil, serviceError(err, "list not found")
		}

		return &CreateCardOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-card",
		Method:      http.MethodGet,
		Path:        "/cards/{id}",
		Summary:     "Get a card with its comments",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *GetCardInput) (*GetCardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		detail, err := boards.GetCard(ctx, userID, input.ID)
		if err != nil {
			return nil, serviceError(err, "card not found")
		}

		return &GetCardOutput{Body: detail}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-card",
		Method:      http.MethodPut,
		Path:        "/cards/{id}",
		Summary:     "Update a card",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *UpdateCardInput) (*UpdateCardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		c, err := boards.UpdateCard(ctx, userID, input.ID, board.UpdateCardParams{
			Title:       input.Body.Title,
			Description: input.Body.Description,
			DueDate:     input.Body.DueDate,
			Labels:      input.Body.Labels,
		})
		if err != nil {
			return nil, serviceError(err, "card not found")
		}

		return &UpdateCardOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-card",
		Method:      http.MethodDelete,
		Path:        "/cards/{id}",
		Summary:     "Delete a card",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *DeleteCardInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		if err := boards.DeleteCard(ctx, userID, input.ID); err != nil {
			return nil, serviceError(err, "card not found")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-card",
		Method:      http.MethodPost,
		Path:        "/cards/{id}/move",
		Summary:     "Move a card to another list",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *MoveCardInput) (*MoveCardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		c, err := boards.MoveCard(ctx, userID, input.ID, input.Body.ListID, input.Body.Position)
		if err != nil {
			return nil, serviceError(err, "card or target list not found")
		}

		return &MoveCardOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reorder-cards",
		Method:      http.MethodPost,
		Path:        "/cards/reorder",
		Summary:     "Reorder cards within a list atomically",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *ReorderCardsInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		updates := make([]domain.PositionUpdate, 0, len(input.Body.Cards))
		for _, e := range input.Body.Cards {
			updates = append(updates, domain.PositionUpdate{ID: e.ID, Position: e.Position})
		}

		if err := boards.ReorderCards(ctx, userID, updates); err != nil {
			return nil, serviceError(err, "card not found")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-card-comment",
		Method:      http.MethodPost,
		Path:        "/cards/{id}/comments",
		Summary:     "Comment on a card",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *AddCommentInput) (*AddCommentOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		c, err := boards.AddComment(ctx, userID, input.ID, input.Body.Body)
		if err != nil {
			return nil, serviceError(err, "card not found")
		}

		return &AddCommentOutput{Body: c}, nil
	})
}
