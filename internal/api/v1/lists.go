package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/corkboard/corkboard/internal/domain"
	"github.com/corkboard/corkboard/internal/server/middleware"
)

type CreateListInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
	Body    struct {
		Title string `json:"title" minLength:"1" maxLength:"255" doc:"List title"`
	}
}

type CreateListOutput struct {
	Body *domain.List
}

type UpdateListInput struct {
	ID   uuid.UUID `path:"id" doc:"List ID"`
	Body struct {
		Title string `json:"title" minLength:"1" maxLength:"255" doc:"List title"`
	}
}

type UpdateListOutput struct {
	Body *domain.List
}

type DeleteListInput struct {
	ID uuid.UUID `path:"id" doc:"List ID"`
}

type ReorderEntry struct {
	ID       uuid.UUID `json:"id" doc:"Entity ID"`
	Position int       `json:"position" doc:"New position"`
}

type ReorderListsInput struct {
	Body struct {
		Lists []ReorderEntry `json:"lists" minItems:"1" doc:"New positions, applied atomically"`
	}
}

func RegisterListRoutes(api huma.API, boards BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-list",
		Method:      http.MethodPost,
		Path:        "/boards/{boardID}/lists",
		Summary:     "Create a list on a board",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *CreateListInput) (*CreateListOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		l, err := boards.CreateList(ctx, userID, input.BoardID, input.Body.Title)
		if err != nil {
			return nil, serviceError(err, "board not found")
		}

		return &CreateListOutput{Body: l}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-list",
		Method:      http.MethodPut,
		Path:        "/lists/{id}",
		Summary:     "Rename a list",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *UpdateListInput) (*UpdateListOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		l, err := boards.UpdateList(ctx, userID, input.ID, input.Body.Title)
		if err != nil {
			return nil, serviceError(err, "list not found")
		}

		return &UpdateListOutput{Body: l}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-list",
		Method:      http.MethodDelete,
		Path:        "/lists/{id}",
		Summary:     "Delete a list and its cards",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *DeleteListInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		if err := boards.DeleteList(ctx, userID, input.ID); err != nil {
			return nil, serviceError(err, "list not found")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reorder-lists",
		Method:      http.MethodPost,
		Path:        "/lists/reorder",
		Summary:     "Reorder lists on a board atomically",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *ReorderListsInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		updates := make([]domain.PositionUpdate, 0, len(input.Body.Lists))
		for _, e := range input.Body.Lists {
			updates = append(updates, domain.PositionUpdate{ID: e.ID, Position: e.Position})
		}

		if err := boards.ReorderLists(ctx, userID, updates); err != nil {
			return nil, serviceError(err, "list not found")
		}

		return nil, nil
	})
}
