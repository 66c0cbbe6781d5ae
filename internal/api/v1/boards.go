package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/corkboard/corkboard/internal/board"
	"github.com/corkboard/corkboard/internal/domain"
	"github.com/corkboard/corkboard/internal/server/middleware"
)

type ListBoardsOutput struct {
	Body []*domain.Board
}

type CreateBoardInput struct {
	Body struct {
		Title string `json:"title" minLength:"1" maxLength:"255" doc:"Board title"`
	}
}

type CreateBoardOutput struct {
	Body *domain.Board
}

type GetBoardInput struct {
	ID uuid.UUID `path:"id" doc:"Board ID"`
}

type GetBoardOutput struct {
	Body *board.BoardTree
}

type UpdateBoardInput struct {
	ID   uuid.UUID `path:"id" doc:"Board ID"`
	Body struct {
		Title string `json:"title" minLength:"1" maxLength:"255" doc:"Board title"`
	}
}

type UpdateBoardOutput struct {
	Body *domain.Board
}

type DeleteBoardInput struct {
	ID uuid.UUID `path:"id" doc:"Board ID"`
}

type DeleteBoardOutput struct {
	Body struct {
		ID    uuid.UUID `json:"id"`
		Title string    `json:"title"`
	}
}

type AddMemberInput struct {
	ID   uuid.UUID `path:"id" doc:"Board ID"`
	Body struct {
		Email string `json:"email" minLength:"3" maxLength:"255" doc:"Email of the user to invite"`
	}
}

type AddMemberOutput struct {
	Body *domain.Member
}

type RemoveMemberInput struct {
	ID     uuid.UUID `path:"id" doc:"Board ID"`
	UserID uuid.UUID `path:"userID" doc:"User ID of the member to remove"`
}

func RegisterBoardRoutes(api huma.API, boards BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-boards",
		Method:      http.MethodGet,
		Path:        "/boards",
		Summary:     "List boards the user owns or is a member of",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, _ *struct{}) (*ListBoardsOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		list, err := boards.ListBoards(ctx, userID)
		if err != nil {
			return nil, serviceError(err, "board not found")
		}

		return &ListBoardsOutput{Body: list}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-board",
		Method:      http.MethodPost,
		Path:        "/boards",
		Summary:     "Create a new board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *CreateBoardInput) (*CreateBoardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		b, err := boards.CreateBoard(ctx, userID, input.Body.Title)
		if err != nil {
			return nil, serviceError(err, "board not found")
		}

		return &CreateBoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-board",
		Method:      http.MethodGet,
		Path:        "/boards/{id}",
		Summary:     "Get a board with its lists and cards",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *GetBoardInput) (*GetBoardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		tree, err := boards.GetBoard(ctx, userID, input.ID)
		if err != nil {
			return nil, serviceError(err, "board not found")
		}

		return &GetBoardOutput{Body: tree}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-board",
		Method:      http.MethodPut,
		Path:        "/boards/{id}",
		Summary:     "Rename a board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *UpdateBoardInput) (*UpdateBoardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		b, err := boards.UpdateBoardTitle(ctx, userID, input.ID, input.Body.Title)
		if err != nil {
			return nil, serviceError(err, "board not found")
		}

		return &UpdateBoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-board",
		Method:      http.MethodDelete,
		Path:        "/boards/{id}",
		Summary:     "Delete a board and everything under it",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *DeleteBoardInput) (*DeleteBoardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		b, err := boards.DeleteBoard(ctx, userID, input.ID)
		if err != nil {
			return nil, serviceError(err, "board not found")
		}

		out := &DeleteBoardOutput{}
		out.Body.ID = b.ID
		out.Body.Title = b.Title
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-board-member",
		Method:      http.MethodPost,
		Path:        "/boards/{id}/members",
		Summary:     "Invite a user to a board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *AddMemberInput) (*AddMemberOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		m, err := boards.AddMember(ctx, userID, input.ID, input.Body.Email)
		if err != nil {
			return nil, serviceError(err, "board or user not found")
		}

		return &AddMemberOutput{Body: m}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-board-member",
		Method:      http.MethodDelete,
		Path:        "/boards/{id}/members/{userID}",
		Summary:     "Remove a member from a board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *RemoveMemberInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		if err := boards.RemoveMember(ctx, userID, input.ID, input.UserID); err != nil {
			return nil, serviceError(err, "board or member not found")
		}

		return nil, nil
	})
}
