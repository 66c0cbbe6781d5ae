package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/corkboard/corkboard/internal/domain"
	"github.com/corkboard/corkboard/internal/server/middleware"
)

type CreateAPIKeyInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"255" doc:"Key name"`
	}
}

type CreateAPIKeyOutput struct {
	Body struct {
		Key    string         `json:"key" doc:"Raw API key, shown only once"`
		Record *domain.APIKey `json:"record"`
	}
}

type ListAPIKeysOutput struct {
	Body []*domain.APIKey
}

type DeleteAPIKeyInput struct {
	ID uuid.UUID `path:"id" doc:"API key ID"`
}

func RegisterAPIKeyRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-api-key",
		Method:      http.MethodPost,
		Path:        "/me/keys",
		Summary:     "Create an API key",
		Tags:        []string{"API Keys"},
	}, func(ctx context.Context, input *CreateAPIKeyInput) (*CreateAPIKeyOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		rawKey, record, err := authSvc.GenerateAPIKey(ctx, userID, input.Body.Name)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to create API key", err)
		}

		out := &CreateAPIKeyOutput{}
		out.Body.Key = rawKey
		out.Body.Record = record
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-api-keys",
		Method:      http.MethodGet,
		Path:        "/me/keys",
		Summary:     "List the authenticated user's API keys",
		Tags:        []string{"API Keys"},
	}, func(ctx context.Context, _ *struct{}) (*ListAPIKeysOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		keys, err := authSvc.ListAPIKeys(ctx, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list API keys", err)
		}

		return &ListAPIKeysOutput{Body: keys}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-api-key",
		Method:      http.MethodDelete,
		Path:        "/me/keys/{id}",
		Summary:     "Revoke an API key",
		Tags:        []string{"API Keys"},
	}, func(ctx context.Context, input *DeleteAPIKeyInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		if err := authSvc.RevokeAPIKey(ctx, userID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("API key not found")
			}
			return nil, huma.Error500InternalServerError("failed to revoke API key", err)
		}

		return nil, nil
	})
}
