package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/corkboard/corkboard/internal/auth"
	"github.com/corkboard/corkboard/internal/domain"
	"github.com/corkboard/corkboard/internal/server/middleware"
)

type RegisterInput struct {
	Body struct {
		Email    string `json:"email" minLength:"3" maxLength:"255" doc:"User email"`
		Password string `json:"password" minLength:"8" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
		Name     string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
	}
}

type RegisterOutput struct {
	Body struct {
		User         *domain.User `json:"user"`
		AccessToken  string       `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string       `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" minLength:"3" maxLength:"255" doc:"User email"`
		Password string `json:"password" minLength:"1" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token"` //nolint:gosec // G117: token refresh DTO
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"access_token"` //nolint:gosec // G117: auth response DTO
	}
}

type OAuthAuthorizeInput struct {
	Provider string `path:"provider" enum:"google,github" doc:"OAuth provider"`
	State    string `query:"state" doc:"Opaque state echoed back on callback"`
}

type OAuthAuthorizeOutput struct {
	Body struct {
		AuthURL string `json:"auth_url" doc:"Provider authorization URL to redirect the user to"`
	}
}

type OAuthCallbackInput struct {
	Provider string `path:"provider" enum:"google,github" doc:"OAuth provider"`
	Body     struct {
		Code string `json:"code" minLength:"1" doc:"Authorization code from the provider redirect"`
	}
}

type OAuthCallbackOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

func RegisterAuthRoutes(api huma.API, authSvc AuthService, providers map[string]*auth.OAuthProvider) {
	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/auth/register",
		Summary:     "Register a new user",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
		user, err := authSvc.Register(ctx, input.Body.Email, input.Body.Password, input.Body.Name)
		if err != nil {
			if errors.Is(err, auth.ErrUserAlreadyExists) {
				return nil, huma.Error409Conflict("user already exists")
			}
			if errors.Is(err, domain.ErrValidation) {
				return nil, huma.Error400BadRequest(err.Error())
			}
			return nil, huma.Error500InternalServerError("failed to register user", err)
		}

		accessToken, refreshToken, err := authSvc.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, huma.Error500InternalServerError("registered but failed to issue tokens", err)
		}

		out := &RegisterOutput{}
		out.Body.User = user
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		accessToken, refreshToken, err := authSvc.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("invalid email or password")
			}
			return nil, huma.Error500InternalServerError("login failed", err)
		}

		out := &LoginOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Refresh access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		accessToken, err := authSvc.RefreshToken(ctx, input.Body.RefreshToken)
		if err != nil {
			return nil, huma.Error401Unauthorized("invalid or expired refresh token")
		}

		out := &RefreshOutput{}
		out.Body.AccessToken = accessToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "oauth-authorize",
		Method:      http.MethodGet,
		Path:        "/auth/oauth/{provider}",
		Summary:     "Get the OAuth authorization URL for a provider",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *OAuthAuthorizeInput) (*OAuthAuthorizeOutput, error) {
		provider, ok := providers[input.Provider]
		if !ok {
			return nil, huma.Error404NotFound("oauth provider not configured: " + input.Provider)
		}

		out := &OAuthAuthorizeOutput{}
		out.Body.AuthURL = provider.AuthorizationURL(input.State)
		return out, nil
	})
}

// RegisterOAuthCallbackRoutes is split from RegisterAuthRoutes because the
// callback needs the concrete auth service for the code exchange.
func RegisterOAuthCallbackRoutes(api huma.API, authSvc *auth.Service, providers map[string]*auth.OAuthProvider) {
	huma.Register(api, huma.Operation{
		OperationID: "oauth-callback",
		Method:      http.MethodPost,
		Path:        "/auth/oauth/{provider}/callback",
		Summary:     "Exchange an OAuth code for tokens",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *OAuthCallbackInput) (*OAuthCallbackOutput, error) {
		provider, ok := providers[input.Provider]
		if !ok {
			return nil, huma.Error404NotFound("oauth provider not configured: " + input.Provider)
		}

		accessToken, refreshToken, err := authSvc.LoginWithOAuth(ctx, provider, input.Body.Code)
		if err != nil {
			return nil, huma.Error401Unauthorized("oauth login failed")
		}

		out := &OAuthCallbackOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})
}

type MeOutput struct {
	Body *domain.User
}

// RegisterUserRoutes registers endpoints about the authenticated user.
func RegisterUserRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/me",
		Summary:     "Get the authenticated user",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, _ *struct{}) (*MeOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		user, err := authSvc.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to load user", err)
		}

		return &MeOutput{Body: user}, nil
	})
}
