package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/corkboard/corkboard/internal/api/v1"
	"github.com/corkboard/corkboard/internal/api/ws"
	"github.com/corkboard/corkboard/internal/auth"
	"github.com/corkboard/corkboard/internal/board"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service, providers map[string]*auth.OAuthProvider) {
	v1.RegisterAuthRoutes(api, authSvc, providers)
	v1.RegisterOAuthCallbackRoutes(api, authSvc, providers)
}

func registerAPIRoutes(api huma.API, authSvc *auth.Service, boardSvc *board.Service) {
	v1.RegisterUserRoutes(api, authSvc)
	v1.RegisterAPIKeyRoutes(api, authSvc)
	v1.RegisterBoardRoutes(api, boardSvc)
	v1.RegisterListRoutes(api, boardSvc)
	v1.RegisterCardRoutes(api, boardSvc)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/boards/{boardID}", hub.ServeBoard)
}
