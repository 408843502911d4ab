package handler

import (
	"github.com/deppfellow/showtracker/internal/server"
	"github.com/deppfellow/showtracker/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Show    *ShowHandler
	User    *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	h := NewHandler(s)

	return &Handlers{
		Health:  NewHealthHandler(h),
		OpenAPI: NewOpenAPIHandler(h, DefaultAssets()),
		Show:    NewShowHandler(h, services.Shows),
		User:    NewUserHandler(h, services.Users),
	}
}
