package handler

import (
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Properties *PropertyHandler
	Users      *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Properties: NewPropertyHandler(s, services.Listings),
		Users:      NewUserHandler(s, services.Users, services.Listings),
	}
}
