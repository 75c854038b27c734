// Package router builds the Echo router: it installs the global
// middleware chain and maps the /api route groups to their handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/lightbnb/internal/handler"
	"github.com/deppfellow/lightbnb/internal/middleware"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the configured Echo instance.
//
// Middleware order matters: the request ID must exist before the New Relic
// transaction and the request logger read it, and the context enhancer must
// run after tracing so the logger carries trace ids.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api", middlewares.RateLimit.Limit())
	registerPropertyRoutes(api, h)
	registerUserRoutes(api, h)

	return router
}

func registerPropertyRoutes(api *echo.Group, h *handler.Handlers) {
	properties := api.Group("/properties")
	properties.GET("", handler.Handle(
		h.Properties.Handler,
		h.Properties.SearchProperties,
		http.StatusOK,
		&handler.SearchPropertiesRequest{},
	))
	properties.POST("", handler.Handle(
		h.Properties.Handler,
		h.Properties.CreateProperty,
		http.StatusCreated,
		&handler.CreatePropertyRequest{},
	))
}

func registerUserRoutes(api *echo.Group, h *handler.Handlers) {
	users := api.Group("/users")
	users.POST("", handler.Handle(h.Users.Handler, h.Users.Register, http.StatusCreated, &handler.RegisterUserRequest{}))
	users.GET("", handler.Handle(h.Users.Handler, h.Users.FindUser, http.StatusOK, &handler.FindUserRequest{}))
	users.GET("/:id", handler.Handle(h.Users.Handler, h.Users.GetUser, http.StatusOK, &handler.GetUserRequest{}))
	users.GET("/:id/reservations", handler.Handle(
		h.Users.Handler,
		h.Users.GuestReservations,
		http.StatusOK,
		&handler.GuestReservationsRequest{},
	))
}
