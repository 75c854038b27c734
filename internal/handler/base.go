package handler

import (
	"reflect"
	"time"

	"github.com/deppfellow/lightbnb/internal/middleware"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Handler gives concrete handlers access to the application container.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a bound, validated request
// and returns the value rendered as the JSON body.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// Handle adapts fn into an echo.HandlerFunc.
//
// template only conveys the request type; each call binds into a fresh zero
// value so optional parameters never leak between requests. Binding,
// validation and handler failures are returned to the global error handler.
//
//	g.POST("/users", Handle(h.Handler, h.Register, http.StatusCreated, &RegisterUserRequest{}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	fn HandlerFunc[Req, Res],
	status int,
	template Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := newRequest(template)
		txn := newrelic.FromContext(c.Request().Context())
		logger := middleware.GetLogger(c).With().
			Str("operation", "handler").
			Str("route", c.Path()).
			Logger()

		start := time.Now()
		logger.Debug().Msg("handling request")

		if err := validation.BindAndValidate(c, req); err != nil {
			observeFailure(&logger, txn, "validation", err, time.Since(start))
			return err
		}
		validated := time.Since(start)
		if txn != nil {
			txn.AddAttribute("validation.status", "success")
			txn.AddAttribute("validation.duration_ms", validated.Milliseconds())
		}

		result, err := fn(c, req)
		if err != nil {
			observeFailure(&logger, txn, "handler", err, time.Since(start))
			return err
		}

		total := time.Since(start)
		if txn != nil {
			txn.AddAttribute("handler.name", c.Path())
			txn.AddAttribute("handler.status", "success")
			txn.AddAttribute("total.duration_ms", total.Milliseconds())
		}
		logger.Info().
			Dur("validation_duration", validated).
			Dur("total_duration", total).
			Msg("request completed successfully")

		return c.JSON(status, result)
	}
}

func observeFailure(logger *zerolog.Logger, txn *newrelic.Transaction, phase string, err error, elapsed time.Duration) {
	logger.Warn().
		Err(err).
		Str("phase", phase).
		Dur("total_duration", elapsed).
		Msg("request failed")

	if txn != nil {
		txn.NoticeError(nrpkgerrors.Wrap(err))
		txn.AddAttribute(phase+".status", "failed")
		txn.AddAttribute("total.duration_ms", elapsed.Milliseconds())
	}
}

// newRequest returns a new zero value of the pointer type held by template.
func newRequest[Req validation.Validatable](template Req) Req {
	t := reflect.TypeOf(template)
	if t == nil || t.Kind() != reflect.Pointer {
		return template
	}
	return reflect.New(t.Elem()).Interface().(Req)
}
