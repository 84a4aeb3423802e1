package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/grocery_store/internal/middleware/auth"
	"github.com/Skotchmaster/grocery_store/internal/service"
)

// identity reads what the auth middleware put on the context. Routes without
// auth, or with OptionalAuth and no token, yield the anonymous identity.
func identity(c echo.Context) (service.Identity, error) {
	s, _ := c.Get(auth.CtxUserID).(string)
	if s == "" {
		return service.Identity{}, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return service.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token subject is not a valid user id")
	}
	role, _ := c.Get(auth.CtxRole).(string)
	return service.Identity{UserID: id, Role: role}, nil
}

func productID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id is not a valid uuid")
	}
	return id, nil
}

// statusOf maps service errors to HTTP statuses. notFound differs between
// the cart routes (400) and the rest of the API (404).
func statusOf(err error, notFound int) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return notFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// fail logs the failure as "<event>" and turns it into an echo.HTTPError.
// Internal errors are not echoed to the client.
func fail(l *slog.Logger, event string, err error, notFound int) error {
	status := statusOf(err, notFound)
	if status >= http.StatusInternalServerError {
		l.Error(event, "status", status, "error", err)
		return echo.NewHTTPError(status, "internal server error")
	}
	l.Warn(event, "status", status, "error", err)
	return echo.NewHTTPError(status, err.Error())
}
