package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/grocery_store/internal/logging"
	"github.com/Skotchmaster/grocery_store/internal/service"
	"github.com/Skotchmaster/grocery_store/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return err
	}

	u, err := h.Svc.Register(ctx, service.Registration{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return fail(l, "register_error", err, http.StatusNotFound)
	}

	l.Info("user registered", "user_id", u.ID)
	return c.JSON(http.StatusCreated, transport.NewUserView(u))
}

func (h *UserHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.me")

	id, err := identity(c)
	if err != nil {
		return err
	}

	u, err := h.Svc.Me(ctx, id)
	if err != nil {
		return fail(l, "me_error", err, http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, transport.NewUserView(u))
}

func (h *UserHTTP) SetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.set_password")

	id, err := identity(c)
	if err != nil {
		return err
	}

	var req transport.SetPasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_password_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("set_password_error", "status", 400, "error", err)
		return err
	}

	if err := h.Svc.SetPassword(ctx, id, req.CurrentPassword, req.NewPassword); err != nil {
		return fail(l, "set_password_error", err, http.StatusNotFound)
	}

	l.Info("password changed")
	return c.NoContent(http.StatusNoContent)
}
