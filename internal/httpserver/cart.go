package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/currency"

	"github.com/Skotchmaster/grocery_store/internal/logging"
	"github.com/Skotchmaster/grocery_store/internal/service"
	"github.com/Skotchmaster/grocery_store/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Currency currency.Unit
}

func (h *CartHTTP) ViewCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.view")

	id, err := identity(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.ViewCart(ctx, id)
	if err != nil {
		return fail(l, "view_cart_error", err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusOK, transport.NewCartView(cart, h.Currency))
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	id, err := identity(c)
	if err != nil {
		return err
	}
	pid, err := productID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return err
	}

	var req transport.QuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return err
	}

	line, err := h.Svc.AddItem(ctx, id, pid, req.Quantity)
	if err != nil {
		return fail(l, "add_to_cart_error", err, http.StatusBadRequest)
	}

	l.Info("item added to cart", "product_id", pid, "quantity", line.Quantity)
	return c.JSON(http.StatusCreated, transport.NewLineView(*line))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	id, err := identity(c)
	if err != nil {
		return err
	}
	pid, err := productID(c)
	if err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return err
	}

	var req transport.QuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return err
	}

	line, err := h.Svc.UpdateQuantity(ctx, id, pid, req.Quantity)
	if err != nil {
		return fail(l, "update_cart_error", err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusOK, transport.NewLineView(*line))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	id, err := identity(c)
	if err != nil {
		return err
	}
	pid, err := productID(c)
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return err
	}

	if err := h.Svc.RemoveItem(ctx, id, pid); err != nil {
		return fail(l, "remove_from_cart_error", err, http.StatusBadRequest)
	}

	l.Info("item removed from cart", "product_id", pid)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	id, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(ctx, id); err != nil {
		return fail(l, "clear_cart_error", err, http.StatusBadRequest)
	}

	l.Info("cart cleared")
	return c.NoContent(http.StatusNoContent)
}
