package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/grocery_store/internal/logging"
	"github.com/Skotchmaster/grocery_store/internal/search"
	"github.com/Skotchmaster/grocery_store/internal/service"
	"github.com/Skotchmaster/grocery_store/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	viewer, err := identity(c)
	if err != nil {
		return err
	}

	entries, err := h.Svc.ListProducts(ctx, viewer)
	if err != nil {
		return fail(l, "get_products_error", err, http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, transport.NewProductViews(entries))
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	viewer, err := identity(c)
	if err != nil {
		return err
	}
	id, err := productID(c)
	if err != nil {
		l.Warn("get_product_error", "status", 400, "error", err)
		return err
	}

	entry, err := h.Svc.GetProduct(ctx, viewer, id)
	if err != nil {
		return fail(l, "get_product_error", err, http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, transport.NewProductView(*entry))
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	total, docs, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"))
	if errors.Is(err, search.ErrDisabled) {
		l.Warn("search_products_error", "status", 503, "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is unavailable")
	}
	if err != nil {
		return fail(l, "search_products_error", err, http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, transport.NewSearchView(total, docs))
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	actor, err := identity(c)
	if err != nil {
		return err
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "error", err)
		return err
	}

	p, err := h.Svc.CreateProduct(ctx, actor, service.NewProduct{
		Name:            req.Name,
		Slug:            req.Slug,
		Price:           req.Price,
		MeasurementUnit: req.MeasurementUnit,
		IsAvailable:     req.IsAvailable,
		ImageURLs:       req.Images,
	})
	if err != nil {
		return fail(l, "product_create_error", err, http.StatusNotFound)
	}

	l.Info("product created", "product_id", p.ID)
	return c.JSON(http.StatusCreated, transport.NewProductView(service.ProductEntry{Product: *p}))
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := productID(c)
	if err != nil {
		l.Warn("product_delete_error", "status", 400, "error", err)
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, actor, id); err != nil {
		return fail(l, "product_delete_error", err, http.StatusNotFound)
	}

	l.Info("product deleted", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
