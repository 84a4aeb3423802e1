package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/grocery_store/internal/db"
	middleware "github.com/Skotchmaster/grocery_store/internal/middleware/auth"
)

type Deps struct {
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	UserHandler    *UserHTTP
	JWTSecret      []byte
	DB             *gorm.DB
}

func Register(e *echo.Echo, d *Deps) {
	if e.Validator == nil {
		e.Validator = NewRequestValidator()
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.DB != nil {
			if err := db.Ping(c.Request().Context(), d.DB); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database is unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.New(d.JWTSecret)

	v1 := e.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("", d.UserHandler.Register)
	users.GET("/me", d.UserHandler.Me, authMW.RequireAuth)
	users.POST("/set_password", d.UserHandler.SetPassword, authMW.RequireAuth)

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts, authMW.OptionalAuth)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct, authMW.OptionalAuth)

	products.GET("/shopping_cart", d.CartHandler.ViewCart, authMW.RequireAuth)
	products.DELETE("/shopping_cart", d.CartHandler.ClearCart, authMW.RequireAuth)
	products.POST("/:id/shopping_cart", d.CartHandler.AddItem, authMW.RequireAuth)
	products.PATCH("/:id/shopping_cart", d.CartHandler.UpdateQuantity, authMW.RequireAuth)
	products.PUT("/:id/shopping_cart", d.CartHandler.UpdateQuantity, authMW.RequireAuth)
	products.DELETE("/:id/shopping_cart", d.CartHandler.RemoveItem, authMW.RequireAuth)

	admin := v1.Group("/admin", authMW.RequireAdmin)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)
}
