package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/Skotchmaster/grocery_store/internal/middleware/auth"
	"github.com/Skotchmaster/grocery_store/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/grocery_store/internal/middleware/logging"
)

// NewEcho builds the echo instance with the middleware stack shared by every
// route. rps limits requests per second per client IP; zero disables it.
func NewEcho(logger *slog.Logger, rps int) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(csrf.Middleware(csrf.Config{AuthCookie: auth.AccessCookie}))
	if rps > 0 {
		e.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(rate.Limit(rps))))
	}
	return e
}
