package httpserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"gorm.io/gorm"

	"github.com/Skotchmaster/grocery_store/internal/db/dbtest"
	"github.com/Skotchmaster/grocery_store/internal/httpserver"
	"github.com/Skotchmaster/grocery_store/internal/logging"
	"github.com/Skotchmaster/grocery_store/internal/models"
	"github.com/Skotchmaster/grocery_store/internal/repo"
	"github.com/Skotchmaster/grocery_store/internal/search"
	"github.com/Skotchmaster/grocery_store/internal/service"
	"github.com/Skotchmaster/grocery_store/internal/tokens/tokenstest"
)

var secret = []byte("http-test-secret")

type testServer struct {
	t  *testing.T
	e  *echo.Echo
	db *gorm.DB
}

func newTestServer(t *testing.T, index service.ProductIndex) *testServer {
	t.Helper()

	gdb := dbtest.Open(t)
	r := repo.New(gdb)

	e := httpserver.NewEcho(logging.NewWithWriter("error", io.Discard), 0)
	httpserver.Register(e, &httpserver.Deps{
		CartHandler:    &httpserver.CartHTTP{Svc: service.NewCartService(r, nil), Currency: currency.RUB},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: r, Index: index, SearchLimit: 10}},
		UserHandler:    &httpserver.UserHTTP{Svc: &service.UserService{Repo: r}},
		JWTSecret:      secret,
		DB:             gdb,
	})
	return &testServer{t: t, e: e, db: gdb}
}

// user creates a user and returns a bearer token for it.
func (s *testServer) user(username, role string) (models.User, string) {
	s.t.Helper()
	u := dbtest.CreateUser(s.t, s.db, username)
	return u, tokenstest.Sign(s.t, secret, u.ID, role, time.Minute)
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func cartPath(id uuid.UUID) string {
	return "/api/v1/products/" + id.String() + "/shopping_cart"
}

const cartRoot = "/api/v1/products/shopping_cart"

var _ service.ProductIndex = search.Nop{}
