package transport

import (
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"

	"github.com/Skotchmaster/grocery_store/internal/models"
	"github.com/Skotchmaster/grocery_store/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func randomProduct(price string) models.Product {
	return models.Product{
		ID:              uuid.New(),
		Name:            gofakeit.ProductName(),
		Slug:            gofakeit.LetterN(8),
		Price:           decimal.RequireFromString(price),
		MeasurementUnit: gofakeit.RandomString([]string{"kg", "pcs", "l"}),
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "7.50", Money(decimal.RequireFromString("7.5")))
	assert.Equal(t, "0.00", Money(decimal.Zero))
	assert.Equal(t, "10.00", Money(decimal.NewFromInt(10)))
}

func TestNewCartView(t *testing.T) {
	bread := randomProduct("2.50")
	milk := randomProduct("1.20")
	lines := []models.CartLine{
		{Product: bread, ProductID: bread.ID, Quantity: 3},
		{Product: milk, ProductID: milk.ID, Quantity: 2},
	}
	cart := &service.Cart{Lines: lines, Total: decimal.RequireFromString("9.90"), ItemCount: 2}

	got := NewCartView(cart, currency.RUB)

	want := CartView{
		Items: []LineView{
			{Product: NewProductBrief(bread), Quantity: 3, Subtotal: "7.50"},
			{Product: NewProductBrief(milk), Quantity: 2, Subtotal: "2.40"},
		},
		CartTotal: "9.90",
		ItemCount: 2,
		Currency:  "RUB",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewCartView mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "2.50", got.Items[0].Product.Price)
}

func TestEmptyCartRendersEmptyList(t *testing.T) {
	got := NewCartView(&service.Cart{Total: decimal.Zero}, currency.EUR)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"cart_total":"0.00","item_count":0,"currency":"EUR"}`, string(raw))
}

func TestNewProductView(t *testing.T) {
	p := randomProduct("3.00")
	p.IsAvailable = true
	p.Images = []models.Image{{ID: uuid.New(), ProductID: p.ID, URL: gofakeit.URL()}}

	got := NewProductView(service.ProductEntry{Product: p, InCart: true})
	assert.True(t, got.IsInShoppingCart)
	assert.Equal(t, "3.00", got.Price)
	require.Len(t, got.Images, 1)
	assert.Equal(t, p.Images[0].URL, got.Images[0].URL)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"is_in_shopping_cart":true`)
}

func TestNewUserViewHidesHash(t *testing.T) {
	u := &models.User{ID: uuid.New(), Username: "kim", PasswordHash: "secret-hash", Role: models.RoleUser}
	raw, err := json.Marshal(NewUserView(u))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
}

func TestNewSearchViewNeverNull(t *testing.T) {
	raw, err := json.Marshal(NewSearchView(0, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":0,"items":[]}`, string(raw))
}
