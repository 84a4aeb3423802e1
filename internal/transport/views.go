package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/Skotchmaster/grocery_store/internal/models"
	"github.com/Skotchmaster/grocery_store/internal/search"
	"github.com/Skotchmaster/grocery_store/internal/service"
)

// Money renders amounts with exactly two decimals, e.g. "7.50".
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type ProductBrief struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Price           string    `json:"price"`
	MeasurementUnit string    `json:"measurement_unit"`
}

type LineView struct {
	Product  ProductBrief `json:"product"`
	Quantity uint         `json:"quantity"`
	Subtotal string       `json:"subtotal"`
}

type CartView struct {
	Items     []LineView `json:"items"`
	CartTotal string     `json:"cart_total"`
	ItemCount int        `json:"item_count"`
	Currency  string     `json:"currency"`
}

type ImageView struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

type ProductView struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Slug             string      `json:"slug"`
	Price            string      `json:"price"`
	MeasurementUnit  string      `json:"measurement_unit"`
	IsAvailable      bool        `json:"is_available"`
	IsInShoppingCart bool        `json:"is_in_shopping_cart"`
	CreatedAt        time.Time   `json:"created_at"`
	Images           []ImageView `json:"images"`
}

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
}

type SearchView struct {
	Total int64             `json:"total"`
	Items []search.Document `json:"items"`
}

func NewProductBrief(p models.Product) ProductBrief {
	return ProductBrief{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Price:           Money(p.Price),
		MeasurementUnit: p.MeasurementUnit,
	}
}

func NewLineView(l models.CartLine) LineView {
	return LineView{
		Product:  NewProductBrief(l.Product),
		Quantity: l.Quantity,
		Subtotal: Money(l.Subtotal()),
	}
}

func NewCartView(c *service.Cart, cur currency.Unit) CartView {
	items := make([]LineView, len(c.Lines))
	for i, l := range c.Lines {
		items[i] = NewLineView(l)
	}
	return CartView{
		Items:     items,
		CartTotal: Money(c.Total),
		ItemCount: c.ItemCount,
		Currency:  cur.String(),
	}
}

func NewProductView(e service.ProductEntry) ProductView {
	p := e.Product
	images := make([]ImageView, len(p.Images))
	for i, img := range p.Images {
		images[i] = ImageView{ID: img.ID, URL: img.URL}
	}
	return ProductView{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Price:            Money(p.Price),
		MeasurementUnit:  p.MeasurementUnit,
		IsAvailable:      p.IsAvailable,
		IsInShoppingCart: e.InCart,
		CreatedAt:        p.CreatedAt,
		Images:           images,
	}
}

func NewProductViews(entries []service.ProductEntry) []ProductView {
	out := make([]ProductView, len(entries))
	for i, e := range entries {
		out[i] = NewProductView(e)
	}
	return out
}

func NewUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

func NewSearchView(total int64, docs []search.Document) SearchView {
	if docs == nil {
		docs = []search.Document{}
	}
	return SearchView{Total: total, Items: docs}
}
