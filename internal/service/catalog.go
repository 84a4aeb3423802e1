package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/grocery_store/internal/logging"
	"github.com/Skotchmaster/grocery_store/internal/models"
	"github.com/Skotchmaster/grocery_store/internal/search"
)

type CatalogStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CartedProductIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
	InCart(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type ProductIndex interface {
	Index(ctx context.Context, doc search.Document) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, limit int) (int64, []search.Document, error)
}

// maxPrice is the first value that no longer fits numeric(10,2).
var maxPrice = decimal.New(1, 8)

type CatalogService struct {
	Repo        CatalogStore
	Index       ProductIndex
	SearchLimit int
}

// ProductEntry is a product as seen by one viewer.
type ProductEntry struct {
	Product models.Product
	InCart  bool
}

type NewProduct struct {
	Name            string
	Slug            string
	Price           decimal.Decimal
	MeasurementUnit string
	IsAvailable     bool
	ImageURLs       []string
}

func (s *CatalogService) GetProduct(ctx context.Context, viewer Identity, id uuid.UUID) (*ProductEntry, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	entry := &ProductEntry{Product: *p}
	if !viewer.Anonymous() {
		if entry.InCart, err = s.Repo.InCart(ctx, viewer.UserID, id); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, viewer Identity) ([]ProductEntry, error) {
	products, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	carted := map[uuid.UUID]struct{}{}
	if !viewer.Anonymous() {
		if carted, err = s.Repo.CartedProductIDs(ctx, viewer.UserID); err != nil {
			return nil, err
		}
	}

	out := make([]ProductEntry, len(products))
	for i, p := range products {
		_, in := carted[p.ID]
		out[i] = ProductEntry{Product: p, InCart: in}
	}
	return out, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, actor Identity, np NewProduct) (*models.Product, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("admin access required: %w", ErrForbidden)
	}
	if err := validateProduct(np); err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:            strings.TrimSpace(np.Name),
		Slug:            np.Slug,
		Price:           np.Price,
		MeasurementUnit: np.MeasurementUnit,
		IsAvailable:     np.IsAvailable,
	}
	for _, u := range np.ImageURLs {
		p.Images = append(p.Images, models.Image{URL: u})
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.Index(ctx, toDocument(p)); err != nil {
			logging.FromContext(ctx).Warn("product_index_failed", "product_id", p.ID, "error", err)
		}
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor Identity, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("admin access required: %w", ErrForbidden)
	}

	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product not found: %w", ErrNotFound)
	}
	if err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Warn("product_unindex_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string) (int64, []search.Document, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, fmt.Errorf("query must not be empty: %w", ErrInvalidInput)
	}
	if s.Index == nil {
		return 0, nil, search.ErrDisabled
	}

	limit := s.SearchLimit
	if limit <= 0 {
		limit = 20
	}
	return s.Index.Search(ctx, query, limit)
}

func validateProduct(np NewProduct) error {
	name := strings.TrimSpace(np.Name)
	switch {
	case name == "" || len(name) > 256:
		return fmt.Errorf("name must be 1..256 characters: %w", ErrInvalidInput)
	case len(np.Slug) > 50:
		return fmt.Errorf("slug must be at most 50 characters: %w", ErrInvalidInput)
	case np.MeasurementUnit == "" || len(np.MeasurementUnit) > 256:
		return fmt.Errorf("measurement unit must be 1..256 characters: %w", ErrInvalidInput)
	case np.Price.IsNegative() || np.Price.GreaterThanOrEqual(maxPrice):
		return fmt.Errorf("price must be within [0, 100000000): %w", ErrInvalidInput)
	case !np.Price.Equal(np.Price.Round(2)):
		return fmt.Errorf("price must have at most two decimal places: %w", ErrInvalidInput)
	}
	return nil
}

func toDocument(p *models.Product) search.Document {
	return search.Document{
		ID:              p.ID.String(),
		Name:            p.Name,
		Slug:            p.Slug,
		Price:           p.Price.StringFixed(2),
		MeasurementUnit: p.MeasurementUnit,
	}
}
