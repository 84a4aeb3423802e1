package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/grocery_store/internal/events"
	"github.com/Skotchmaster/grocery_store/internal/logging"
	"github.com/Skotchmaster/grocery_store/internal/models"
	"github.com/Skotchmaster/grocery_store/internal/repo"
)

// CartStore is the storage the cart operations run against. Every method
// is scoped to one user.
type CartStore interface {
	ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	AddLine(ctx context.Context, line *models.CartLine) error
	UpdateLineQuantity(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*models.CartLine, error)
	RemoveLine(ctx context.Context, userID, productID uuid.UUID) error
	ClearLines(ctx context.Context, userID uuid.UUID) (int64, error)
}

type CartService struct {
	Repo   CartStore
	Events events.Publisher
	Now    func() time.Time
}

func NewCartService(store CartStore, pub events.Publisher) *CartService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &CartService{Repo: store, Events: pub, Now: time.Now}
}

// Cart is a user's cart with its derived aggregates.
type Cart struct {
	Lines     []models.CartLine
	Total     decimal.Decimal
	ItemCount int
}

func (s *CartService) ViewCart(ctx context.Context, id Identity) (*Cart, error) {
	if id.Anonymous() {
		return nil, fmt.Errorf("cart requires an authenticated user: %w", ErrForbidden)
	}

	lines, err := s.Repo.ListLines(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return &Cart{Lines: lines, Total: total, ItemCount: len(lines)}, nil
}

func (s *CartService) AddItem(ctx context.Context, id Identity, productID uuid.UUID, quantity int) (*models.CartLine, error) {
	if id.Anonymous() {
		return nil, fmt.Errorf("cart requires an authenticated user: %w", ErrForbidden)
	}
	if productID == uuid.Nil {
		return nil, fmt.Errorf("ID product must be not nil: %w", ErrInvalidInput)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrInvalidInput)
	}

	line := &models.CartLine{UserID: id.UserID, ProductID: productID, Quantity: uint(quantity)}
	err := s.Repo.AddLine(ctx, line)
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	case repo.IsDuplicate(err):
		return nil, fmt.Errorf("product is already in the shopping cart: %w", ErrConflict)
	case err != nil:
		return nil, err
	}

	s.publish(ctx, events.ItemAdded, id.UserID, productID, line.Quantity)
	return line, nil
}

// UpdateQuantity replaces the quantity of an existing line. Zero is rejected:
// removal is RemoveItem's job.
func (s *CartService) UpdateQuantity(ctx context.Context, id Identity, productID uuid.UUID, quantity int) (*models.CartLine, error) {
	if id.Anonymous() {
		return nil, fmt.Errorf("cart requires an authenticated user: %w", ErrForbidden)
	}
	if productID == uuid.Nil {
		return nil, fmt.Errorf("ID product must be not nil: %w", ErrInvalidInput)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrInvalidInput)
	}

	line, err := s.Repo.UpdateLineQuantity(ctx, id.UserID, productID, uint(quantity))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product is not in the shopping cart: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.QuantityUpdated, id.UserID, productID, line.Quantity)
	return line, nil
}

func (s *CartService) RemoveItem(ctx context.Context, id Identity, productID uuid.UUID) error {
	if id.Anonymous() {
		return fmt.Errorf("cart requires an authenticated user: %w", ErrForbidden)
	}
	if productID == uuid.Nil {
		return fmt.Errorf("ID product must be not nil: %w", ErrInvalidInput)
	}

	err := s.Repo.RemoveLine(ctx, id.UserID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product is not in the shopping cart: %w", ErrNotFound)
	}
	if err != nil {
		return err
	}

	s.publish(ctx, events.ItemRemoved, id.UserID, productID, 0)
	return nil
}

// ClearCart empties the cart. An empty cart is not an error.
func (s *CartService) ClearCart(ctx context.Context, id Identity) error {
	if id.Anonymous() {
		return fmt.Errorf("cart requires an authenticated user: %w", ErrForbidden)
	}

	n, err := s.Repo.ClearLines(ctx, id.UserID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.publish(ctx, events.CartCleared, id.UserID, uuid.Nil, 0)
	}
	return nil
}

func (s *CartService) publish(ctx context.Context, typ string, userID, productID uuid.UUID, quantity uint) {
	if s.Events == nil {
		return
	}
	e := events.CartEvent{
		Type:     typ,
		UserID:   userID.String(),
		Quantity: quantity,
		At:       s.now().UTC(),
	}
	if productID != uuid.Nil {
		e.ProductID = productID.String()
	}
	if err := s.Events.PublishCartEvent(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("cart_event_publish_failed", "type", typ, "error", err)
	}
}

func (s *CartService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
