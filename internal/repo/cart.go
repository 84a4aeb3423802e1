package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/grocery_store/internal/models"
)

// ErrProductNotFound wraps gorm.ErrRecordNotFound so callers can tell a
// missing product from a missing cart line.
var ErrProductNotFound = fmt.Errorf("product: %w", gorm.ErrRecordNotFound)

// ListLines returns the user's lines with their products, oldest first.
func (r *GormRepo) ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Scopes(ownedBy(userID)).
		Order("created_at ASC, id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// AddLine inserts a new line for (line.UserID, line.ProductID) and loads its
// product. It fails with ErrProductNotFound when the product is missing and
// with gorm.ErrDuplicatedKey when the user already has a line for it.
func (r *GormRepo) AddLine(ctx context.Context, line *models.CartLine) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Product{}).Where("id = ?", line.ProductID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrProductNotFound
		}

		if err := tx.Model(&models.CartLine{}).
			Scopes(ownedBy(line.UserID), forProduct(line.ProductID)).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return gorm.ErrDuplicatedKey
		}

		if err := tx.Omit(clause.Associations).Create(line).Error; err != nil {
			if IsDuplicate(err) {
				return gorm.ErrDuplicatedKey
			}
			if IsForeignKeyViolation(err) {
				return ErrProductNotFound
			}
			return err
		}
		return tx.Preload("Product").First(line).Error
	})
}

// UpdateLineQuantity sets the quantity of the user's line for productID.
// gorm.ErrRecordNotFound when there is no such line.
func (r *GormRepo) UpdateLineQuantity(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*models.CartLine, error) {
	var line models.CartLine
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(ownedBy(userID), forProduct(productID)).
			First(&line).Error; err != nil {
			return err
		}
		if err := tx.Model(&line).Omit(clause.Associations).Update("quantity", quantity).Error; err != nil {
			return err
		}
		return tx.Preload("Product").First(&line).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// RemoveLine deletes the user's line for productID.
// gorm.ErrRecordNotFound when there is no such line.
func (r *GormRepo) RemoveLine(ctx context.Context, userID, productID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Scopes(ownedBy(userID), forProduct(productID)).
		Delete(&models.CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearLines deletes every line of the user and reports how many were removed.
func (r *GormRepo) ClearLines(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).Delete(&models.CartLine{})
	return res.RowsAffected, res.Error
}

// CartedProductIDs returns the ids of the products in the user's cart.
func (r *GormRepo) CartedProductIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := r.DB.WithContext(ctx).
		Model(&models.CartLine{}).
		Scopes(ownedBy(userID)).
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// InCart reports whether the user has a line for productID.
func (r *GormRepo) InCart(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.DB.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM cart_lines WHERE user_id = ? AND product_id = ?)", userID, productID).
		Scan(&exists).Error
	return exists, err
}
