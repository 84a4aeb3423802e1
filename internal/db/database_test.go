package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/grocery_store/internal/db"
	"github.com/Skotchmaster/grocery_store/internal/db/dbtest"
	"github.com/Skotchmaster/grocery_store/internal/models"
)

func TestOpenRejectsEmptyDSN(t *testing.T) {
	_, err := db.Open(context.Background(), db.DriverPostgres, "")
	require.Error(t, err)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := db.Open(context.Background(), "oracle", "dsn")
	require.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestCartLineConstraints(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	require.NoError(t, db.Ping(ctx, gdb))

	alice := dbtest.CreateUser(t, gdb, "alice")
	bread := dbtest.CreateProduct(t, gdb, "Bread", "2.50")

	line := models.CartLine{UserID: alice.ID, ProductID: bread.ID, Quantity: 1}
	require.NoError(t, gdb.Omit("User", "Product").Create(&line).Error)

	t.Run("unique user and product", func(t *testing.T) {
		dup := models.CartLine{UserID: alice.ID, ProductID: bread.ID, Quantity: 2}
		err := gdb.Omit("User", "Product").Create(&dup).Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		milk := dbtest.CreateProduct(t, gdb, "Milk", "1.20")
		zero := models.CartLine{UserID: alice.ID, ProductID: milk.ID, Quantity: 0}
		assert.Error(t, gdb.Omit("User", "Product").Create(&zero).Error)
	})

	t.Run("product must exist", func(t *testing.T) {
		ghost := dbtest.CreateProduct(t, gdb, "Ghost", "1.00")
		require.NoError(t, gdb.Delete(&models.Product{}, "id = ?", ghost.ID).Error)
		orphan := models.CartLine{UserID: alice.ID, ProductID: ghost.ID, Quantity: 1}
		assert.Error(t, gdb.Omit("User", "Product").Create(&orphan).Error)
	})

	t.Run("deleting the product cascades", func(t *testing.T) {
		require.NoError(t, gdb.Delete(&models.Product{}, "id = ?", bread.ID).Error)
		var n int64
		require.NoError(t, gdb.Model(&models.CartLine{}).Where("product_id = ?", bread.ID).Count(&n).Error)
		assert.Zero(t, n)
	})
}

func TestDeletingUserCascades(t *testing.T) {
	gdb := dbtest.Open(t)

	bob := dbtest.CreateUser(t, gdb, "bob")
	milk := dbtest.CreateProduct(t, gdb, "Milk", "1.20")
	require.NoError(t, gdb.Omit("User", "Product").Create(&models.CartLine{UserID: bob.ID, ProductID: milk.ID, Quantity: 3}).Error)

	require.NoError(t, gdb.Delete(&models.User{}, "id = ?", bob.ID).Error)

	var n int64
	require.NoError(t, gdb.Model(&models.CartLine{}).Count(&n).Error)
	assert.Zero(t, n)
}
