package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/grocery_store/internal/db/dbtest"
	"github.com/Skotchmaster/grocery_store/internal/models"
	"github.com/Skotchmaster/grocery_store/internal/repo"
)

func TestProducts(t *testing.T) {
	gdb := dbtest.Open(t)
	r := repo.New(gdb)
	ctx := context.Background()

	milk := &models.Product{
		Name:            "Milk",
		Slug:            "milk",
		Price:           decimal.RequireFromString("1.20"),
		MeasurementUnit: "l",
		Images:          []models.Image{{URL: "https://img.example/milk.png"}},
	}
	require.NoError(t, r.CreateProduct(ctx, milk))
	dbtest.CreateProduct(t, gdb, "Apples", "3.00")

	got, err := r.GetProduct(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.20", got.Price.StringFixed(2))
	require.Len(t, got.Images, 1)
	assert.Equal(t, milk.ID, got.Images[0].ProductID)

	all, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Apples", all[0].Name)
	assert.Equal(t, "Milk", all[1].Name)

	_, err = r.GetProduct(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, r.DeleteProduct(ctx, milk.ID))
	assert.ErrorIs(t, r.DeleteProduct(ctx, milk.ID), gorm.ErrRecordNotFound)

	var images int64
	require.NoError(t, gdb.Model(&models.Image{}).Count(&images).Error)
	assert.Zero(t, images)
}

func TestUsers(t *testing.T) {
	gdb := dbtest.Open(t)
	r := repo.New(gdb)
	ctx := context.Background()

	u := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h1", Role: models.RoleUser}
	require.NoError(t, r.CreateUser(ctx, u))

	again := &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "h2", Role: models.RoleUser}
	assert.ErrorIs(t, r.CreateUser(ctx, again), gorm.ErrDuplicatedKey)

	require.NoError(t, r.UpdatePasswordHash(ctx, u.ID, "h3"))
	got, err := r.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "h3", got.PasswordHash)

	assert.ErrorIs(t, r.UpdatePasswordHash(ctx, uuid.New(), "h4"), gorm.ErrRecordNotFound)
}
