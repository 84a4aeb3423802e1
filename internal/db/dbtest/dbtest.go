// Package dbtest opens throwaway in-memory databases and seeds fixtures for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/grocery_store/internal/db"
	"github.com/Skotchmaster/grocery_store/internal/models"
)

// Open returns a migrated in-memory SQLite database with foreign keys enabled.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	ctx := context.Background()
	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, gdb))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func CreateUser(t testing.TB, gdb *gorm.DB, username string) models.User {
	t.Helper()

	u := models.User{
		Username:     username,
		Email:        gofakeit.Email(),
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func CreateProduct(t testing.TB, gdb *gorm.DB, name, price string) models.Product {
	t.Helper()

	p := models.Product{
		Name:            name,
		Slug:            gofakeit.LetterN(10),
		Price:           decimal.RequireFromString(price),
		MeasurementUnit: gofakeit.RandomString([]string{"kg", "pcs", "l"}),
		IsAvailable:     true,
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}
