package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// setupTestDB opens a fresh in-memory database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Pizza{},
		&models.Order{},
		&models.User{},
	))
	return db
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func mustPizza(t *testing.T, db *gorm.DB, name string, categoryID uint, price string, stock, discount int) models.Pizza {
	t.Helper()
	pizza := models.Pizza{
		Name:       name,
		CategoryID: categoryID,
		BasePrice:  decimal.RequireFromString(price),
		Stock:      stock,
		Discount:   discount,
	}
	require.NoError(t, db.Create(&pizza).Error)
	return pizza
}

func mustOrder(t *testing.T, db *gorm.DB, customer, delivery, status, items string) models.Order {
	t.Helper()
	order := models.Order{
		CustomerName: customer,
		Address:      "Main Street 1",
		Delivery:     delivery,
		Total:        decimal.RequireFromString("25.50"),
		Items:        items,
		Status:       status,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}
