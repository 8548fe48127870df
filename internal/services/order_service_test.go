package services

import (
	"testing"
	"time"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderSetsCreatedAt(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	order, err := service.CreateOrder(models.Order{
		CustomerName: "Alice",
		Address:      "Main Street 1",
		Delivery:     models.DeliveryStandard,
		Total:        decimal.RequireFromString("19.99"),
		Status:       models.StatusPending,
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.WithinDuration(t, time.Now(), order.CreatedAt, 5*time.Second)
}

func TestUpdateOrderKeepsCreatedAt(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	order := mustOrder(t, db, "Alice", models.DeliveryStandard, models.StatusPending, "")
	original, err := service.GetOrderByID(order.ID)
	require.NoError(t, err)

	changed := original
	changed.CustomerName = "Alice Updated"
	changed.Status = models.StatusShipped
	changed.CreatedAt = original.CreatedAt.Add(-48 * time.Hour)

	updated, err := service.UpdateOrder(changed)
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", updated.CustomerName)
	assert.Equal(t, models.StatusShipped, updated.Status)
	assert.Equal(t, original.CreatedAt.Unix(), updated.CreatedAt.Unix(),
		"created_at is immutable after creation")
}

func TestGetAllOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	oldest := mustOrder(t, db, "Alice", models.DeliveryStandard, models.StatusPending, "")
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", oldest.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	newest := mustOrder(t, db, "Bob", models.DeliveryStandard, models.StatusPending, "")

	orders, err := service.GetAllOrders(OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newest.ID, orders[0].ID)
	assert.Equal(t, oldest.ID, orders[1].ID)
}

func TestGetAllOrdersFilters(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	mustOrder(t, db, "Alice", models.DeliveryExpress, models.StatusShipped, "")
	mustOrder(t, db, "Bob", models.DeliveryStandard, models.StatusPending, "")

	orders, err := service.GetAllOrders(OrderFilter{Status: models.StatusShipped})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Alice", orders[0].CustomerName)

	orders, err = service.GetAllOrders(OrderFilter{Delivery: models.DeliveryStandard})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Bob", orders[0].CustomerName)

	orders, err = service.GetAllOrders(OrderFilter{Search: "Ali"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Alice", orders[0].CustomerName)
}

func TestDeleteOrderNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	assert.ErrorIs(t, service.DeleteOrder(42), ErrOrderNotFound)
}
