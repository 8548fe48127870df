package services

import (
	"testing"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePizzaRequiresExistingCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaService(db)

	_, err := service.CreatePizza(models.Pizza{Name: "Orphan", CategoryID: 999})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	var count int64
	db.Model(&models.Pizza{}).Count(&count)
	assert.Equal(t, int64(0), count, "no partial save")
}

func TestCreatePizzaResolvesCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaService(db)

	classic := mustCategory(t, db, "Classic")
	pizza, err := service.CreatePizza(models.Pizza{
		Name:       "Margherita",
		CategoryID: classic.ID,
		BasePrice:  decimal.RequireFromString("10.99"),
		Stock:      5,
	})
	require.NoError(t, err)
	require.NotNil(t, pizza.Category)
	assert.Equal(t, "Classic", pizza.Category.Name)
}

func TestGetAllPizzasSortedAndFiltered(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaService(db)

	classic := mustCategory(t, db, "Classic")
	spicy := mustCategory(t, db, "Spicy")
	mustPizza(t, db, "Pepperoni", classic.ID, "12.00", 0, 0)
	mustPizza(t, db, "Diavola", spicy.ID, "13.00", 4, 10)
	mustPizza(t, db, "Margherita", classic.ID, "10.00", 5, 0)

	pizzas, err := service.GetAllPizzas(PizzaFilter{})
	require.NoError(t, err)
	require.Len(t, pizzas, 3)
	assert.Equal(t, "Diavola", pizzas[0].Name)
	assert.Equal(t, "Margherita", pizzas[1].Name)
	assert.Equal(t, "Pepperoni", pizzas[2].Name)

	pizzas, err = service.GetAllPizzas(PizzaFilter{CategoryID: classic.ID})
	require.NoError(t, err)
	assert.Len(t, pizzas, 2)

	inStock := true
	pizzas, err = service.GetAllPizzas(PizzaFilter{InStock: &inStock})
	require.NoError(t, err)
	assert.Len(t, pizzas, 2)

	discounted := true
	pizzas, err = service.GetAllPizzas(PizzaFilter{Discounted: &discounted})
	require.NoError(t, err)
	require.Len(t, pizzas, 1)
	assert.Equal(t, "Diavola", pizzas[0].Name)
}

func TestUpdatePizzaKeepsImage(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaService(db)

	classic := mustCategory(t, db, "Classic")
	pizza := mustPizza(t, db, "Margherita", classic.ID, "10.00", 5, 0)

	attached, err := service.AttachImage(pizza.ID, "pizzas/margherita.png")
	require.NoError(t, err)
	require.NotNil(t, attached.Image)

	attached.Name = "Margherita Speciale"
	attached.Image = nil
	updated, err := service.UpdatePizza(attached)
	require.NoError(t, err)
	assert.Equal(t, "Margherita Speciale", updated.Name)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "pizzas/margherita.png", *updated.Image)
}

func TestDeletePizzaNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaService(db)

	assert.ErrorIs(t, service.DeletePizza(42), ErrPizzaNotFound)
}
