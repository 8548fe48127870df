package services

import (
	"fmt"
	"testing"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllCategoriesSortedByName(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db)

	mustCategory(t, db, "Spicy")
	mustCategory(t, db, "Classic")
	mustCategory(t, db, "Vegetarian")

	categories, err := service.GetAllCategories("", 0)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Classic", categories[0].Name)
	assert.Equal(t, "Spicy", categories[1].Name)
	assert.Equal(t, "Vegetarian", categories[2].Name)
}

func TestGetCategoryStatsAggregates(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db)

	classic := mustCategory(t, db, "Classic")
	mustCategory(t, db, "Empty")
	mustPizza(t, db, "Margherita", classic.ID, "10.00", 5, 0)
	mustPizza(t, db, "Pepperoni", classic.ID, "12.50", 3, 0)

	stats, err := service.GetCategoryStats("", 0)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byName := map[string]models.CategoryStats{}
	for _, s := range stats {
		byName[s.Name] = s
	}

	assert.Equal(t, int64(2), byName["Classic"].PizzaCount)
	assert.Equal(t, int64(8), byName["Classic"].TotalStock)
	assert.True(t, byName["Classic"].TotalValue.Equal(mustDecimal("22.50")),
		"total_value = %s", byName["Classic"].TotalValue)

	assert.Equal(t, int64(0), byName["Empty"].PizzaCount)
	assert.Equal(t, int64(0), byName["Empty"].TotalStock)
}

func TestDeleteCategoryCascades(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db)

	doomed := mustCategory(t, db, "Doomed")
	kept := mustCategory(t, db, "Kept")
	mustPizza(t, db, "Margherita", doomed.ID, "10.00", 5, 0)
	mustPizza(t, db, "Pepperoni", doomed.ID, "12.00", 5, 0)
	survivor := mustPizza(t, db, "Diavola", kept.ID, "13.00", 5, 0)

	require.NoError(t, service.DeleteCategory(doomed.ID))

	var pizzaCount int64
	db.Model(&models.Pizza{}).Count(&pizzaCount)
	assert.Equal(t, int64(1), pizzaCount)

	var remaining models.Pizza
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, survivor.ID, remaining.ID)

	var categoryCount int64
	db.Model(&models.Category{}).Count(&categoryCount)
	assert.Equal(t, int64(1), categoryCount)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db)

	err := service.DeleteCategory(999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestGetAllCategoriesPagination(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db)

	for i := 1; i <= ListPageSize+1; i++ {
		mustCategory(t, db, fmt.Sprintf("Category %02d", i))
	}

	tests := []struct {
		name      string
		page      int
		wantCount int
		wantFirst string
	}{
		{"first page holds the page size", 1, ListPageSize, "Category 01"},
		{"second page holds the remainder", 2, 1, "Category 21"},
		{"page beyond the data is empty", 3, 0, ""},
		{"page 0 disables pagination", 0, ListPageSize + 1, "Category 01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories, err := service.GetAllCategories("", tt.page)
			require.NoError(t, err)
			require.Len(t, categories, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantFirst, categories[0].Name)
			}
		})
	}
}

func TestCategorySearchFilter(t *testing.T) {
	db := setupTestDB(t)
	service := NewCategoryService(db)

	mustCategory(t, db, "Classic")
	mustCategory(t, db, "Classic (копия)")
	mustCategory(t, db, "Spicy")

	categories, err := service.GetAllCategories("Classic", 0)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
