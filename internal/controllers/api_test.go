package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/booay/pizza-shop-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

const testMediaBaseURL = "http://localhost:8080/media"

// setupTestRouter wires the controllers against a fresh in-memory database.
// Admin routes are registered without the auth middleware; authentication is
// covered separately.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:controllertest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Pizza{}, &models.Order{}))

	categoryService := services.NewCategoryService(db)
	pizzaService := services.NewPizzaService(db)
	orderService := services.NewOrderService(db)
	catalogAdmin := services.NewCatalogAdminService(db)
	orderAdmin := services.NewOrderAdminService(db)

	categories := NewCategoryController(categoryService)
	pizzas := NewPizzaController(pizzaService, testMediaBaseURL)
	orders := NewOrderController(orderService)
	catalog := NewCatalogAdminController(catalogAdmin, categoryService, pizzaService, t.TempDir(), testMediaBaseURL)
	orderBulk := NewOrderAdminController(orderAdmin, orderService)

	router := gin.New()
	api := router.Group("/api")
	{
		api.GET("/categories", categories.GetAllCategories)
		api.POST("/categories", categories.CreateCategory)
		api.GET("/categories/:id", categories.GetCategoryByID)
		api.PUT("/categories/:id", categories.UpdateCategory)
		api.PATCH("/categories/:id", categories.PatchCategory)
		api.DELETE("/categories/:id", categories.DeleteCategory)

		api.GET("/pizzas", pizzas.GetAllPizzas)
		api.POST("/pizzas", pizzas.CreatePizza)
		api.GET("/pizzas/:id", pizzas.GetPizzaByID)
		api.PUT("/pizzas/:id", pizzas.UpdatePizza)
		api.PATCH("/pizzas/:id", pizzas.PatchPizza)
		api.DELETE("/pizzas/:id", pizzas.DeletePizza)

		api.GET("/orders", orders.GetAllOrders)
		api.POST("/orders", orders.CreateOrder)
		api.GET("/orders/:id", orders.GetOrderByID)
	}
	admin := router.Group("/admin")
	{
		admin.GET("/categories", catalog.ListCategories)
		admin.POST("/categories/actions/merge", catalog.MergeCategories)
		admin.POST("/pizzas/export", catalog.ExportPizzas)
		admin.POST("/orders/actions/mark-shipped", orderBulk.MarkAsShipped)
		admin.GET("/orders", orderBulk.ListOrders)
		admin.POST("/orders/export", orderBulk.ExportOrders)
	}
	return router, db
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCategoryCRUD(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/categories", gin.H{"name": "Classic"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Classic", created.Name)

	w = doJSON(router, "PATCH", fmt.Sprintf("/api/categories/%d", created.ID), gin.H{"name": "Classics"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", fmt.Sprintf("/api/categories/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Classics", fetched.Name)

	w = doJSON(router, "DELETE", fmt.Sprintf("/api/categories/%d", created.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, "GET", fmt.Sprintf("/api/categories/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCategoryValidation(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/categories", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrValidationFailed, apiErr.Code)
	assert.Contains(t, apiErr.Details, "Name")
}

func TestCreatePizzaValidationNamesFields(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/pizzas", gin.H{"stock": 5})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrValidationFailed, apiErr.Code)
	assert.Contains(t, apiErr.Details, "Name")
	assert.Contains(t, apiErr.Details, "Category")
}

func TestCreatePizzaResolvesCategoryName(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/categories", gin.H{"name": "Classic"})
	require.Equal(t, http.StatusCreated, w.Code)
	var category models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))

	w = doJSON(router, "POST", "/api/pizzas", gin.H{
		"name":       "Margherita",
		"category":   category.ID,
		"base_price": "10.99",
		"stock":      5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Margherita", resp["name"])
	assert.Equal(t, "Classic", resp["category_name"])
	assert.Nil(t, resp["image"])
}

func TestCreatePizzaUnknownCategory(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/pizzas", gin.H{"name": "Orphan", "category": 12345})
	require.Equal(t, http.StatusNotFound, w.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrCategoryNotFound, apiErr.Code)
}

func TestCreateOrderValidationNamesFields(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/orders", gin.H{"comment": "ring twice"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrValidationFailed, apiErr.Code)
	assert.Contains(t, apiErr.Details, "CustomerName")
	assert.Contains(t, apiErr.Details, "Address")
	assert.Contains(t, apiErr.Details, "Delivery")
	assert.Contains(t, apiErr.Details, "Total")
}

func TestCreateOrderDefaultsToPending(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/orders", gin.H{
		"customer_name": "Alice",
		"address":       "Main Street 1",
		"delivery":      "standard",
		"total":         "25.50",
		"items":         `[{"name":"Margherita","quantity":2}]`,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.StatusPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestCreateOrderRejectsUnknownDelivery(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/orders", gin.H{
		"customer_name": "Alice",
		"address":       "Main Street 1",
		"delivery":      "teleport",
		"total":         "25.50",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Contains(t, apiErr.Details, "Delivery")
}

func TestMergePreconditionOverAPI(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/categories", gin.H{"name": "Classic"})
	require.Equal(t, http.StatusCreated, w.Code)
	var category models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))

	w = doJSON(router, "POST", "/admin/categories/actions/merge", gin.H{"ids": []uint{category.ID}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrMergePrecondition, apiErr.Code)
}

func TestExportPizzasAsAttachment(t *testing.T) {
	router, db := setupTestRouter(t)

	category := models.Category{Name: "Classic"}
	require.NoError(t, db.Create(&category).Error)
	pizza := models.Pizza{Name: "Margherita", CategoryID: category.ID}
	require.NoError(t, db.Create(&pizza).Error)

	w := doJSON(router, "POST", "/admin/pizzas/export", gin.H{"ids": []uint{pizza.ID}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Margherita")
	assert.Contains(t, w.Body.String(), "Название")
}

func TestAdminOrderListRendersItems(t *testing.T) {
	router, db := setupTestRouter(t)

	order := models.Order{
		CustomerName: "Alice",
		Address:      "Main Street 1",
		Delivery:     models.DeliveryStandard,
		Status:       models.StatusPending,
		Items:        `[{"name":"Margherita","quantity":2},{"name":"Diavola"}]`,
	}
	require.NoError(t, db.Create(&order).Error)

	w := doJSON(router, "GET", "/admin/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []AdminOrderRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].ItemCount)
	assert.Equal(t, []string{"Margherita (x2)", "Diavola (x1)"}, rows[0].Items)
}

func TestBulkMarkShippedOverAPI(t *testing.T) {
	router, db := setupTestRouter(t)

	orders := make([]models.Order, 3)
	for i := range orders {
		orders[i] = models.Order{
			CustomerName: fmt.Sprintf("Customer %d", i),
			Address:      "Main Street 1",
			Delivery:     models.DeliveryStandard,
			Status:       models.StatusPending,
		}
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	w := doJSON(router, "POST", "/admin/orders/actions/mark-shipped",
		gin.H{"ids": []uint{orders[0].ID, orders[2].ID}})
	require.Equal(t, http.StatusOK, w.Code)

	var statuses []string
	require.NoError(t, db.Model(&models.Order{}).Order("id").Pluck("status", &statuses).Error)
	assert.Equal(t, []string{models.StatusShipped, models.StatusPending, models.StatusShipped}, statuses)
}
