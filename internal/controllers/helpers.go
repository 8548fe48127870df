package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/booay/pizza-shop-api/internal/services"
	"github.com/gin-gonic/gin"
)

// BulkRequest selects the records an admin bulk action applies to.
type BulkRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// pathID parses the :id route parameter, responding 400 on failure.
func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrBadRequest, "Invalid ID format"))
		return 0, false
	}
	return uint(id), true
}

// queryPage parses the ?page= parameter, defaulting to the first page.
func queryPage(ctx *gin.Context) int {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pizzaQueryFilter builds a pizza list filter from query parameters.
func pizzaQueryFilter(ctx *gin.Context) services.PizzaFilter {
	filter := services.PizzaFilter{Search: ctx.Query("search")}
	if raw := ctx.Query("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if raw := ctx.Query("in_stock"); raw != "" {
		if inStock, err := strconv.ParseBool(raw); err == nil {
			filter.InStock = &inStock
		}
	}
	if raw := ctx.Query("discounted"); raw != "" {
		if discounted, err := strconv.ParseBool(raw); err == nil {
			filter.Discounted = &discounted
		}
	}
	return filter
}

// respondServiceError maps store and bulk-operation errors onto the API
// error taxonomy.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		ctx.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
	case errors.Is(err, services.ErrPizzaNotFound):
		ctx.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrPizzaNotFound, "Pizza not found"))
	case errors.Is(err, services.ErrOrderNotFound):
		ctx.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrOrderNotFound, "Order not found"))
	case errors.Is(err, services.ErrMergePrecondition):
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrMergePrecondition, err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Operation failed"))
	}
}
