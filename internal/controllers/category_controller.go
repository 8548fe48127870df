package controllers

import (
	"net/http"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/booay/pizza-shop-api/internal/services"
	"github.com/gin-gonic/gin"
)

// CategoryController handles HTTP requests related to categories
type CategoryController interface {
	// GetAllCategories retrieves all categories
	GetAllCategories(c *gin.Context)
	// GetCategoryByID retrieves a category by its ID
	GetCategoryByID(c *gin.Context)
	// CreateCategory creates a new category
	CreateCategory(c *gin.Context)
	// UpdateCategory updates an existing category
	UpdateCategory(c *gin.Context)
	// PatchCategory partially updates an existing category
	PatchCategory(c *gin.Context)
	// DeleteCategory deletes a category and its pizzas
	DeleteCategory(c *gin.Context)
}

type categoryController struct {
	service services.CategoryService
}

// NewCategoryController creates a new instance of CategoryController
func NewCategoryController(service services.CategoryService) CategoryController {
	return &categoryController{service: service}
}

// GetAllCategories godoc
// @Summary Get all categories
// @Description Get all categories sorted by name, optionally filtered by a name search
// @Tags categories
// @Accept json
// @Produce json
// @Param search query string false "Filter by category name (partial match)"
// @Success 200 {array} models.Category
// @Failure 500 {object} models.APIError
// @Router /api/categories [get]
func (c *categoryController) GetAllCategories(ctx *gin.Context) {
	categories, err := c.service.GetAllCategories(ctx.Query("search"), 0)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// GetCategoryByID godoc
// @Summary Get category by ID
// @Description Get a single category by its ID
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/categories/{id} [get]
func (c *categoryController) GetCategoryByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	category, err := c.service.GetCategoryByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// CreateCategory godoc
// @Summary Create a new category
// @Description Create a new category with the input payload
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CategoryRequest true "Category object"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/categories [post]
func (c *categoryController) CreateCategory(ctx *gin.Context) {
	var req models.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return
	}
	category, err := c.service.CreateCategory(models.Category{Name: req.Name})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Replace a category with the input payload
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body models.CategoryRequest true "Category object"
// @Success 200 {object} models.Category
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/categories/{id} [put]
func (c *categoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req models.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return
	}
	category, err := c.service.UpdateCategory(models.Category{ID: id, Name: req.Name})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// PatchCategory godoc
// @Summary Partially update a category
// @Description Update the provided fields of a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body models.CategoryPatch true "Fields to update"
// @Success 200 {object} models.Category
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/categories/{id} [patch]
func (c *categoryController) PatchCategory(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	category, err := c.service.GetCategoryByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	var patch models.CategoryPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return
	}
	patch.Apply(&category)
	updated, err := c.service.UpdateCategory(category)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category by its ID; its pizzas are deleted with it
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/categories/{id} [delete]
func (c *categoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.service.DeleteCategory(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
