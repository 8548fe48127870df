package controllers

import (
	"net/http"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/booay/pizza-shop-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PizzaController handles HTTP requests related to pizzas
type PizzaController interface {
	// GetAllPizzas retrieves all pizzas
	GetAllPizzas(c *gin.Context)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(c *gin.Context)
	// CreatePizza creates a new pizza
	CreatePizza(c *gin.Context)
	// UpdatePizza updates an existing pizza
	UpdatePizza(c *gin.Context)
	// PatchPizza partially updates an existing pizza
	PatchPizza(c *gin.Context)
	// DeletePizza deletes a pizza by its ID
	DeletePizza(c *gin.Context)
}

type pizzaController struct {
	service      services.PizzaService
	mediaBaseURL string
}

// NewPizzaController creates a new instance of PizzaController.
// mediaBaseURL is the public prefix under which pizza images are served.
func NewPizzaController(service services.PizzaService, mediaBaseURL string) PizzaController {
	return &pizzaController{service: service, mediaBaseURL: mediaBaseURL}
}

// GetAllPizzas godoc
// @Summary Get all pizzas
// @Description Get all pizzas sorted by name with optional filtering
// @Tags pizzas
// @Accept json
// @Produce json
// @Param category query int false "Filter by category ID"
// @Param search query string false "Filter by name or description (partial match)"
// @Param in_stock query bool false "Filter by availability"
// @Param discounted query bool false "Filter by active discount"
// @Success 200 {array} models.PizzaResponse
// @Failure 500 {object} models.APIError
// @Router /api/pizzas [get]
func (c *pizzaController) GetAllPizzas(ctx *gin.Context) {
	pizzas, err := c.service.GetAllPizzas(pizzaQueryFilter(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.NewPizzaResponses(pizzas, c.mediaBaseURL))
}

// GetPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single pizza by its ID
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} models.PizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/pizzas/{id} [get]
func (c *pizzaController) GetPizzaByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	pizza, err := c.service.GetPizzaByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.NewPizzaResponse(pizza, c.mediaBaseURL))
}

// CreatePizza godoc
// @Summary Create a new pizza
// @Description Create a new pizza with the input payload; the category must exist
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizza body models.PizzaRequest true "Pizza object"
// @Success 201 {object} models.PizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/pizzas [post]
func (c *pizzaController) CreatePizza(ctx *gin.Context) {
	var req models.PizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return
	}
	pizza, err := c.service.CreatePizza(req.Pizza())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, models.NewPizzaResponse(pizza, c.mediaBaseURL))
}

// UpdatePizza godoc
// @Summary Update a pizza
// @Description Replace a pizza with the input payload; the category must exist
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Param pizza body models.PizzaRequest true "Pizza object"
// @Success 200 {object} models.PizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/pizzas/{id} [put]
func (c *pizzaController) UpdatePizza(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req models.PizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return
	}
	pizza := req.Pizza()
	pizza.ID = id
	updated, err := c.service.UpdatePizza(pizza)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.NewPizzaResponse(updated, c.mediaBaseURL))
}

// PatchPizza godoc
// @Summary Partially update a pizza
// @Description Update the provided fields of a pizza
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Param pizza body models.PizzaPatch true "Fields to update"
// @Success 200 {object} models.PizzaResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/pizzas/{id} [patch]
func (c *pizzaController) PatchPizza(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	pizza, err := c.service.GetPizzaByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	var patch models.PizzaPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return
	}
	patch.Apply(&pizza)
	updated, err := c.service.UpdatePizza(pizza)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.NewPizzaResponse(updated, c.mediaBaseURL))
}

// DeletePizza godoc
// @Summary Delete a pizza
// @Description Delete a pizza by its ID
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/pizzas/{id} [delete]
func (c *pizzaController) DeletePizza(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.service.DeletePizza(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
