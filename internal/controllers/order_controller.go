package controllers

import (
	"net/http"

	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/booay/pizza-shop-api/internal/services"
	"github.com/gin-gonic/gin"
)

// OrderController handles HTTP requests related to orders
type OrderController interface {
	// GetAllOrders retrieves all orders, newest first
	GetAllOrders(c *gin.Context)
	// GetOrderByID retrieves an order by its ID
	GetOrderByID(c *gin.Context)
	// CreateOrder creates a new order (customer checkout)
	CreateOrder(c *gin.Context)
	// UpdateOrder updates an existing order
	UpdateOrder(c *gin.Context)
	// PatchOrder partially updates an existing order
	PatchOrder(c *gin.Context)
	// DeleteOrder deletes an order by its ID
	DeleteOrder(c *gin.Context)
}

type orderController struct {
	service services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(service services.OrderService) OrderController {
	return &orderController{service: service}
}

// GetAllOrders godoc
// @Summary Get all orders
// @Description Get all orders sorted by creation date descending
// @Tags orders
// @Accept json
// @Produce json
// @Param status query string false "Filter by order status"
// @Param delivery query string false "Filter by delivery type"
// @Success 200 {array} models.Order
// @Failure 500 {object} models.APIError
// @Router /api/orders [get]
func (c *orderController) GetAllOrders(ctx *gin.Context) {
	orders, err := c.service.GetAllOrders(services.OrderFilter{
		Status:   ctx.Query("status"),
		Delivery: ctx.Query("delivery"),
	})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// GetOrderByID godoc
// @Summary Get order by ID
// @Description Get a single order by its ID
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/orders/{id} [get]
func (c *orderController) GetOrderByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	order, err := c.service.GetOrderByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// CreateOrder godoc
// @Summary Create a new order
// @Description Create a new order with the input payload; created_at is set by the store
// @Tags orders
// @Accept json
// @Produce json
// @Param order body models.OrderRequest true "Order object"
// @Success 201 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/orders [post]
func (c *orderController) CreateOrder(ctx *gin.Context) {
	var req models.OrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return
	}
	order, err := c.service.CreateOrder(req.Order())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// UpdateOrder godoc
// @Summary Update an order
// @Description Replace an order's mutable fields; created_at never changes
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param order body models.OrderRequest true "Order object"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/orders/{id} [put]
func (c *orderController) UpdateOrder(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req models.OrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return
	}
	order := req.Order()
	order.ID = id
	updated, err := c.service.UpdateOrder(order)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// PatchOrder godoc
// @Summary Partially update an order
// @Description Update the provided fields of an order; created_at never changes
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param order body models.OrderPatch true "Fields to update"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/orders/{id} [patch]
func (c *orderController) PatchOrder(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	order, err := c.service.GetOrderByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	var patch models.OrderPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(err))
		return
	}
	patch.Apply(&order)
	updated, err := c.service.UpdateOrder(order)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteOrder godoc
// @Summary Delete an order
// @Description Delete an order by its ID
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/orders/{id} [delete]
func (c *orderController) DeleteOrder(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.service.DeleteOrder(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
