package controllers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/booay/pizza-shop-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminOrderRow is one row of the admin order list view: the order plus the
// parsed item rendering the operator sees.
type AdminOrderRow struct {
	ID           uint            `json:"id"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	Delivery     string          `json:"delivery"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	ItemCount    int             `json:"item_count"`
	Items        []string        `json:"items_display"`
}

// OrderAdminController dispatches the admin surface bulk actions over orders.
type OrderAdminController interface {
	// ListOrders renders the order list view, newest first
	ListOrders(c *gin.Context)
	// MarkAsExpress switches the selected orders to express delivery
	MarkAsExpress(c *gin.Context)
	// MarkAsShipped sets the selected orders to Shipped
	MarkAsShipped(c *gin.Context)
	// MarkAsDelivered sets the selected orders to Delivered
	MarkAsDelivered(c *gin.Context)
	// CancelOrders sets the selected orders to Cancelled
	CancelOrders(c *gin.Context)
	// ExportOrders downloads the selected orders as CSV
	ExportOrders(c *gin.Context)
}

type orderAdminController struct {
	admin  services.OrderAdminService
	orders services.OrderService
}

// NewOrderAdminController creates a new instance of OrderAdminController
func NewOrderAdminController(admin services.OrderAdminService, orders services.OrderService) OrderAdminController {
	return &orderAdminController{admin: admin, orders: orders}
}

// ListOrders godoc
// @Summary List orders for the admin surface
// @Description Order list view with item counts and rendered item lists, newest first, 20 per page
// @Tags admin
// @Produce json
// @Param status query string false "Filter by order status"
// @Param delivery query string false "Filter by delivery type"
// @Param search query string false "Filter by customer, address or comment"
// @Param page query int false "Page number (20 per page)"
// @Success 200 {array} AdminOrderRow
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /admin/orders [get]
func (c *orderAdminController) ListOrders(ctx *gin.Context) {
	orders, err := c.orders.GetAllOrders(services.OrderFilter{
		Status:   ctx.Query("status"),
		Delivery: ctx.Query("delivery"),
		Search:   ctx.Query("search"),
		Page:     queryPage(ctx),
	})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	rows := make([]AdminOrderRow, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, AdminOrderRow{
			ID:           order.ID,
			CustomerName: order.CustomerName,
			Total:        order.Total,
			Delivery:     order.Delivery,
			Status:       order.Status,
			CreatedAt:    order.CreatedAt,
			ItemCount:    order.ItemCount(),
			Items:        order.ItemLines(),
		})
	}
	ctx.JSON(http.StatusOK, rows)
}

func (c *orderAdminController) runOrderBulk(ctx *gin.Context, run func([]uint) (int64, error), message string) {
	req, ok := bindBulk(ctx)
	if !ok {
		return
	}
	updated, err := run(req.IDs)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": updated, "message": message})
}

// MarkAsExpress godoc
// @Summary Switch the selected orders to express delivery
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected order IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/orders/actions/mark-express [post]
func (c *orderAdminController) MarkAsExpress(ctx *gin.Context) {
	c.runOrderBulk(ctx, c.admin.MarkAsExpress, "delivery set to express")
}

// MarkAsShipped godoc
// @Summary Set the selected orders to Shipped
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected order IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/orders/actions/mark-shipped [post]
func (c *orderAdminController) MarkAsShipped(ctx *gin.Context) {
	c.runOrderBulk(ctx, c.admin.MarkAsShipped, "status set to Shipped")
}

// MarkAsDelivered godoc
// @Summary Set the selected orders to Delivered
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected order IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/orders/actions/mark-delivered [post]
func (c *orderAdminController) MarkAsDelivered(ctx *gin.Context) {
	c.runOrderBulk(ctx, c.admin.MarkAsDelivered, "status set to Delivered")
}

// CancelOrders godoc
// @Summary Set the selected orders to Cancelled
// @Tags admin
// @Accept json
// @Produce json
// @Param selection body BulkRequest true "Selected order IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/orders/actions/cancel [post]
func (c *orderAdminController) CancelOrders(ctx *gin.Context) {
	c.runOrderBulk(ctx, c.admin.CancelOrders, "status set to Cancelled")
}

// ExportOrders godoc
// @Summary Export the selected orders as CSV
// @Description One row per selected order in selection order, items field verbatim
// @Tags admin
// @Accept json
// @Produce text/csv
// @Param selection body BulkRequest true "Selected order IDs"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /admin/orders/export [post]
func (c *orderAdminController) ExportOrders(ctx *gin.Context) {
	req, ok := bindBulk(ctx)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if _, err := c.admin.ExportOrdersCSV(req.IDs, &buf); err != nil {
		respondServiceError(ctx, err)
		return
	}
	sendCSV(ctx, "orders_export.csv", buf.Bytes())
}
