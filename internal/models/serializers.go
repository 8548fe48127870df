package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Inbound representations. Binding tags carry the required-field contract:
// a missing field fails binding with a field-level validation error and
// nothing is saved.

// CategoryRequest is the inbound representation of a category.
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// PizzaRequest is the inbound representation of a pizza. Category must
// reference an existing category; the store checks that.
type PizzaRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    uint            `json:"category" binding:"required"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Description *string         `json:"description"`
	Stock       int             `json:"stock"`
	Discount    int             `json:"discount" binding:"gte=0,lte=100"`
}

// Pizza converts the request into an entity (image is managed separately).
func (r *PizzaRequest) Pizza() Pizza {
	return Pizza{
		Name:        r.Name,
		CategoryID:  r.Category,
		BasePrice:   r.BasePrice,
		Description: r.Description,
		Stock:       r.Stock,
		Discount:    r.Discount,
	}
}

// OrderRequest is the inbound representation of an order. CreatedAt is not
// accepted from clients; the store sets it once at creation.
type OrderRequest struct {
	CustomerName string          `json:"customer_name" binding:"required"`
	Address      string          `json:"address" binding:"required"`
	Delivery     string          `json:"delivery" binding:"required,oneof=standard express pickup"`
	Comment      *string         `json:"comment"`
	Total        decimal.Decimal `json:"total" binding:"required"`
	Items        string          `json:"items"`
	Status       string          `json:"status" binding:"omitempty,oneof=Pending Shipped Delivered Cancelled"`
}

// Order converts the request into an entity.
func (r *OrderRequest) Order() Order {
	status := r.Status
	if status == "" {
		status = StatusPending
	}
	return Order{
		CustomerName: r.CustomerName,
		Address:      r.Address,
		Delivery:     r.Delivery,
		Comment:      r.Comment,
		Total:        r.Total,
		Items:        r.Items,
		Status:       status,
	}
}

// Partial (PATCH) representations: nil means "leave unchanged".

// CategoryPatch is a partial category update.
type CategoryPatch struct {
	Name *string `json:"name"`
}

// Apply copies the set fields onto the entity.
func (p *CategoryPatch) Apply(category *Category) {
	if p.Name != nil {
		category.Name = *p.Name
	}
}

// PizzaPatch is a partial pizza update.
type PizzaPatch struct {
	Name        *string          `json:"name"`
	Category    *uint            `json:"category"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	Description *string          `json:"description"`
	Stock       *int             `json:"stock"`
	Discount    *int             `json:"discount" binding:"omitempty,gte=0,lte=100"`
}

// Apply copies the set fields onto the entity.
func (p *PizzaPatch) Apply(pizza *Pizza) {
	if p.Name != nil {
		pizza.Name = *p.Name
	}
	if p.Category != nil {
		pizza.CategoryID = *p.Category
	}
	if p.BasePrice != nil {
		pizza.BasePrice = *p.BasePrice
	}
	if p.Description != nil {
		pizza.Description = p.Description
	}
	if p.Stock != nil {
		pizza.Stock = *p.Stock
	}
	if p.Discount != nil {
		pizza.Discount = *p.Discount
	}
}

// OrderPatch is a partial order update. created_at stays immutable.
type OrderPatch struct {
	CustomerName *string          `json:"customer_name"`
	Address      *string          `json:"address"`
	Delivery     *string          `json:"delivery" binding:"omitempty,oneof=standard express pickup"`
	Comment      *string          `json:"comment"`
	Total        *decimal.Decimal `json:"total"`
	Items        *string          `json:"items"`
	Status       *string          `json:"status" binding:"omitempty,oneof=Pending Shipped Delivered Cancelled"`
}

// Apply copies the set fields onto the entity.
func (p *OrderPatch) Apply(order *Order) {
	if p.CustomerName != nil {
		order.CustomerName = *p.CustomerName
	}
	if p.Address != nil {
		order.Address = *p.Address
	}
	if p.Delivery != nil {
		order.Delivery = *p.Delivery
	}
	if p.Comment != nil {
		order.Comment = p.Comment
	}
	if p.Total != nil {
		order.Total = *p.Total
	}
	if p.Items != nil {
		order.Items = *p.Items
	}
	if p.Status != nil {
		order.Status = *p.Status
	}
}

// PizzaResponse is the outbound representation of a pizza: the category name
// is resolved for the client and the image path is expanded to an absolute
// URL (or null when no image is attached).
type PizzaResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Category     uint            `json:"category"`
	CategoryName string          `json:"category_name"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Description  *string         `json:"description"`
	Image        *string         `json:"image"`
	Stock        int             `json:"stock"`
	Discount     int             `json:"discount"`
}

// NewPizzaResponse serializes a pizza. mediaBaseURL is the public prefix
// under which stored images are served.
func NewPizzaResponse(p Pizza, mediaBaseURL string) PizzaResponse {
	resp := PizzaResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.CategoryID,
		BasePrice:   p.BasePrice,
		Description: p.Description,
		Stock:       p.Stock,
		Discount:    p.Discount,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	if p.Image != nil && *p.Image != "" {
		url := strings.TrimSuffix(mediaBaseURL, "/") + "/" + strings.TrimPrefix(*p.Image, "/")
		resp.Image = &url
	}
	return resp
}

// NewPizzaResponses serializes a slice preserving order.
func NewPizzaResponses(pizzas []Pizza, mediaBaseURL string) []PizzaResponse {
	responses := make([]PizzaResponse, 0, len(pizzas))
	for _, p := range pizzas {
		responses = append(responses, NewPizzaResponse(p, mediaBaseURL))
	}
	return responses
}
