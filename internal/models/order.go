package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. Transitions are not enforced anywhere: bulk admin
// actions may set any status regardless of the current one (administrator
// override), so the usual lifecycle
// Pending -> Shipped -> Delivered, with Cancelled reachable from any
// non-terminal state, is documentation rather than a guard.
const (
	StatusPending   = "Pending"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// Delivery type values.
const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
	DeliveryPickup   = "pickup"
)

// Order is a customer order. Items is free-form text: either a JSON-encoded
// list of {name, quantity} objects or a comma-separated string; the schema
// does not enforce either shape, so readers go through ItemLines/ItemCount.
// CreatedAt is set once at creation and never updated afterwards.
type Order struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	CustomerName string          `json:"customer_name" gorm:"size:200;not null"`
	Address      string          `json:"address" gorm:"not null"`
	Delivery     string          `json:"delivery" gorm:"size:50;not null"`
	Comment      *string         `json:"comment"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime"`
	Items        string          `json:"items" gorm:"default:''"`
	Status       string          `json:"status" gorm:"size:20;default:'Pending'"`
}

// OrderItem is one parsed line of the Items field.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// noPizzas is what empty or empty-list items render as.
const noPizzas = "no pizzas"

// ItemLines renders the Items field for display. JSON lists render one line
// per element, mappings as "name (xquantity)" with quantity defaulting to 1.
// Anything that does not decode as a JSON list falls back to the raw string
// verbatim; empty input renders as "no pizzas". Malformed input is never an
// error here.
func (o *Order) ItemLines() []string {
	if strings.TrimSpace(o.Items) == "" {
		return []string{noPizzas}
	}
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(o.Items), &elements); err != nil {
		return []string{o.Items}
	}
	if len(elements) == 0 {
		return []string{noPizzas}
	}
	lines := make([]string, 0, len(elements))
	for _, element := range elements {
		var item OrderItem
		if err := json.Unmarshal(element, &item); err == nil && item.Name != "" {
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			lines = append(lines, fmt.Sprintf("%s (x%d)", item.Name, quantity))
			continue
		}
		var plain string
		if err := json.Unmarshal(element, &plain); err == nil {
			lines = append(lines, plain)
		} else {
			lines = append(lines, string(element))
		}
	}
	return lines
}

// ItemCount counts order lines: length of the JSON list when Items decodes as
// one, otherwise the number of comma-separated segments of the raw string,
// otherwise 0 for empty input.
func (o *Order) ItemCount() int {
	if strings.TrimSpace(o.Items) == "" {
		return 0
	}
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(o.Items), &elements); err == nil {
		return len(elements)
	}
	return len(strings.Split(o.Items, ","))
}
