package models

import "github.com/shopspring/decimal"

// Category groups pizzas on the menu.
// Deleting a category removes its pizzas (cascade).
type Category struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	Name   string  `json:"name" gorm:"size:100;not null"`
	Pizzas []Pizza `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// CategoryStats is a category list row with read-time aggregates over its
// pizzas. Nothing in it is stored; it is produced by a join at query time.
type CategoryStats struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	PizzaCount int64           `json:"pizza_count"`
	TotalStock int64           `json:"total_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}
