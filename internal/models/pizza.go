package models

import "github.com/shopspring/decimal"

// Pizza is a catalog item. Prices are stored as decimal(10,2); Discount is a
// whole percentage (0-100) applied on top of BasePrice.
type Pizza struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:200;not null"`
	CategoryID  uint            `json:"category" gorm:"not null;index"`
	Category    *Category       `json:"-" gorm:"foreignKey:CategoryID"`
	BasePrice   decimal.Decimal `json:"base_price" gorm:"type:decimal(10,2);default:0"`
	Description *string         `json:"description"`
	Image       *string         `json:"-" gorm:"size:255"`
	Stock       int             `json:"stock" gorm:"default:0"`
	Discount    int             `json:"discount" gorm:"default:0"`
}

var oneHundred = decimal.NewFromInt(100)

// FinalPrice returns the price after applying the discount percentage,
// rounded to currency precision. With no discount it is BasePrice unchanged.
func (p *Pizza) FinalPrice() decimal.Decimal {
	if p.Discount == 0 {
		return p.BasePrice
	}
	return p.BasePrice.
		Mul(decimal.NewFromInt(int64(100 - p.Discount))).
		Div(oneHundred).
		Round(2)
}

// IsAvailable reports whether the pizza can currently be ordered.
func (p *Pizza) IsAvailable() bool {
	return p.Stock > 0
}
