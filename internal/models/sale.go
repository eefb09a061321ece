package models

import (
	"fmt"
	"strings"
	"time"
)

// SaleItem represents a single line item within a sale. ProductName and
// PriceAtSale are snapshots taken when the sale is recorded, so later
// edits to the product never rewrite history.
type SaleItem struct {
	ID          uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	SaleID      string `json:"-" gorm:"index;type:varchar(36)"`
	ProductID   string `json:"product_id" gorm:"type:varchar(36)"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	PriceAtSale int    `json:"price_at_sale"`
}

// Sale represents one recorded transaction: a date plus its line items.
// A sale is created atomically with its full item list and is never
// mutated afterwards.
type Sale struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Date      time.Time  `json:"date"`
	Items     []SaleItem `json:"items" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewSaleItem creates a line item for the given product. Quantity is
// clamped to at least 1. When priceAtSale is negative the product's
// current price is snapshotted instead.
func NewSaleItem(product Product, quantity int, priceAtSale int) SaleItem {
	if quantity < 1 {
		quantity = 1
	}
	if priceAtSale < 0 {
		priceAtSale = product.Price
	}
	return SaleItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		PriceAtSale: priceAtSale,
	}
}

// TotalPrice returns the sale's revenue: the sum of each line item's
// snapshotted price times its quantity.
func (s Sale) TotalPrice() int {
	total := 0
	for _, item := range s.Items {
		total += item.PriceAtSale * item.Quantity
	}
	return total
}

// ProductNames returns a display summary of the sale's items, e.g.
// "Bebek Goreng × 2, Nasi Goreng × 3".
func (s Sale) ProductNames() string {
	parts := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		parts = append(parts, fmt.Sprintf("%s × %d", item.ProductName, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
