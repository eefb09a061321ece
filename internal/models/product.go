package models

import "gorm.io/gorm"

// Product represents an item the stall sells. Price is stored in the
// smallest currency unit as a non-negative integer.
type Product struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"required,min=1,max=25"`
	Price      int    `json:"price" validate:"gte=0"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// NewProduct creates a Product with the price clamped to be non-negative.
// Editing a product later never touches historical sales: line items
// snapshot the price at the moment the sale was recorded.
func NewProduct(name string, price int) Product {
	if price < 0 {
		price = 0
	}
	return Product{
		Name:  name,
		Price: price,
	}
}
