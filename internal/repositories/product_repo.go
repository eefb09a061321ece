package repositories

import (
	"sako/internal/models"
)

// ProductRepository persists the stall's catalogue. GetAll returns the
// catalogue ordered by product name, the way the menu screen lists it.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
