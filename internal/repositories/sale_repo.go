package repositories

import (
	"sako/internal/models"
)

// SaleRepository defines the interface for sale data access. Sales are
// written once, at recording time, and never mutated afterwards.
type SaleRepository interface {
	GetAll() ([]models.Sale, error)
	GetByID(id string) (*models.Sale, error)
	Create(sale *models.Sale) error
}
