package repositories

import (
	"fmt"

	"sako/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSaleRepository is a GORM implementation of SaleRepository.
type GORMSaleRepository struct {
	db *gorm.DB
}

// NewGORMSaleRepository creates a new instance of GORMSaleRepository.
func NewGORMSaleRepository(db *gorm.DB) *GORMSaleRepository {
	return &GORMSaleRepository{
		db: db,
	}
}

// GetAll retrieves all sales with their line items from the database.
func (r *GORMSaleRepository) GetAll() ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.Preload("Items").Order("date asc").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sales: %w", err)
	}
	return sales, nil
}

// GetByID retrieves a single sale with its line items by ID.
func (r *GORMSaleRepository) GetByID(id string) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.Preload("Items").First(&sale, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("sale with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get sale by ID %s: %w", id, err)
	}
	return &sale, nil
}

// Create persists a new sale and its line items in one transaction.
func (r *GORMSaleRepository) Create(sale *models.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if err := r.db.Create(sale).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}
