package repositories

import (
	"fmt"
	"sync"
	"time"

	"sako/internal/models"

	"github.com/google/uuid"
)

// MockSaleRepository is an in-memory implementation of SaleRepository.
type MockSaleRepository struct {
	sales map[string]models.Sale
	order []string
	mu    sync.RWMutex
}

// NewMockSaleRepository creates a new instance of MockSaleRepository.
func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{
		sales: make(map[string]models.Sale),
	}
}

// GetAll returns all sales in insertion order.
func (r *MockSaleRepository) GetAll() ([]models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	saleList := make([]models.Sale, 0, len(r.order))
	for _, id := range r.order {
		saleList = append(saleList, r.sales[id])
	}
	return saleList, nil
}

// GetByID returns a sale by its ID.
func (r *MockSaleRepository) GetByID(id string) (*models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sale, ok := r.sales[id]
	if !ok {
		return nil, fmt.Errorf("sale with ID %s not found", id)
	}
	return &sale, nil
}

// Create adds a new sale together with its line items.
func (r *MockSaleRepository) Create(sale *models.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	sale.CreatedAt = time.Now()
	sale.UpdatedAt = time.Now()
	r.sales[sale.ID] = *sale
	r.order = append(r.order, sale.ID)
	return nil
}
