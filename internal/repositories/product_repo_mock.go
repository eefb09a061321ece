package repositories

import (
	"fmt"
	"sort"
	"sync"

	"sako/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory catalogue, used in tests and
// by the demo seeder.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates an empty in-memory catalogue.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns the catalogue ordered by product name.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	catalogue := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		catalogue = append(catalogue, p)
	}
	sort.Slice(catalogue, func(i, j int) bool {
		return catalogue[i].Name < catalogue[j].Name
	})
	return catalogue, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	return &product, nil
}

// Create adds a product to the catalogue, assigning an ID when the
// caller did not.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update replaces a product's name and price. The stored record's
// timestamps are kept; sale history is untouched because line items
// snapshot name and price at sale time.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	stored.Name = product.Name
	stored.Price = product.Price
	r.products[product.ID] = stored
	return nil
}

// Delete removes a product from the catalogue.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	delete(r.products, id)
	return nil
}
