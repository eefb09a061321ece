package services

import (
	"fmt"
	"strings"
	"unicode"

	"sako/internal/models"
	"sako/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.validateName(product.Name, product.ID); err != nil {
		return err
	}
	if err := validatePrice(product.Price); err != nil {
		return err
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product's name and price. Other
// fields are preserved, and historical sales are unaffected because
// line items snapshot the price at sale time.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if err := s.validateName(product.Name, product.ID); err != nil {
		return err
	}
	if err := validatePrice(product.Price); err != nil {
		return err
	}

	existing.Name = product.Name
	existing.Price = product.Price
	return s.repo.Update(existing)
}

// DeleteProduct deletes a product by its ID. Recorded sales keep their
// snapshotted name and price.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// validateName applies the product naming rules: trimmed non-empty, no
// leading whitespace, at most 25 characters, at least one letter, and
// unique among existing products (case-insensitive). selfID excludes
// the product being edited from the uniqueness check.
func (s *ProductService) validateName(name, selfID string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("product name cannot be empty")
	}
	if unicode.IsSpace([]rune(name)[0]) {
		return fmt.Errorf("product name cannot start with a space")
	}
	if len([]rune(trimmed)) > 25 {
		return fmt.Errorf("product name exceeds 25 characters")
	}
	if !strings.ContainsFunc(trimmed, unicode.IsLetter) {
		return fmt.Errorf("product name must contain a letter")
	}

	existing, err := s.repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to check for duplicate product name: %w", err)
	}
	for _, p := range existing {
		if p.ID != selfID && strings.EqualFold(p.Name, name) {
			return fmt.Errorf("product name '%s' already exists", name)
		}
	}
	return nil
}

// validatePrice rejects non-positive prices.
func validatePrice(price int) error {
	if price <= 0 {
		return fmt.Errorf("product price must be greater than zero")
	}
	return nil
}
