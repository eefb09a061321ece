package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sako/internal/models"
	"sako/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// SaleItemRequest is one requested line of a new sale. PriceAtSale is
// optional; when omitted the product's current price is snapshotted.
type SaleItemRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
	PriceAtSale *int   `json:"price_at_sale" validate:"omitempty,gte=0"`
}

// SaleService handles business logic related to sales.
type SaleService struct {
	saleRepo    repositories.SaleRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewSaleService creates a new SaleService. publisher may be nil, in
// which case sale.recorded events are skipped.
func NewSaleService(saleRepo repositories.SaleRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// GetAllSales retrieves all sales.
func (s *SaleService) GetAllSales() ([]models.Sale, error) {
	return s.saleRepo.GetAll()
}

// GetSaleByID retrieves a single sale by its ID.
func (s *SaleService) GetSaleByID(id string) (*models.Sale, error) {
	return s.saleRepo.GetByID(id)
}

// RecordSale creates a sale atomically with its full item list. Each
// line item snapshots the product's name and current price (unless an
// explicit price-at-sale is given), so later product edits never change
// this sale's revenue. A sale.recorded event is published best-effort
// after the sale is persisted.
func (s *SaleService) RecordSale(date time.Time, items []SaleItemRequest) (*models.Sale, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("a sale needs at least one item")
	}

	processedItems := make([]models.SaleItem, 0, len(items))
	for _, req := range items {
		product, err := s.productRepo.GetByID(req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found: %w", req.ProductID, err)
		}

		priceAtSale := -1 // Sentinel: snapshot the product's current price.
		if req.PriceAtSale != nil && *req.PriceAtSale >= 0 {
			priceAtSale = *req.PriceAtSale
		}
		processedItems = append(processedItems, models.NewSaleItem(*product, req.Quantity, priceAtSale))
	}

	newSale := &models.Sale{
		ID:    uuid.New().String(),
		Date:  date,
		Items: processedItems,
	}

	if err := s.saleRepo.Create(newSale); err != nil {
		return nil, fmt.Errorf("failed to create sale in repository: %w", err)
	}

	// Publish an event so downstream consumers (e.g. a recap cache or a
	// notification worker) learn about the new sale. Failure to publish
	// never fails the recording itself.
	if s.publisher != nil {
		saleRecordedMessage := map[string]interface{}{
			"saleID": newSale.ID,
			"date":   newSale.Date.Format(time.RFC3339),
			"total":  newSale.TotalPrice(),
			"items":  len(newSale.Items),
		}
		messageBody, err := json.Marshal(saleRecordedMessage)
		if err != nil {
			log.Printf("Failed to marshal sale to JSON: %v", err)
		} else if err := s.publisher.Publish("", "sale_queue", messageBody); err != nil {
			log.Printf("Warning: Failed to publish sale recorded event for sale %s: %v", newSale.ID, err)
		} else {
			log.Printf("Successfully published sale recorded event for sale %s", newSale.ID)
		}
	} else {
		log.Println("Event publisher is not initialized. Skipping message publication.")
	}

	return newSale, nil
}
