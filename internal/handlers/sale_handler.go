package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"sako/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SaleHandler handles HTTP requests for sales.
type SaleHandler struct {
	service  *services.SaleService
	validate *validator.Validate
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(service *services.SaleService) *SaleHandler {
	return &SaleHandler{
		service:  service,
		validate: validator.New(),
	}
}

// CreateSaleRequest is the request body for recording a sale.
type CreateSaleRequest struct {
	Date  time.Time                  `json:"date" validate:"required"`
	Items []services.SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// RegisterRoutes registers the sale routes with the Fiber app.
func (h *SaleHandler) RegisterRoutes(router fiber.Router) {
	saleRoutes := router.Group("/sales")
	saleRoutes.Get("/", h.HandleGetSales)
	saleRoutes.Get("/:id", h.HandleGetSaleByID)
	saleRoutes.Post("/", h.HandleRecordSale)
}

// HandleGetSales retrieves all sales.
func (h *SaleHandler) HandleGetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales()
	if err != nil {
		log.Printf("Error getting all sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve sales",
			"error":   err.Error(),
		})
	}
	return c.JSON(sales)
}

// HandleGetSaleByID retrieves a single sale by its ID.
func (h *SaleHandler) HandleGetSaleByID(c *fiber.Ctx) error {
	saleID := c.Params("id")
	sale, err := h.service.GetSaleByID(saleID)
	if err != nil {
		log.Printf("Error getting sale by ID %s: %v", saleID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Sale with ID %s not found", saleID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve sale",
			"error":   err.Error(),
		})
	}
	return c.JSON(sale)
}

// HandleRecordSale records a new sale with its full item list.
func (h *SaleHandler) HandleRecordSale(c *fiber.Ctx) error {
	var req CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	sale, err := h.service.RecordSale(req.Date, req.Items)
	if err != nil {
		log.Printf("Error recording sale: %v", err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Sale references an unknown product",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not record sale",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(sale)
}
