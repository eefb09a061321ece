package handlers

import (
	"log"
	"time"

	"sako/internal/report"
	"sako/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for monthly recap reports.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes registers the report routes with the Fiber app. The
// monthly sub-routes expose individual pieces of the recap for screens
// that only need a subset.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/monthly", h.HandleMonthlyReport)
	reportRoutes.Get("/monthly/sales", h.HandleMonthlySales)
	reportRoutes.Get("/monthly/top-products", h.HandleTopProducts)
	reportRoutes.Get("/monthly/weekly-revenue", h.HandleWeeklyRevenue)
}

// selectedDate builds the reference date from the year and month query
// parameters, defaulting to the current month.
func (h *ReportHandler) selectedDate(c *fiber.Ctx) (time.Time, bool) {
	loc := h.service.Location()
	now := time.Now().In(loc)

	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 || year < 1 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc), true
}

// groupMode parses the optional group_by query parameter ("name" or
// "product").
func (h *ReportHandler) groupMode(c *fiber.Ctx) (report.GroupMode, error) {
	return report.ParseGroupMode(c.Query("group_by"))
}

// HandleMonthlyReport returns the full recap for the selected month.
func (h *ReportHandler) HandleMonthlyReport(c *fiber.Ctx) error {
	selected, ok := h.selectedDate(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid year or month query parameter",
		})
	}
	groupBy, err := h.groupMode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid group_by query parameter",
			"error":   err.Error(),
		})
	}

	monthlyReport, err := h.service.MonthlyReport(selected, groupBy)
	if err != nil {
		log.Printf("Error building monthly report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build monthly report",
			"error":   err.Error(),
		})
	}
	return c.JSON(monthlyReport)
}

// HandleMonthlySales returns only the sales of the selected month.
func (h *ReportHandler) HandleMonthlySales(c *fiber.Ctx) error {
	selected, ok := h.selectedDate(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid year or month query parameter",
		})
	}

	sales, err := h.service.SalesInMonth(selected)
	if err != nil {
		log.Printf("Error getting monthly sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve monthly sales",
			"error":   err.Error(),
		})
	}
	return c.JSON(sales)
}

// HandleTopProducts returns only the product ranking of the selected
// month.
func (h *ReportHandler) HandleTopProducts(c *fiber.Ctx) error {
	selected, ok := h.selectedDate(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid year or month query parameter",
		})
	}
	groupBy, err := h.groupMode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid group_by query parameter",
			"error":   err.Error(),
		})
	}

	topProducts, err := h.service.TopProducts(selected, groupBy)
	if err != nil {
		log.Printf("Error getting top products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve top products",
			"error":   err.Error(),
		})
	}
	return c.JSON(topProducts)
}

// HandleWeeklyRevenue returns only the four weekly revenue buckets of
// the selected month.
func (h *ReportHandler) HandleWeeklyRevenue(c *fiber.Ctx) error {
	selected, ok := h.selectedDate(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid year or month query parameter",
		})
	}

	weekly, err := h.service.WeeklyRevenue(selected)
	if err != nil {
		log.Printf("Error getting weekly revenue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve weekly revenue",
			"error":   err.Error(),
		})
	}
	return c.JSON(weekly)
}
