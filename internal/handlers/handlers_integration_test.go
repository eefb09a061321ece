package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"sako/internal/handlers"
	"sako/internal/middleware"
	"sako/internal/models"
	"sako/internal/repositories"
	"sako/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp sets up a Fiber app for testing with in-memory SQLite and all handlers/services.
// dbName isolates each test in its own shared-cache in-memory database,
// so pooled connections see the same data without leaking across tests.
func setupApp(dbName string) (*fiber.App, error) {
	// Configure Viper for testing
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// Initialize in-memory SQLite database
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(&models.Product{}, &models.Sale{}, &models.SaleItem{}, &models.Owner{})
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	// Initialize Repositories
	productRepo := repositories.NewGORMProductRepository(db)
	saleRepo := repositories.NewGORMSaleRepository(db)
	ownerRepo := repositories.NewGORMOwnerRepository(db)

	// Initialize Services
	productService := services.NewProductService(productRepo)
	saleService := services.NewSaleService(saleRepo, productRepo, nil) // nil publisher: no broker in tests
	reportService := services.NewReportService(saleRepo, time.UTC)
	authService := services.NewAuthService(ownerRepo, jwtSecret)

	// Initialize Handlers
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)
	reportHandler := handlers.NewReportHandler(reportService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()

	// API Routes
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// Protected routes (require JWT authentication)
	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protectedRoutes)
	saleHandler.RegisterRoutes(protectedRoutes)
	reportHandler.RegisterRoutes(protectedRoutes)

	return app, nil
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

// obtainToken registers the owner account and logs in, returning a JWT.
func obtainToken(t *testing.T, app *fiber.App) string {
	t.Helper()

	register := map[string]string{
		"username": "owner",
		"email":    "owner@example.com",
		"password": "password123",
	}
	jsonBody, _ := json.Marshal(register)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	login := map[string]string{
		"username": "owner",
		"password": "password123",
	}
	jsonBody, _ = json.Marshal(login)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResponse struct {
		Token string `json:"token"`
	}
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &loginResponse))
	assert.NotEmpty(t, loginResponse.Token)
	return loginResponse.Token
}

// doRequest sends a JSON request, optionally carrying the bearer token.
func doRequest(t *testing.T, app *fiber.App, method, target, token string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewReader(jsonBody)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(body, out))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, err := setupApp("protected_routes")
	assert.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/reports/monthly", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOwnerRegistrationIsOneTime(t *testing.T) {
	app, err := setupApp("owner_bootstrap")
	assert.NoError(t, err)

	// Bootstrap the owner account.
	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "owner",
		"email":    "owner@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// A second account is refused, even with different credentials.
	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "intruder",
		"email":    "intruder@example.com",
		"password": "password456",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The original owner can still log in.
	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "owner",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProductLifecycle(t *testing.T) {
	app, err := setupApp("product_lifecycle")
	assert.NoError(t, err)
	token := obtainToken(t, app)

	// Create a product
	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name":  "Bebek Goreng",
		"price": 10000,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Product
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Bebek Goreng", created.Name)
	assert.Equal(t, 10000, created.Price)

	// Duplicate names are rejected, case-insensitively
	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name":  "bebek goreng",
		"price": 9000,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Update name and price
	resp = doRequest(t, app, http.MethodPut, "/api/v1/products/"+created.ID, token, map[string]interface{}{
		"name":  "Bebek Goreng Pedas",
		"price": 12000,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Fetch it back
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Product
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "Bebek Goreng Pedas", fetched.Name)
	assert.Equal(t, 12000, fetched.Price)
}

func TestRecordSaleAndMonthlyReport(t *testing.T) {
	app, err := setupApp("sale_report")
	assert.NoError(t, err)
	token := obtainToken(t, app)

	// Create two products
	var bebek, sate models.Product
	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name": "Bebek Goreng", "price": 10000,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &bebek)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name": "Sate", "price": 50000,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &sate)

	// Record two sales in May 2025 (day 3 and day 14) and one in April.
	resp = doRequest(t, app, http.MethodPost, "/api/v1/sales", token, map[string]interface{}{
		"date": "2025-05-03T10:00:00Z",
		"items": []map[string]interface{}{
			{"product_id": bebek.ID, "quantity": 2},
			{"product_id": sate.ID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/sales", token, map[string]interface{}{
		"date": "2025-05-14T18:30:00Z",
		"items": []map[string]interface{}{
			{"product_id": bebek.ID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/sales", token, map[string]interface{}{
		"date": "2025-04-25T12:00:00Z",
		"items": []map[string]interface{}{
			{"product_id": sate.ID, "quantity": 2},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Fetch the May 2025 report
	resp = doRequest(t, app, http.MethodGet, "/api/v1/reports/monthly?year=2025&month=5", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var monthly struct {
		Year                 int `json:"year"`
		TotalRevenue         int `json:"total_revenue"`
		PreviousMonthRevenue int `json:"previous_month_revenue"`
		Change               struct {
			Direction string `json:"direction"`
			Amount    int    `json:"amount"`
		} `json:"change"`
		TopProducts []struct {
			Name     string `json:"name"`
			Revenue  int    `json:"revenue"`
			Quantity int    `json:"quantity"`
		} `json:"top_products"`
		WeeklyRevenue [4]int `json:"weekly_revenue"`
	}
	decodeBody(t, resp, &monthly)

	assert.Equal(t, 2025, monthly.Year)
	assert.Equal(t, 80000, monthly.TotalRevenue)          // 2*10000 + 50000 + 10000
	assert.Equal(t, 100000, monthly.PreviousMonthRevenue) // April: 2*50000
	assert.Equal(t, "decrease", monthly.Change.Direction)
	assert.Equal(t, 20000, monthly.Change.Amount)
	assert.Equal(t, [4]int{70000, 10000, 0, 0}, monthly.WeeklyRevenue)

	assert.Len(t, monthly.TopProducts, 2)
	assert.Equal(t, "Sate", monthly.TopProducts[0].Name)
	assert.Equal(t, 50000, monthly.TopProducts[0].Revenue)
	assert.Equal(t, "Bebek Goreng", monthly.TopProducts[1].Name)
	assert.Equal(t, 30000, monthly.TopProducts[1].Revenue)
	assert.Equal(t, 3, monthly.TopProducts[1].Quantity)

	// Subset endpoints agree with the full report
	resp = doRequest(t, app, http.MethodGet, "/api/v1/reports/monthly/weekly-revenue?year=2025&month=5", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var weekly [4]int
	decodeBody(t, resp, &weekly)
	assert.Equal(t, monthly.WeeklyRevenue, weekly)

	// Invalid month parameter
	resp = doRequest(t, app, http.MethodGet, "/api/v1/reports/monthly?year=2025&month=13", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
