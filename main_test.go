package main

import (
	"testing"
	"time"

	"sako/internal/report"
	"sako/internal/repositories"
	"sako/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestSeedDemoData(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	saleRepo := repositories.NewMockSaleRepository()
	saleService := services.NewSaleService(saleRepo, productRepo, nil)

	seedDemoData(productRepo, saleService, time.UTC)

	products, err := productRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 10)

	sales, err := saleRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, sales, 4)

	// One seeded sale lands in each weekly band of May 2025.
	may := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	weekly := report.RevenuePerWeek(sales, may, time.UTC)
	for i, revenue := range weekly {
		assert.Positive(t, revenue, "weekly band %d should have revenue", i)
	}
}

func TestSeedDemoData_Idempotent(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	saleRepo := repositories.NewMockSaleRepository()
	saleService := services.NewSaleService(saleRepo, productRepo, nil)

	seedDemoData(productRepo, saleService, time.UTC)
	seedDemoData(productRepo, saleService, time.UTC)

	products, err := productRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 10)

	sales, err := saleRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, sales, 4)
}

func TestOpenDatabase_SQLiteInMemory(t *testing.T) {
	db, err := openDatabase("sqlite", "file::memory:")
	assert.NoError(t, err)
	assert.NotNil(t, db)
}
