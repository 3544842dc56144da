package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	domainRepo "github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/internal/infrastructure/database"
	"github.com/latia/admin-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestDateRange(t *testing.T) {
	start, end := dateRange(2025, nil)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)

	// Months are zero-based: 0 is January
	january := 0
	start, end = dateRange(2025, &january)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls the end bound into the next year
	december := 11
	start, end = dateRange(2025, &december)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func seedSale(t *testing.T, db *gorm.DB, customer string, amount int64, date time.Time) {
	t.Helper()
	sale := &entity.Sale{
		InvoiceID:    uuid.New(),
		CustomerName: customer,
		Amount:       amount,
		Date:         date,
	}
	require.NoError(t, db.Create(sale).Error)
}

func TestSaleListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	seedSale(t, db, "Doña Mary", 10000, time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC))
	seedSale(t, db, "Don Pepe", 20000, time.Date(2025, time.February, 15, 12, 0, 0, 0, time.UTC))
	seedSale(t, db, "Doña Mary", 30000, time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC))

	// Year filter
	sales, total, err := repo.List(ctx, &domainRepo.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
		Year:       2025,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, sales, 2)

	// Year + zero-based month
	january := 0
	sales, total, err = repo.List(ctx, &domainRepo.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
		Year:       2025,
		Month:      &january,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(10000), sales[0].Amount)

	// Case-insensitive customer search
	sales, _, err = repo.List(ctx, &domainRepo.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     "doña",
	})
	require.NoError(t, err)
	assert.Len(t, sales, 2)
}

func TestSaleTotals(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	// Empty table sums to zero, not NULL
	total, err := repo.TotalAmount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	seedSale(t, db, "Doña Mary", 10000, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	seedSale(t, db, "Don Pepe", 5000, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))

	total, err = repo.TotalAmount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), total)

	since, err := repo.TotalAmountSince(ctx, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(5000), since)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
