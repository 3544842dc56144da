package service

import (
	"fmt"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/latia/admin-api/internal/infrastructure/database"
	"github.com/latia/admin-api/internal/infrastructure/watch"
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

func testHub() *watch.Hub {
	return watch.NewHub()
}

// noopReceiptStore satisfies storage.ReceiptStore for tests that never
// upload a file.
type noopReceiptStore struct{}

func (noopReceiptStore) Save(file *multipart.FileHeader) (string, string, error) {
	return "/uploads/" + file.Filename, file.Filename, nil
}

func (noopReceiptStore) Remove(url string) error { return nil }
