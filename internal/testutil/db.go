package testutil

import (
	"testing"

	"portal-backend/internal/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB global veritabanı bağlantısını bellek içi sqlite ile değiştirir
// ve test bitiminde eski bağlantıyı geri koyar.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("sqlite açılamadı: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migration başarısız: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
	})

	return db
}
