package database

import (
	"portal-backend/internal/config"
	"portal-backend/internal/logs"
	"portal-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logs.Logger.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		logs.Logger.Fatalf("AutoMigrate hatası: %v", err)
	}

	logs.Logger.Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate tüm modelleri migrate eder. Testlerde sqlite üzerinde de kullanılır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Company{},
		&models.CompanyDetails{},
		&models.BusinessHours{},
		&models.Communication{},
		&models.PaymentType{},
		&models.UserPosition{},
		&models.Permission{},
		&models.VerificationToken{},
		&models.Resource{},
		&models.Order{},
		&models.OrderCompany{},
		&models.OrderResource{},
	)
}
