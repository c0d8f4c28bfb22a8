package models

import "time"

type CostUnit string

const (
	CostUnitPerHour  CostUnit = "PER_HOUR"
	CostUnitPerMonth CostUnit = "PER_MONTH"
)

// PaymentType - kullanıcı başına işçilik maliyeti kaydı
type PaymentType struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`

	LabourCost float64  `gorm:"type:decimal(12,2);default:0"`
	CostUnit   CostUnit `gorm:"size:20;not null;default:PER_HOUR"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
