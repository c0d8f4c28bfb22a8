package models

import "time"

// CompanyDetails - onboarding sırasında toplanan ek şirket bilgileri
type CompanyDetails struct {
	ID      uint `gorm:"primaryKey"`
	OwnerID uint `gorm:"uniqueIndex;not null"`

	CompanyID *uint
	Company   *Company

	TeamSize               string `gorm:"size:50"`
	EstimatedAnnualRevenue string `gorm:"size:50"`
	TopPriority            string `gorm:"size:100"`
	Industry               string `gorm:"size:100"`
	HeardAboutUs           string `gorm:"size:100"`

	DisplayBusinessHours bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
