package models

import "time"

type User struct {
	ID    uint   `gorm:"primaryKey"`
	Email string `gorm:"size:100;uniqueIndex;not null"`

	// Şifre hash'i ve salt ayrı tutulur (davetli kullanıcılarda ikisi de boş)
	Hash string `gorm:"size:255;not null"`
	Salt string `gorm:"size:64;not null"`

	FirstName     string `gorm:"size:100"`
	LastName      string `gorm:"size:100"`
	StreetAddress string `gorm:"size:255"`
	City          string `gorm:"size:100"`
	Province      string `gorm:"size:100"`
	PostalCode    string `gorm:"size:20"`
	Country       string `gorm:"size:100"`
	PhoneNumber   string `gorm:"size:50"`

	LastLogin *time.Time

	// Üyelik: kullanıcının bağlı olduğu şirket (sahiplik Company.OwnerID üzerinden)
	CompanyID *uint
	Company   *Company

	PositionID *uint
	Position   *UserPosition

	CreatedAt time.Time
	UpdatedAt time.Time
}
