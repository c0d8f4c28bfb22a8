package models

import "time"

type Company struct {
	ID uint `gorm:"primaryKey"`

	// Her kullanıcı en fazla bir şirketin sahibi olabilir
	OwnerID uint `gorm:"uniqueIndex;not null"`

	CompanyName  string `gorm:"size:150"`
	PhoneNumber  string `gorm:"size:50"`
	WebsiteURL   string `gorm:"size:255"`
	CompanyEmail string `gorm:"size:100"`

	Street1  string `gorm:"size:255"`
	Street2  string `gorm:"size:255"`
	City     string `gorm:"size:100"`
	State    string `gorm:"size:100"`
	PostCode string `gorm:"size:20"`
	Country  string `gorm:"size:100"`

	Timezone       string `gorm:"size:64"`
	DateFormat     string `gorm:"size:32"`
	TimeFormat     string `gorm:"size:32"`
	FirstDayOfWeek string `gorm:"size:16"`

	DisplayBusinessHours bool `gorm:"default:false"`

	CompanyDetailsID *uint

	Users []User

	CreatedAt time.Time
	UpdatedAt time.Time
}
