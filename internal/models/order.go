package models

import (
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderPlanned    OrderStatus = "PLANNED"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderDone       OrderStatus = "DONE"
	OrderCancelled  OrderStatus = "CANCELLED"
)

type Order struct {
	ID          uint        `gorm:"primaryKey"`
	Description string      `gorm:"size:500;not null"`
	Status      OrderStatus `gorm:"size:20;not null;default:PLANNED"`

	StartAt time.Time `gorm:"not null"`
	EndAt   time.Time `gorm:"not null"`

	Meta datatypes.JSON

	CompanyID *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderCompany - siparişe katılan şirket bağlantısı
type OrderCompany struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	CompanyID uint `gorm:"index;not null"`

	Role string `gorm:"size:50"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderResource - siparişe atanan kaynak bağlantısı
type OrderResource struct {
	ID         uint `gorm:"primaryKey"`
	OrderID    uint `gorm:"index;not null"`
	ResourceID uint `gorm:"index;not null"`

	UserID *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}
