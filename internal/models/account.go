package models

import "time"

type Account struct {
	ID      uint `gorm:"primaryKey"`
	OwnerID uint `gorm:"uniqueIndex;not null"`

	IsBlockingEnabled bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
