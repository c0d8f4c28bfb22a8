package models

import "time"

// Communication - kullanıcı başına bildirim tercihleri
type Communication struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`

	Surveys       bool `gorm:"default:false"`
	ErrorMessages bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
