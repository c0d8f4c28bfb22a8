package models

import "time"

// BusinessHours - kullanıcı başına bir kayıt, günler serbest metin ("08:00-17:00" vb.)
type BusinessHours struct {
	ID      uint `gorm:"primaryKey"`
	OwnerID uint `gorm:"uniqueIndex;not null"`

	Monday    string `gorm:"size:100"`
	Tuesday   string `gorm:"size:100"`
	Wednesday string `gorm:"size:100"`
	Thursday  string `gorm:"size:100"`
	Friday    string `gorm:"size:100"`
	Saturday  string `gorm:"size:100"`
	Sunday    string `gorm:"size:100"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
