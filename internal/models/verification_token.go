package models

import "time"

// VerificationToken - davet edilen kullanıcının şifresini belirlemesi için
// tek kullanımlık token. Süresi dolan token geçersiz sayılır.
type VerificationToken struct {
	ID     uint   `gorm:"primaryKey"`
	Token  string `gorm:"size:64;uniqueIndex;not null"`
	UserID uint   `gorm:"index;not null"`

	ExpiresAt time.Time `gorm:"not null"`

	CreatedAt time.Time
}
