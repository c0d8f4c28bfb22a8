package models

import "time"

type PositionType string

const (
	PositionCompanyOwner  PositionType = "COMPANY_OWNER"
	PositionAdmin         PositionType = "ADMIN"
	PositionManager       PositionType = "MANAGER"
	PositionDispatcher    PositionType = "DISPATCHER"
	PositionWorker        PositionType = "WORKER"
	PositionLimitedWorker PositionType = "LIMITED_WORKER"
	PositionCustom        PositionType = "CUSTOM"
)

// UserPosition - kullanıcının şirketteki rolü. User.PositionID üzerinden bağlanır.
type UserPosition struct {
	ID   uint         `gorm:"primaryKey"`
	Name PositionType `gorm:"size:30;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Permission - pozisyon başına tek yetki kaydı. Rol bilgisi pozisyondan,
// sahiplik bilgisi Company.OwnerID'den çözülür; burada tutulmaz.
type Permission struct {
	ID             uint `gorm:"primaryKey"`
	UserPositionID uint `gorm:"uniqueIndex;not null"`

	IsAdmin bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
