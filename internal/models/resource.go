package models

import (
	"time"

	"gorm.io/datatypes"
)

type ResourceType string

const (
	ResourceTruck     ResourceType = "TRUCK"
	ResourceCar       ResourceType = "CAR"
	ResourceVan       ResourceType = "VAN"
	ResourceEquipment ResourceType = "EQUIPMENT"
)

// Resource - şirkete ait varlık (araç, ekipman vb.). Tipe göre değişen alanlar
// additional_properties JSON kolonunda tutulur.
type Resource struct {
	ID   uint         `gorm:"primaryKey"`
	Name string       `gorm:"size:150;not null"`
	Type ResourceType `gorm:"size:20;not null"`

	UserID    *uint
	CompanyID uint `gorm:"index;not null"`

	AdditionalProperties datatypes.JSON

	CreatedAt time.Time
	UpdatedAt time.Time
}
