package models

import "time"

const (
	TableAvailable   = "available"
	TableOccupied    = "occupied"
	TableReserved    = "reserved"
	TableMaintenance = "maintenance"
)

type Table struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Label        string     `gorm:"type:varchar(50);not null" json:"label"`
	// Set to "" at creation, filled in once the QR image has been rendered.
	QRUrl     string    `gorm:"type:varchar(255)" json:"qr_url"`
	Status    string    `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	Capacity  int       `json:"capacity"`
	Area      string    `gorm:"type:varchar(100)" json:"area"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func ValidTableStatus(s string) bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableMaintenance:
		return true
	}
	return false
}
