package models

import "time"

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	RestaurantID uint        `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant  `gorm:"foreignKey:RestaurantID" json:"-"`
	TableID      uint        `gorm:"not null;index" json:"table_id"`
	Table        Table       `gorm:"foreignKey:TableID" json:"table"`
	SessionKey   *string     `gorm:"type:varchar(64);index" json:"session_key,omitempty"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	// Total is authoritative: recomputed from the catalog at creation,
	// never taken from the guest client.
	Total     float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}
