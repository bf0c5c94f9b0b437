package models

import "time"

// GuestSession binds an unauthenticated browser session to a table after a
// QR scan. The key is handed back by the deep-link resolver and echoed on
// order creation.
type GuestSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	TableID      uint      `gorm:"not null;index" json:"table_id"`
	Table        Table     `gorm:"foreignKey:TableID" json:"-"`
	SessionKey   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_key"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
