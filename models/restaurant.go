package models

import "time"

type Restaurant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Logo           *string   `gorm:"type:varchar(255)" json:"logo,omitempty"`
	PrimaryColor   *string   `gorm:"type:varchar(20)" json:"primary_color,omitempty"`
	SecondaryColor *string   `gorm:"type:varchar(20)" json:"secondary_color,omitempty"`
	// Optional endpoint that receives push payloads for new orders/requests.
	PushWebhookURL *string   `gorm:"type:varchar(255)" json:"push_webhook_url,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
