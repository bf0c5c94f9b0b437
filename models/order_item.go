package models

import (
	"encoding/json"
	"time"
)

type OrderItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	// MenuItemID references the catalog; Name and Price are snapshots taken
	// at order time so later menu edits do not rewrite history.
	MenuItemID          uint      `gorm:"not null" json:"menu_item_id"`
	MenuItem            MenuItem  `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name                string    `gorm:"type:varchar(255);not null" json:"name"`
	Price               float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity            int       `gorm:"not null" json:"quantity"`
	OptionsJSON         string    `gorm:"column:options;type:text" json:"-"`
	SpecialInstructions string    `gorm:"type:text" json:"special_instructions,omitempty"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}

// SetOptions stores the chosen option-group -> choice mapping as JSON text.
func (oi *OrderItem) SetOptions(opts map[string]string) error {
	if len(opts) == 0 {
		oi.OptionsJSON = "{}"
		return nil
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	oi.OptionsJSON = string(raw)
	return nil
}

func (oi *OrderItem) Options() map[string]string {
	opts := map[string]string{}
	if oi.OptionsJSON == "" {
		return opts
	}
	_ = json.Unmarshal([]byte(oi.OptionsJSON), &opts)
	return opts
}

// MarshalJSON exposes options as a map instead of the raw text column.
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type alias OrderItem
	return json.Marshal(struct {
		alias
		Options map[string]string `json:"options"`
	}{alias(oi), oi.Options()})
}
