package models

import "time"

type MenuItem struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	RestaurantID uint              `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant        `gorm:"foreignKey:RestaurantID" json:"-"`
	Name         string            `gorm:"type:varchar(255);not null" json:"name"`
	Description  string            `gorm:"type:text" json:"description"`
	Category     string            `gorm:"type:varchar(100);index" json:"category"`
	Price        float64           `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageUrl     *string           `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Available    bool              `gorm:"not null;default:true" json:"available"`
	Vegetarian   bool              `gorm:"not null;default:false" json:"vegetarian"`
	Vegan        bool              `gorm:"not null;default:false" json:"vegan"`
	GlutenFree   bool              `gorm:"not null;default:false" json:"gluten_free"`
	OptionGroups []MenuOptionGroup `gorm:"foreignKey:MenuItemID" json:"option_groups"`
	CreatedAt    time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updated_at"`
}

// MenuOptionGroup is a named choice set on a menu item, e.g. "Cheese".
type MenuOptionGroup struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	MenuItemID uint               `gorm:"not null;index" json:"menu_item_id"`
	Name       string             `gorm:"type:varchar(100);not null" json:"name"`
	Choices    []MenuOptionChoice `gorm:"foreignKey:GroupID" json:"choices"`
}

// MenuOptionChoice carries the price delta added to the base price when chosen.
type MenuOptionChoice struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	GroupID    uint    `gorm:"not null;index" json:"group_id"`
	Name       string  `gorm:"type:varchar(100);not null" json:"name"`
	PriceDelta float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"price_delta"`
}
