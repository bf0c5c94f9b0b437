package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/cravely/tableside/cart"
	"github.com/cravely/tableside/models"
)

// LineRequest is what the guest client is trusted with: references and
// quantities only. Prices come from the catalog.
type LineRequest struct {
	MenuItemID          uint              `json:"menu_item_id" binding:"required"`
	Quantity            int               `json:"quantity"`
	Options             map[string]string `json:"options"`
	SpecialInstructions string            `json:"special_instructions"`
}

// PriceOrder resolves each requested line against the restaurant's catalog
// and returns priced order items plus the authoritative total. It rejects
// items that are missing, unavailable, foreign to the restaurant, or that
// name an option group/choice the item does not have. Line prices and the
// total are computed through the cart package so guest-side and server-side
// arithmetic cannot drift apart.
func PriceOrder(db *gorm.DB, restaurantID uint, lines []LineRequest) ([]models.OrderItem, float64, error) {
	if len(lines) == 0 {
		return nil, 0, fmt.Errorf("order must contain at least one item")
	}

	crt := cart.New()

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, 0, fmt.Errorf("quantity must be at least 1")
		}

		var menuItem models.MenuItem
		if err := db.Preload("OptionGroups.Choices").First(&menuItem, line.MenuItemID).Error; err != nil {
			return nil, 0, fmt.Errorf("menu item %d not found", line.MenuItemID)
		}
		if menuItem.RestaurantID != restaurantID {
			return nil, 0, fmt.Errorf("menu item %d does not belong to this restaurant", line.MenuItemID)
		}
		if !menuItem.Available {
			return nil, 0, fmt.Errorf("menu item %q is not available", menuItem.Name)
		}

		opts := make([]cart.Option, 0, len(line.Options))
		for group, choice := range line.Options {
			delta, err := optionDelta(menuItem, group, choice)
			if err != nil {
				return nil, 0, err
			}
			opts = append(opts, cart.Option{Group: group, Choice: choice, PriceDelta: delta})
		}

		crt.AddItem(menuItem.ID, menuItem.Name, menuItem.Price, opts, line.Quantity, line.SpecialInstructions)
	}

	items := make([]models.OrderItem, 0, crt.Len())
	for _, l := range crt.Lines() {
		item := models.OrderItem{
			MenuItemID:          l.MenuItemID,
			Name:                l.Name,
			Price:               l.Price,
			Quantity:            l.Quantity,
			SpecialInstructions: l.SpecialInstructions,
		}
		if err := item.SetOptions(l.Options); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	return items, crt.Total(), nil
}

func optionDelta(item models.MenuItem, group, choice string) (float64, error) {
	for _, g := range item.OptionGroups {
		if g.Name != group {
			continue
		}
		for _, c := range g.Choices {
			if c.Name == choice {
				return c.PriceDelta, nil
			}
		}
		return 0, fmt.Errorf("menu item %q has no choice %q in option %q", item.Name, choice, group)
	}
	return 0, fmt.Errorf("menu item %q has no option %q", item.Name, group)
}

// RoundCents keeps float money honest at computation boundaries.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
