package services

import (
	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/realtime"
)

// OrderFeed backs hub subscriptions with their initial snapshot and computes
// the pending-count badge.
type OrderFeed struct {
	DB *gorm.DB
}

func NewOrderFeed(db *gorm.DB) *OrderFeed {
	return &OrderFeed{DB: db}
}

// Snapshot returns the current order set matching the filter, newest first.
func (f *OrderFeed) Snapshot(filter realtime.Filter) ([]models.Order, error) {
	q := f.DB.Preload("Items").
		Where("restaurant_id = ?", filter.RestaurantID).
		Order("created_at desc")
	if filter.TableID != 0 {
		q = q.Where("table_id = ?", filter.TableID)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (f *OrderFeed) PendingCount(restaurantID uint) (int64, error) {
	var count int64
	err := f.DB.Model(&models.Order{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, models.OrderPending).
		Count(&count).Error
	return count, err
}
