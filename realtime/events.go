package realtime

import (
	"time"

	"github.com/cravely/tableside/models"
)

// Event types
const (
	EventSnapshot       = "snapshot"
	EventOrderCreated   = "order_created"
	EventOrderUpdated   = "order_updated"
	EventOrderStats     = "order_stats"
	EventRequestCreated = "request_created"
	EventRequestUpdated = "request_updated"
	EventTableUpdated   = "table_updated"
)

// Event is one frame on a subscription. Alert is set by the hub on delivery:
// it is true only for order creations that happened after the subscriber's
// cutover timestamp, so replaying pre-existing orders never rings the bell.
type Event struct {
	Type         string      `json:"event"`
	RestaurantID uint        `json:"restaurant_id"`
	TableID      uint        `json:"table_id,omitempty"`
	Alert        bool        `json:"alert,omitempty"`
	Data         interface{} `json:"data"`

	// OccurredAt is the server-side creation time of the underlying record,
	// compared against subscriber cutovers. Not part of the wire payload.
	OccurredAt time.Time `json:"-"`
}

// OrderStats feeds the staff pending-count badge.
type OrderStats struct {
	Pending int64 `json:"pending"`
}

func OrderCreated(o models.Order) Event {
	return Event{
		Type:         EventOrderCreated,
		RestaurantID: o.RestaurantID,
		TableID:      o.TableID,
		Data:         o,
		OccurredAt:   o.CreatedAt,
	}
}

func OrderUpdated(o models.Order) Event {
	return Event{
		Type:         EventOrderUpdated,
		RestaurantID: o.RestaurantID,
		TableID:      o.TableID,
		Data:         o,
		OccurredAt:   o.CreatedAt,
	}
}

func StatsChanged(restaurantID uint, pending int64) Event {
	return Event{
		Type:         EventOrderStats,
		RestaurantID: restaurantID,
		Data:         OrderStats{Pending: pending},
	}
}

func BillRequested(r models.BillRequest) Event {
	return Event{
		Type:         EventRequestCreated,
		RestaurantID: r.RestaurantID,
		TableID:      r.TableID,
		Data:         map[string]interface{}{"kind": "bill", "request": r},
		OccurredAt:   r.CreatedAt,
	}
}

func AssistanceRequested(r models.AssistanceRequest) Event {
	return Event{
		Type:         EventRequestCreated,
		RestaurantID: r.RestaurantID,
		TableID:      r.TableID,
		Data:         map[string]interface{}{"kind": "assistance", "request": r},
		OccurredAt:   r.CreatedAt,
	}
}

func RequestUpdated(kind string, restaurantID, tableID uint, data interface{}) Event {
	return Event{
		Type:         EventRequestUpdated,
		RestaurantID: restaurantID,
		TableID:      tableID,
		Data:         map[string]interface{}{"kind": kind, "request": data},
	}
}

func TableUpdated(tbl models.Table) Event {
	return Event{
		Type:         EventTableUpdated,
		RestaurantID: tbl.RestaurantID,
		TableID:      tbl.ID,
		Data:         tbl,
	}
}
