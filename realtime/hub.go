// Package realtime fans order, request and table events out to subscribed
// clients with snapshot-then-diff semantics: a new subscription first gets
// the current matching set, then an incremental change per write.
package realtime

import (
	"sync"
	"time"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/utils"
)

// Filter scopes a subscription. RestaurantID is mandatory (tenancy key).
// TableID narrows to one table (guest watching its own orders); zero means
// all tables. StatsOnly subscriptions receive only order_stats events, which
// backs the pending-count badge.
type Filter struct {
	RestaurantID uint
	TableID      uint
	StatsOnly    bool
}

// SnapshotSource provides the current result set delivered on subscribe.
type SnapshotSource interface {
	Snapshot(f Filter) ([]models.Order, error)
}

type Subscription struct {
	// Snapshot is the matching set at subscribe time.
	Snapshot []models.Order

	filter  Filter
	ch      chan Event
	cutover time.Time
	hub     *Hub
	once    sync.Once
}

// Events is the change stream. Closed when the subscription is cancelled.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close tears the subscription down. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	source SnapshotSource
}

// NewHub builds a hub. source may be nil, in which case snapshots are empty
// (useful for tests and stats-only consumers).
func NewHub(source SnapshotSource) *Hub {
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		source: source,
	}
}

// Subscribe records the cutover timestamp, fetches the initial snapshot and
// registers the change stream. Each subscriber is independent; the same event
// is delivered to every matching subscription.
func (h *Hub) Subscribe(f Filter) (*Subscription, error) {
	sub := &Subscription{
		filter:  f,
		ch:      make(chan Event, 32),
		cutover: time.Now(),
		hub:     h,
	}

	if h.source != nil && !f.StatsOnly {
		snap, err := h.source.Snapshot(f)
		if err != nil {
			return nil, err
		}
		sub.Snapshot = snap
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub, nil
}

// Publish delivers evt to every matching subscription. Delivery is
// non-blocking: a subscriber that has fallen 32 events behind loses the event
// and is expected to resync from a fresh snapshot on reconnect.
func (h *Hub) Publish(evt Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if !sub.matches(evt) {
			continue
		}

		out := evt
		out.Alert = evt.Type == EventOrderCreated && evt.OccurredAt.After(sub.cutover)

		select {
		case sub.ch <- out:
		default:
			utils.ErrorLogger.Printf("realtime: dropping %s event for slow subscriber (restaurant=%d)",
				evt.Type, sub.filter.RestaurantID)
		}
	}
}

// SubscriberCount is used by tests and the dashboard.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

func (s *Subscription) matches(evt Event) bool {
	if evt.RestaurantID != s.filter.RestaurantID {
		return false
	}
	if s.filter.StatsOnly {
		return evt.Type == EventOrderStats
	}
	if s.filter.TableID != 0 && evt.TableID != s.filter.TableID {
		return false
	}
	return true
}
