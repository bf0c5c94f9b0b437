package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/realtime"
	"github.com/cravely/tableside/utils"
)

// RequestSweeper expires bill/assistance requests that stayed pending longer
// than the TTL. Mirrors the guest UI, which stops showing "requested" after
// two minutes; without the sweeper the staff queue would accumulate stale
// entries from guests who walked away.
type RequestSweeper struct {
	DB       *gorm.DB
	Hub      *realtime.Hub
	Interval time.Duration
	TTL      time.Duration
	stop     chan struct{}
}

func NewRequestSweeper(db *gorm.DB, hub *realtime.Hub, interval, ttl time.Duration) *RequestSweeper {
	return &RequestSweeper{
		DB:       db,
		Hub:      hub,
		Interval: interval,
		TTL:      ttl,
		stop:     make(chan struct{}),
	}
}

func (s *RequestSweeper) Start() {
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *RequestSweeper) Stop() {
	close(s.stop)
}

// Sweep runs one pass over both request tables.
func (s *RequestSweeper) Sweep() {
	cutoff := time.Now().Add(-s.TTL)

	var bills []models.BillRequest
	if err := s.DB.Where("status = ? AND created_at < ?", models.RequestPending, cutoff).
		Find(&bills).Error; err == nil {
		for _, r := range bills {
			r.Status = models.RequestExpired
			if err := s.DB.Save(&r).Error; err != nil {
				utils.ErrorLogger.Printf("sweeper: expiring bill request %d failed: %v", r.ID, err)
				continue
			}
			s.Hub.Publish(realtime.RequestUpdated("bill", r.RestaurantID, r.TableID, r))
		}
		if len(bills) > 0 {
			utils.InfoLogger.Printf("Expired %d stale bill request(s)", len(bills))
		}
	}

	var calls []models.AssistanceRequest
	if err := s.DB.Where("status = ? AND created_at < ?", models.RequestPending, cutoff).
		Find(&calls).Error; err == nil {
		for _, r := range calls {
			r.Status = models.RequestExpired
			if err := s.DB.Save(&r).Error; err != nil {
				utils.ErrorLogger.Printf("sweeper: expiring assistance request %d failed: %v", r.ID, err)
				continue
			}
			s.Hub.Publish(realtime.RequestUpdated("assistance", r.RestaurantID, r.TableID, r))
		}
		if len(calls) > 0 {
			utils.InfoLogger.Printf("Expired %d stale assistance request(s)", len(calls))
		}
	}
}
