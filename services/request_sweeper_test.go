package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/realtime"
	"github.com/cravely/tableside/utils"
)

func setupSweeperDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.BillRequest{}, &models.AssistanceRequest{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestSweepExpiresOnlyStalePending(t *testing.T) {
	db := setupSweeperDB(t)
	hub := realtime.NewHub(nil)

	stale := time.Now().Add(-5 * time.Minute)
	db.Create(&models.BillRequest{RestaurantID: 1, TableID: 1, Status: models.RequestPending, CreatedAt: stale})
	db.Create(&models.BillRequest{RestaurantID: 1, TableID: 2, Status: models.RequestPending, CreatedAt: time.Now()})
	db.Create(&models.BillRequest{RestaurantID: 1, TableID: 3, Status: models.RequestResolved, CreatedAt: stale})
	db.Create(&models.AssistanceRequest{RestaurantID: 1, TableID: 1, Status: models.RequestPending, CreatedAt: stale})

	sub, _ := hub.Subscribe(realtime.Filter{RestaurantID: 1})
	defer sub.Close()

	s := NewRequestSweeper(db, hub, time.Minute, 2*time.Minute)
	s.Sweep()

	var bill models.BillRequest
	db.First(&bill, 1)
	assert.Equal(t, models.RequestExpired, bill.Status)

	// Reset between lookups so the previous primary key does not leak into
	// the next query's conditions.
	bill = models.BillRequest{}
	db.First(&bill, 2)
	assert.Equal(t, models.RequestPending, bill.Status, "fresh request untouched")

	bill = models.BillRequest{}
	db.First(&bill, 3)
	assert.Equal(t, models.RequestResolved, bill.Status, "resolved request untouched")

	var call models.AssistanceRequest
	db.First(&call, 1)
	assert.Equal(t, models.RequestExpired, call.Status)

	// One update event per expired request.
	assert.Equal(t, realtime.EventRequestUpdated, (<-sub.Events()).Type)
	assert.Equal(t, realtime.EventRequestUpdated, (<-sub.Events()).Type)
	select {
	case evt := <-sub.Events():
		t.Fatalf("unexpected extra event: %+v", evt)
	default:
	}
}
