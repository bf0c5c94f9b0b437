package Controllers_test

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/utils"
)

var dbSeq int64

// openTestDB returns a fresh in-memory database. Every call gets its own
// shared-cache name so gorm's pooled connections all see the same data
// while tests stay isolated from each other.
func openTestDB(prefix string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s%d?mode=memory&cache=shared", prefix, atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.Table{},
		&models.MenuItem{},
		&models.MenuOptionGroup{},
		&models.MenuOptionChoice{},
		&models.Order{},
		&models.OrderItem{},
		&models.BillRequest{},
		&models.AssistanceRequest{},
		&models.GuestSession{},
		&models.User{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
