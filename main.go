package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/cravely/tableside/config"
	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/realtime"
	"github.com/cravely/tableside/router"
	"github.com/cravely/tableside/services"
	"github.com/cravely/tableside/utils"
)

func main() {
	// .env is optional in containerized deployments.
	_ = godotenv.Load()

	utils.InitLogger()

	cfg := config.Load()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
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
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	feed := services.NewOrderFeed(db)
	hub := realtime.NewHub(feed)

	sweeper := services.NewRequestSweeper(db, hub, cfg.SweepInterval, cfg.RequestTTL)
	sweeper.Start()
	defer sweeper.Stop()

	r := router.SetupRouter(db, hub, cfg)

	utils.InfoLogger.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("Failed to start server: %v", err)
	}
}
