package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> counts feeding the staff dashboard.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	restaurantID := c.Query("restaurant_id")
	if restaurantID == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("restaurant_id is required"))
		return
	}

	orderCounts := map[string]int64{}
	for _, status := range []models.OrderStatus{
		models.OrderPending, models.OrderPreparing, models.OrderReady,
		models.OrderServed, models.OrderCancelled,
	} {
		var n int64
		ac.DB.Model(&models.Order{}).
			Where("restaurant_id = ? AND status = ?", restaurantID, status).
			Count(&n)
		orderCounts[string(status)] = n
	}

	tableCounts := map[string]int64{}
	for _, status := range []string{
		models.TableAvailable, models.TableOccupied,
		models.TableReserved, models.TableMaintenance,
	} {
		var n int64
		ac.DB.Model(&models.Table{}).
			Where("restaurant_id = ? AND status = ?", restaurantID, status).
			Count(&n)
		tableCounts[status] = n
	}

	var pendingBills, pendingCalls int64
	ac.DB.Model(&models.BillRequest{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, models.RequestPending).
		Count(&pendingBills)
	ac.DB.Model(&models.AssistanceRequest{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, models.RequestPending).
		Count(&pendingCalls)

	// Revenue counts served orders only, from local midnight.
	midnight := time.Now().Truncate(24 * time.Hour)
	var revenue float64
	ac.DB.Model(&models.Order{}).
		Where("restaurant_id = ? AND status = ? AND updated_at >= ?",
			restaurantID, models.OrderServed, midnight).
		Select("COALESCE(SUM(total), 0)").
		Row().Scan(&revenue)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"orders": orderCounts,
		"tables": tableCounts,
		"requests": gin.H{
			"bill":       pendingBills,
			"assistance": pendingCalls,
		},
		"revenue_today": revenue,
	})
}
