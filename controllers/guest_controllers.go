package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/utils"
)

// GuestController serves the QR deep link: resolving it loads everything the
// ordering page needs and binds the browser session to the table.
type GuestController struct {
	DB *gorm.DB
}

func NewGuestController(db *gorm.DB) *GuestController {
	return &GuestController{DB: db}
}

// ResolveDeepLink -> GET /r/:restaurant_id/t/:table_id. Returns restaurant,
// table, the available menu and a session key. An active session for the
// table is reused so a page reload does not mint a new one.
func (gc *GuestController) ResolveDeepLink(c *gin.Context) {
	var restaurant models.Restaurant
	if err := gc.DB.First(&restaurant, c.Param("restaurant_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var table models.Table
	if err := gc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if table.RestaurantID != restaurant.ID {
		utils.RespondError(c, http.StatusBadRequest, ErrTableMismatch)
		return
	}

	var menu []models.MenuItem
	if err := gc.DB.Preload("OptionGroups.Choices").
		Where("restaurant_id = ? AND available = ?", restaurant.ID, true).
		Order("category asc, name asc").
		Find(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var session models.GuestSession
	err := gc.DB.Where("table_id = ? AND status = ?", table.ID, "active").First(&session).Error
	if err == gorm.ErrRecordNotFound {
		session = models.GuestSession{
			RestaurantID: restaurant.ID,
			TableID:      table.ID,
			SessionKey:   uuid.NewString(),
			Status:       "active",
		}
		err = gc.DB.Create(&session).Error
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Deep link resolved: restaurant=%d table=%q session=%s",
		restaurant.ID, table.Label, session.SessionKey)
	utils.RespondJSON(c, http.StatusOK, "Table resolved", gin.H{
		"restaurant":  restaurant,
		"table":       table,
		"menu":        menu,
		"session_key": session.SessionKey,
	})
}

// EndSession -> staff closes a table's guest session after settling up.
func (gc *GuestController) EndSession(c *gin.Context) {
	var session models.GuestSession
	if err := gc.DB.Where("session_key = ?", c.Param("session_key")).
		First(&session).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	session.Status = "finished"
	if err := gc.DB.Save(&session).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session ended", session)
}
