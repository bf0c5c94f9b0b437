package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/realtime"
	"github.com/cravely/tableside/services"
	"github.com/cravely/tableside/utils"
)

// RequestController handles the order-shaped side channels: bill requests
// and call-server requests. Creation is guest-facing; staff resolve them.
type RequestController struct {
	DB     *gorm.DB
	Hub    *realtime.Hub
	Pusher *services.Pusher
}

func NewRequestController(db *gorm.DB, hub *realtime.Hub, pusher *services.Pusher) *RequestController {
	return &RequestController{DB: db, Hub: hub, Pusher: pusher}
}

type requestBody struct {
	RestaurantID uint `json:"restaurant_id" binding:"required"`
	TableID      uint `json:"table_id" binding:"required"`
}

func (rc *RequestController) resolveTable(c *gin.Context, body requestBody) (*models.Table, bool) {
	var table models.Table
	if err := rc.DB.First(&table, body.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return nil, false
	}
	if table.RestaurantID != body.RestaurantID {
		utils.RespondError(c, http.StatusBadRequest, ErrTableMismatch)
		return nil, false
	}
	return &table, true
}

// CreateBillRequest -> guest asks for the bill.
func (rc *RequestController) CreateBillRequest(c *gin.Context) {
	var body requestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	table, ok := rc.resolveTable(c, body)
	if !ok {
		return
	}

	req := models.BillRequest{
		RestaurantID: body.RestaurantID,
		TableID:      body.TableID,
		Status:       models.RequestPending,
	}
	if err := rc.DB.Create(&req).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.Hub.Publish(realtime.BillRequested(req))
	rc.Pusher.Notify(req.RestaurantID, services.PushNotification{
		Title: "Bill requested",
		Body:  fmt.Sprintf("%s wants to pay", table.Label),
		URL:   "/requests",
	})

	utils.InfoLogger.Printf("Bill request #%d from table %q", req.ID, table.Label)
	utils.RespondJSON(c, http.StatusCreated, "Bill request created", req)
}

// CreateAssistanceRequest -> guest calls a server to the table.
func (rc *RequestController) CreateAssistanceRequest(c *gin.Context) {
	var body requestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	table, ok := rc.resolveTable(c, body)
	if !ok {
		return
	}

	req := models.AssistanceRequest{
		RestaurantID: body.RestaurantID,
		TableID:      body.TableID,
		Status:       models.RequestPending,
	}
	if err := rc.DB.Create(&req).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.Hub.Publish(realtime.AssistanceRequested(req))
	rc.Pusher.Notify(req.RestaurantID, services.PushNotification{
		Title: "Assistance requested",
		Body:  fmt.Sprintf("%s is calling a server", table.Label),
		URL:   "/requests",
	})

	utils.InfoLogger.Printf("Assistance request #%d from table %q", req.ID, table.Label)
	utils.RespondJSON(c, http.StatusCreated, "Assistance request created", req)
}

// GetRequests -> staff view, both queues side by side.
func (rc *RequestController) GetRequests(c *gin.Context) {
	restaurantID := c.Query("restaurant_id")
	if restaurantID == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("restaurant_id is required"))
		return
	}

	q := func(db *gorm.DB) *gorm.DB {
		out := db.Preload("Table").Where("restaurant_id = ?", restaurantID).Order("created_at desc")
		if status := c.Query("status"); status != "" {
			out = out.Where("status = ?", status)
		}
		return out
	}

	var bills []models.BillRequest
	if err := q(rc.DB).Find(&bills).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	var calls []models.AssistanceRequest
	if err := q(rc.DB).Find(&calls).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Open requests", gin.H{
		"bill":       bills,
		"assistance": calls,
	})
}

// ResolveRequest -> staff acknowledges a request. kind is "bill" or
// "assistance".
func (rc *RequestController) ResolveRequest(c *gin.Context) {
	kind := c.Param("kind")
	id := c.Param("request_id")

	switch kind {
	case "bill":
		var req models.BillRequest
		if err := rc.DB.First(&req, id).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		req.Status = models.RequestResolved
		if err := rc.DB.Save(&req).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		rc.Hub.Publish(realtime.RequestUpdated("bill", req.RestaurantID, req.TableID, req))
		utils.RespondJSON(c, http.StatusOK, "Request resolved", req)
	case "assistance":
		var req models.AssistanceRequest
		if err := rc.DB.First(&req, id).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		req.Status = models.RequestResolved
		if err := rc.DB.Save(&req).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		rc.Hub.Publish(realtime.RequestUpdated("assistance", req.RestaurantID, req.TableID, req))
		utils.RespondJSON(c, http.StatusOK, "Request resolved", req)
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown request kind %q", kind))
	}
}
