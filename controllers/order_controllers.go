package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/realtime"
	"github.com/cravely/tableside/services"
	"github.com/cravely/tableside/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Hub    *realtime.Hub
	Feed   *services.OrderFeed
	Pusher *services.Pusher
}

func NewOrderController(db *gorm.DB, hub *realtime.Hub, pusher *services.Pusher) *OrderController {
	return &OrderController{
		DB:     db,
		Hub:    hub,
		Feed:   services.NewOrderFeed(db),
		Pusher: pusher,
	}
}

// CreateOrder -> guest checkout. The client sends item references and
// quantities; the total is recomputed from the catalog and the client's
// echoed total is only compared for logging.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body struct {
		RestaurantID uint                   `json:"restaurant_id" binding:"required"`
		TableID      uint                   `json:"table_id" binding:"required"`
		SessionKey   *string                `json:"session_key"`
		Items        []services.LineRequest `json:"items"`
		ClientTotal  *float64               `json:"total"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if len(body.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrEmptyOrder)
		return
	}

	var table models.Table
	if err := oc.DB.First(&table, body.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if table.RestaurantID != body.RestaurantID {
		utils.RespondError(c, http.StatusBadRequest, ErrTableMismatch)
		return
	}

	items, total, err := services.PriceOrder(oc.DB, body.RestaurantID, body.Items)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.ClientTotal != nil && math.Abs(*body.ClientTotal-total) >= 0.005 {
		utils.InfoLogger.Printf("Order total mismatch: client sent %.2f, catalog says %.2f (table=%d)",
			*body.ClientTotal, total, table.ID)
	}

	order := models.Order{
		RestaurantID: body.RestaurantID,
		TableID:      body.TableID,
		SessionKey:   body.SessionKey,
		Status:       models.OrderPending,
		Total:        total,
		Items:        items,
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.Publish(realtime.OrderCreated(order))
	oc.publishStats(order.RestaurantID)
	oc.Pusher.Notify(order.RestaurantID, services.PushNotification{
		Title: "New Order!",
		Body:  fmt.Sprintf("%s placed an order (%.2f)", table.Label, order.Total),
		URL:   fmt.Sprintf("/orders/%d", order.ID),
	})

	utils.InfoLogger.Printf("Order #%d created for restaurant %d table %q (total=%.2f)",
		order.ID, order.RestaurantID, table.Label, order.Total)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrderStatus -> staff transitions the lifecycle. The transition table
// is checked against the freshly read row inside one transaction, so two
// racing staff clients cannot fabricate an illegal step; whichever legal
// write lands last wins.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	next, err := models.ParseOrderStatus(body.Status)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	txErr := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			return err
		}
		if order.Status == next {
			return ErrSameStatus
		}
		if !order.Status.CanTransition(next) {
			return &models.InvalidTransitionError{From: order.Status, To: next}
		}

		order.Status = next
		order.UpdatedAt = time.Now()
		return tx.Save(&order).Error
	})

	if txErr != nil {
		var invalid *models.InvalidTransitionError
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			utils.RespondError(c, http.StatusNotFound, txErr)
		case errors.As(txErr, &invalid), errors.Is(txErr, ErrSameStatus):
			utils.RespondError(c, http.StatusUnprocessableEntity, txErr)
		default:
			utils.RespondError(c, http.StatusInternalServerError, txErr)
		}
		return
	}

	oc.Hub.Publish(realtime.OrderUpdated(order))
	oc.publishStats(order.RestaurantID)

	utils.InfoLogger.Printf("Order #%d moved to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// GetAllOrders -> staff list, scoped to a restaurant, newest first.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	restaurantID := c.Query("restaurant_id")
	if restaurantID == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("restaurant_id is required"))
		return
	}

	q := oc.DB.Preload("Items").Preload("Table").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> public, guests poll their own order with this.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Table").
		First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// DeleteOrder -> admin housekeeping only.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	if role, _ := c.Get("role"); role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := oc.DB.Select("Items").Delete(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.publishStats(order.RestaurantID)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}

func (oc *OrderController) publishStats(restaurantID uint) {
	pending, err := oc.Feed.PendingCount(restaurantID)
	if err != nil {
		utils.ErrorLogger.Printf("pending count for restaurant %d failed: %v", restaurantID, err)
		return
	}
	oc.Hub.Publish(realtime.StatsChanged(restaurantID, pending))
}
