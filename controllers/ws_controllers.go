package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/cravely/tableside/realtime"
	"github.com/cravely/tableside/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSController struct {
	Hub *realtime.Hub
}

func NewWSController(hub *realtime.Hub) *WSController {
	return &WSController{Hub: hub}
}

// StaffWS -> authenticated staff stream for their restaurant. ?stats=true
// narrows the stream to the pending-count badge.
func (wc *WSController) StaffWS(c *gin.Context) {
	restaurantIDInterface, exists := c.Get("restaurant_id")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	restaurantID, ok := restaurantIDInterface.(uint)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	filter := realtime.Filter{
		RestaurantID: restaurantID,
		StatsOnly:    c.Query("stats") == "true",
	}
	wc.serve(c, filter)
}

// GuestWS -> unauthenticated stream scoped to one table, so guests see their
// own order move through the kitchen.
func (wc *WSController) GuestWS(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	tableID, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	wc.serve(c, realtime.Filter{
		RestaurantID: uint(restaurantID),
		TableID:      uint(tableID),
	})
}

// serve upgrades the connection, replays the snapshot, then pumps the change
// stream until either side goes away.
func (wc *WSController) serve(c *gin.Context, filter realtime.Filter) {
	sub, err := wc.Hub.Subscribe(filter)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.Close()
		return
	}

	snapshot := realtime.Event{
		Type:         realtime.EventSnapshot,
		RestaurantID: filter.RestaurantID,
		TableID:      filter.TableID,
		Data:         sub.Snapshot,
	}
	if err := conn.WriteJSON(snapshot); err != nil {
		sub.Close()
		conn.Close()
		return
	}

	// Reader only detects disconnect; clients do not send anything.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	for evt := range sub.Events() {
		if err := conn.WriteJSON(evt); err != nil {
			break
		}
	}

	sub.Close()
	conn.Close()
}
