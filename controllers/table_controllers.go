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

type TableController struct {
	DB          *gorm.DB
	Hub         *realtime.Hub
	Provisioner *services.QRProvisioner
}

func NewTableController(db *gorm.DB, hub *realtime.Hub, provisioner *services.QRProvisioner) *TableController {
	return &TableController{DB: db, Hub: hub, Provisioner: provisioner}
}

// ProvisionTables -> batch-create tables with QR deep links. Best effort:
// the response reports which labels failed.
func (tc *TableController) ProvisionTables(c *gin.Context) {
	var body struct {
		RestaurantID uint     `json:"restaurant_id" binding:"required"`
		Labels       []string `json:"labels" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(body.Labels) == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("labels must not be empty"))
		return
	}

	result, err := tc.Provisioner.Provision(body.RestaurantID, body.Labels)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	for tableID := range result.Tables {
		var tbl models.Table
		if err := tc.DB.First(&tbl, tableID).Error; err == nil {
			tc.Hub.Publish(realtime.TableUpdated(tbl))
		}
	}

	utils.RespondJSON(c, http.StatusCreated, "Tables provisioned", result)
}

// CreateTable -> single table without QR (staff can provision later).
func (tc *TableController) CreateTable(c *gin.Context) {
	var body struct {
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		Label        string `json:"label" binding:"required"`
		Capacity     int    `json:"capacity"`
		Area         string `json:"area"`
		Notes        string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		RestaurantID: body.RestaurantID,
		Label:        body.Label,
		Status:       models.TableAvailable,
		Capacity:     body.Capacity,
		Area:         body.Area,
		Notes:        body.Notes,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Hub.Publish(realtime.TableUpdated(table))
	utils.InfoLogger.Printf("New table created: %s (restaurant=%d)", table.Label, table.RestaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	q := tc.DB.Order("label asc")
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		q = q.Where("restaurant_id = ?", restaurantID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var tables []models.Table
	if err := q.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> staff edits. Label and qr_url are set at creation and not
// editable here.
func (tc *TableController) UpdateTable(c *gin.Context) {
	var body struct {
		Status   *string `json:"status"`
		Capacity *int    `json:"capacity"`
		Area     *string `json:"area"`
		Notes    *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Status != nil {
		if !models.ValidTableStatus(*body.Status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown table status %q", *body.Status))
			return
		}
		table.Status = *body.Status
	}
	if body.Capacity != nil {
		table.Capacity = *body.Capacity
	}
	if body.Area != nil {
		table.Area = *body.Area
	}
	if body.Notes != nil {
		table.Notes = *body.Notes
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Hub.Publish(realtime.TableUpdated(table))
	utils.InfoLogger.Printf("Table %d updated (status=%s)", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}
