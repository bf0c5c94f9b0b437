package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

type optionGroupReq struct {
	Name    string `json:"name" binding:"required"`
	Choices []struct {
		Name       string  `json:"name" binding:"required"`
		PriceDelta float64 `json:"price_delta"`
	} `json:"choices"`
}

// CreateMenuItem -> staff adds an item, optionally with option groups.
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var body struct {
		RestaurantID uint             `json:"restaurant_id" binding:"required"`
		Name         string           `json:"name" binding:"required"`
		Description  string           `json:"description"`
		Category     string           `json:"category"`
		Price        float64          `json:"price" binding:"required"`
		ImageUrl     *string          `json:"image_url"`
		Available    *bool            `json:"available"`
		Vegetarian   bool             `json:"vegetarian"`
		Vegan        bool             `json:"vegan"`
		GlutenFree   bool             `json:"gluten_free"`
		OptionGroups []optionGroupReq `json:"option_groups"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		RestaurantID: body.RestaurantID,
		Name:         body.Name,
		Description:  body.Description,
		Category:     body.Category,
		Price:        body.Price,
		ImageUrl:     body.ImageUrl,
		Available:    true,
		Vegetarian:   body.Vegetarian,
		Vegan:        body.Vegan,
		GlutenFree:   body.GlutenFree,
	}
	if body.Available != nil {
		item.Available = *body.Available
	}
	for _, g := range body.OptionGroups {
		group := models.MenuOptionGroup{Name: g.Name}
		for _, ch := range g.Choices {
			group.Choices = append(group.Choices, models.MenuOptionChoice{
				Name:       ch.Name,
				PriceDelta: ch.PriceDelta,
			})
		}
		item.OptionGroups = append(item.OptionGroups, group)
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item %q created (restaurant=%d, price=%.2f)", item.Name, item.RestaurantID, item.Price)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// GetAllMenuItems -> list for a restaurant. available=true narrows to what
// guests can order.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	restaurantID := c.Query("restaurant_id")
	if restaurantID == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("restaurant_id is required"))
		return
	}

	q := mc.DB.Preload("OptionGroups.Choices").
		Where("restaurant_id = ?", restaurantID).
		Order("category asc, name asc")
	if c.Query("available") == "true" {
		q = q.Where("available = ?", true)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.Preload("OptionGroups.Choices").
		First(&item, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// UpdateMenuItem -> staff edits fields; availability toggling is the common
// case during service.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	var body struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		ImageUrl    *string  `json:"image_url"`
		Available   *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Description != nil {
		item.Description = *body.Description
	}
	if body.Category != nil {
		item.Category = *body.Category
	}
	if body.Price != nil {
		item.Price = *body.Price
	}
	if body.ImageUrl != nil {
		item.ImageUrl = body.ImageUrl
	}
	if body.Available != nil {
		item.Available = *body.Available
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Select("OptionGroups").Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_id": item.ID})
}
