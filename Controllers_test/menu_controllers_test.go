package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/cravely/tableside/controllers"
	"github.com/cravely/tableside/models"
)

func setupTestDBForMenus() *gorm.DB {
	db := openTestDB("menus")
	db.Create(&models.Restaurant{Name: "Test Bistro"})
	return db
}

func setupMenuRouter(db *gorm.DB) *gin.Engine {
	router := gin.Default()
	menuCtrl := controllers.NewMenuController(db)
	router.POST("/menus", menuCtrl.CreateMenuItem)
	router.GET("/menus", menuCtrl.GetAllMenuItems)
	router.GET("/menus/:menu_id", menuCtrl.GetMenuItemByID)
	router.PATCH("/menus/:menu_id", menuCtrl.UpdateMenuItem)
	router.DELETE("/menus/:menu_id", menuCtrl.DeleteMenuItem)
	return router
}

func TestCreateMenuItemWithOptions(t *testing.T) {
	db := setupTestDBForMenus()
	router := setupMenuRouter(db)

	payloadBytes, _ := json.Marshal(map[string]interface{}{
		"restaurant_id": 1,
		"name":          "Burger",
		"category":      "mains",
		"price":         10.99,
		"option_groups": []map[string]interface{}{
			{
				"name": "Cheese",
				"choices": []map[string]interface{}{
					{"name": "Cheddar"},
					{"name": "Blue Cheese", "price_delta": 1.50},
				},
			},
		},
	})
	req, _ := http.NewRequest("POST", "/menus", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.MenuItem `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Available)
	assert.Len(t, resp.Data.OptionGroups, 1)
	assert.Len(t, resp.Data.OptionGroups[0].Choices, 2)
	assert.Equal(t, 1.50, resp.Data.OptionGroups[0].Choices[1].PriceDelta)
}

func TestGetAllMenuItemsAvailableFilter(t *testing.T) {
	db := setupTestDBForMenus()
	router := setupMenuRouter(db)

	db.Create(&models.MenuItem{RestaurantID: 1, Name: "Burger", Price: 10.99, Available: true, Category: "mains"})
	// The column's default:true tag makes GORM drop the zero-value Available
	// on Create, so force it with an explicit update.
	soup := models.MenuItem{RestaurantID: 1, Name: "Soup of Yesterday", Price: 3.99, Available: false, Category: "mains"}
	db.Create(&soup)
	db.Model(&soup).Update("available", false)

	req, _ := http.NewRequest("GET", "/menus?restaurant_id=1&available=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.MenuItem `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Burger", resp.Data[0].Name)

	req, _ = http.NewRequest("GET", "/menus", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMenuItemAvailability(t *testing.T) {
	db := setupTestDBForMenus()
	router := setupMenuRouter(db)
	db.Create(&models.MenuItem{RestaurantID: 1, Name: "Burger", Price: 10.99, Available: true})

	payloadBytes, _ := json.Marshal(map[string]interface{}{"available": false})
	req, _ := http.NewRequest("PATCH", "/menus/1", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var item models.MenuItem
	assert.NoError(t, db.First(&item, 1).Error)
	assert.False(t, item.Available)
	assert.Equal(t, 10.99, item.Price)
}

func TestDeleteMenuItemRemovesOptionGroups(t *testing.T) {
	db := setupTestDBForMenus()
	router := setupMenuRouter(db)

	item := models.MenuItem{
		RestaurantID: 1,
		Name:         "Burger",
		Price:        10.99,
		Available:    true,
		OptionGroups: []models.MenuOptionGroup{
			{Name: "Cheese", Choices: []models.MenuOptionChoice{{Name: "Cheddar"}}},
		},
	}
	db.Create(&item)

	req, _ := http.NewRequest("DELETE", "/menus/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.MenuOptionGroup{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
