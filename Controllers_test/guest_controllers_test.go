package Controllers_test

import (
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

func setupTestDBForGuests() *gorm.DB {
	db := openTestDB("guests")
	db.Create(&models.Restaurant{Name: "Test Bistro"})
	db.Create(&models.Table{RestaurantID: 1, Label: "T1", Status: models.TableAvailable})
	db.Create(&models.MenuItem{RestaurantID: 1, Name: "Burger", Price: 10.99, Available: true})
	// The column's default:true tag makes GORM drop the zero-value Available
	// on Create, so force it with an explicit update.
	soup := models.MenuItem{RestaurantID: 1, Name: "Soup of Yesterday", Price: 3.99, Available: false}
	db.Create(&soup)
	db.Model(&soup).Update("available", false)
	return db
}

func setupGuestRouter(db *gorm.DB) *gin.Engine {
	router := gin.Default()
	guestCtrl := controllers.NewGuestController(db)
	router.GET("/r/:restaurant_id/t/:table_id", guestCtrl.ResolveDeepLink)
	router.POST("/sessions/:session_key/end", guestCtrl.EndSession)
	return router
}

type deepLinkResponse struct {
	Data struct {
		Restaurant models.Restaurant `json:"restaurant"`
		Table      models.Table      `json:"table"`
		Menu       []models.MenuItem `json:"menu"`
		SessionKey string            `json:"session_key"`
	} `json:"data"`
}

func TestResolveDeepLink(t *testing.T) {
	db := setupTestDBForGuests()
	router := setupGuestRouter(db)

	req, _ := http.NewRequest("GET", "/r/1/t/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp deepLinkResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "T1", resp.Data.Table.Label)
	assert.NotEmpty(t, resp.Data.SessionKey)

	// Only available items reach the guest menu.
	assert.Len(t, resp.Data.Menu, 1)
	assert.Equal(t, "Burger", resp.Data.Menu[0].Name)
}

func TestResolveDeepLinkReusesActiveSession(t *testing.T) {
	db := setupTestDBForGuests()
	router := setupGuestRouter(db)

	var keys [2]string
	for i := range keys {
		req, _ := http.NewRequest("GET", "/r/1/t/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp deepLinkResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		keys[i] = resp.Data.SessionKey
	}
	assert.Equal(t, keys[0], keys[1], "page reload should not mint a new session")
}

func TestResolveDeepLinkTableMismatch(t *testing.T) {
	db := setupTestDBForGuests()
	router := setupGuestRouter(db)

	db.Create(&models.Restaurant{Name: "Other Place"})
	db.Create(&models.Table{RestaurantID: 2, Label: "X1", Status: models.TableAvailable})

	req, _ := http.NewRequest("GET", "/r/1/t/2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req, _ = http.NewRequest("GET", "/r/9/t/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEndSession(t *testing.T) {
	db := setupTestDBForGuests()
	router := setupGuestRouter(db)

	req, _ := http.NewRequest("GET", "/r/1/t/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp deepLinkResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	key := resp.Data.SessionKey

	req, _ = http.NewRequest("POST", "/sessions/"+key+"/end", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var session models.GuestSession
	assert.NoError(t, db.Where("session_key = ?", key).First(&session).Error)
	assert.Equal(t, "finished", session.Status)

	// A fresh scan after close starts a new session.
	req, _ = http.NewRequest("GET", "/r/1/t/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, key, resp.Data.SessionKey)
}
