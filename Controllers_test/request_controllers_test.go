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
	"github.com/cravely/tableside/realtime"
	"github.com/cravely/tableside/services"
)

func setupTestDBForRequests() *gorm.DB {
	db := openTestDB("requests")
	db.Create(&models.Restaurant{Name: "Test Bistro"})
	db.Create(&models.Table{RestaurantID: 1, Label: "T1", Status: models.TableAvailable})
	db.Create(&models.Restaurant{Name: "Other Place"})
	db.Create(&models.Table{RestaurantID: 2, Label: "X1", Status: models.TableAvailable})
	return db
}

func setupRequestRouter(db *gorm.DB) *gin.Engine {
	router := gin.Default()
	hub := realtime.NewHub(nil)
	requestCtrl := controllers.NewRequestController(db, hub, services.NewPusher(db))
	router.POST("/requests/bill", requestCtrl.CreateBillRequest)
	router.POST("/requests/assistance", requestCtrl.CreateAssistanceRequest)
	router.GET("/requests", requestCtrl.GetRequests)
	router.PATCH("/requests/:kind/:request_id", requestCtrl.ResolveRequest)
	return router
}

func postRequest(router *gin.Engine, path string, payload map[string]interface{}) *httptest.ResponseRecorder {
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBillAndAssistanceRequests(t *testing.T) {
	db := setupTestDBForRequests()
	router := setupRequestRouter(db)

	w := postRequest(router, "/requests/bill", map[string]interface{}{
		"restaurant_id": 1,
		"table_id":      1,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postRequest(router, "/requests/assistance", map[string]interface{}{
		"restaurant_id": 1,
		"table_id":      1,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var bill models.BillRequest
	assert.NoError(t, db.First(&bill).Error)
	assert.Equal(t, models.RequestPending, bill.Status)

	var call models.AssistanceRequest
	assert.NoError(t, db.First(&call).Error)
	assert.Equal(t, models.RequestPending, call.Status)
}

func TestCreateRequestTableMismatch(t *testing.T) {
	db := setupTestDBForRequests()
	router := setupRequestRouter(db)

	// Table 2 belongs to restaurant 2.
	w := postRequest(router, "/requests/bill", map[string]interface{}{
		"restaurant_id": 1,
		"table_id":      2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postRequest(router, "/requests/assistance", map[string]interface{}{
		"restaurant_id": 1,
		"table_id":      99,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRequestsBothQueues(t *testing.T) {
	db := setupTestDBForRequests()
	router := setupRequestRouter(db)

	postRequest(router, "/requests/bill", map[string]interface{}{"restaurant_id": 1, "table_id": 1})
	postRequest(router, "/requests/assistance", map[string]interface{}{"restaurant_id": 1, "table_id": 1})
	postRequest(router, "/requests/assistance", map[string]interface{}{"restaurant_id": 2, "table_id": 2})

	req, _ := http.NewRequest("GET", "/requests?restaurant_id=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Bill       []models.BillRequest       `json:"bill"`
			Assistance []models.AssistanceRequest `json:"assistance"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Bill, 1)
	assert.Len(t, resp.Data.Assistance, 1)
}

func TestResolveRequest(t *testing.T) {
	db := setupTestDBForRequests()
	router := setupRequestRouter(db)

	postRequest(router, "/requests/bill", map[string]interface{}{"restaurant_id": 1, "table_id": 1})

	req, _ := http.NewRequest("PATCH", "/requests/bill/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var bill models.BillRequest
	assert.NoError(t, db.First(&bill, 1).Error)
	assert.Equal(t, models.RequestResolved, bill.Status)

	// Unknown kinds and ids are rejected.
	req, _ = http.NewRequest("PATCH", "/requests/coffee/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req, _ = http.NewRequest("PATCH", "/requests/assistance/9", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
