package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/utils"
)

// PushNotification is the delivery payload: clicking it navigates to URL.
type PushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Pusher posts notifications to a restaurant's configured webhook. Delivery
// is best-effort: failures are logged and never surfaced to the write that
// triggered them.
type Pusher struct {
	DB     *gorm.DB
	Client *http.Client
}

func NewPusher(db *gorm.DB) *Pusher {
	return &Pusher{
		DB:     db,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Notify looks up the restaurant's webhook and delivers asynchronously.
// Restaurants without a webhook configured are skipped silently.
func (p *Pusher) Notify(restaurantID uint, n PushNotification) {
	var restaurant models.Restaurant
	if err := p.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.ErrorLogger.Printf("push: restaurant %d not found: %v", restaurantID, err)
		return
	}
	if restaurant.PushWebhookURL == nil || *restaurant.PushWebhookURL == "" {
		return
	}

	go p.deliver(*restaurant.PushWebhookURL, n)
}

func (p *Pusher) deliver(url string, n PushNotification) {
	payload, err := json.Marshal(n)
	if err != nil {
		utils.ErrorLogger.Printf("push: marshal failed: %v", err)
		return
	}

	resp, err := p.Client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		utils.ErrorLogger.Printf("push: delivery to %s failed: %v", url, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		utils.ErrorLogger.Printf("push: %s answered %d", url, resp.StatusCode)
		return
	}
	utils.InfoLogger.Printf("Push delivered: %s", n.Title)
}
