package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/cravely/tableside/models"
	"github.com/cravely/tableside/utils"
)

// QRProvisioner creates table rows and renders the per-table QR image that
// deep-links guests into the ordering page.
type QRProvisioner struct {
	DB         *gorm.DB
	BaseURL    string
	UploadsDir string
}

func NewQRProvisioner(db *gorm.DB, baseURL, uploadsDir string) *QRProvisioner {
	return &QRProvisioner{DB: db, BaseURL: baseURL, UploadsDir: uploadsDir}
}

// ProvisionResult aggregates a batch: provisioning is best-effort, one bad
// label does not abort the rest.
type ProvisionResult struct {
	Tables map[uint]string `json:"tables"` // table id -> qr url
	Failed []string        `json:"failed,omitempty"`
}

// Provision creates one table per label with an empty qr_url, renders the QR
// PNG for the deep link, then fills qr_url in. A label whose QR render or
// file write fails keeps its table row (qr_url stays empty) and is reported
// in Failed.
func (p *QRProvisioner) Provision(restaurantID uint, labels []string) (*ProvisionResult, error) {
	var restaurant models.Restaurant
	if err := p.DB.First(&restaurant, restaurantID).Error; err != nil {
		return nil, fmt.Errorf("restaurant %d not found", restaurantID)
	}

	result := &ProvisionResult{Tables: make(map[uint]string)}

	for _, label := range labels {
		table := models.Table{
			RestaurantID: restaurantID,
			Label:        label,
			QRUrl:        "",
			Status:       models.TableAvailable,
		}
		if err := p.DB.Create(&table).Error; err != nil {
			utils.ErrorLogger.Printf("provision: creating table %q failed: %v", label, err)
			result.Failed = append(result.Failed, label)
			continue
		}

		qrURL, err := p.renderQR(restaurantID, table.ID)
		if err != nil {
			utils.ErrorLogger.Printf("provision: QR for table %q (id=%d) failed: %v", label, table.ID, err)
			result.Failed = append(result.Failed, label)
			continue
		}

		if err := p.DB.Model(&table).Update("qr_url", qrURL).Error; err != nil {
			utils.ErrorLogger.Printf("provision: updating qr_url for table %d failed: %v", table.ID, err)
			result.Failed = append(result.Failed, label)
			continue
		}

		result.Tables[table.ID] = qrURL
		utils.InfoLogger.Printf("Provisioned table %q (id=%d) for restaurant %d", label, table.ID, restaurantID)
	}

	return result, nil
}

func (p *QRProvisioner) renderQR(restaurantID, tableID uint) (string, error) {
	deepLink := fmt.Sprintf("%s/r/%d/t/%d", p.BaseURL, restaurantID, tableID)

	png, err := qrcode.Encode(deepLink, qrcode.High, 512)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(p.UploadsDir, "qrcodes", fmt.Sprintf("%d", restaurantID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	file := filepath.Join(dir, fmt.Sprintf("%d.png", tableID))
	if err := os.WriteFile(file, png, 0o644); err != nil {
		return "", err
	}

	return fmt.Sprintf("/uploads/qrcodes/%d/%d.png", restaurantID, tableID), nil
}
