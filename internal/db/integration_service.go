package db

import (
	"time"

	"gorm.io/gorm/clause"

	"github.com/ermekov/taskfold/internal/models"
)

// GetSyncableIntegrations returns integrations with both flags enabled,
// the set the external sync engine processes.
func GetSyncableIntegrations() ([]models.Integration, error) {
	var integrations []models.Integration
	err := DB.Where("enabled = ? AND sync_enabled = ?", true, true).
		Order("user_id").
		Find(&integrations).Error
	if err != nil {
		return nil, err
	}
	return integrations, nil
}

// GetIntegration returns a user's integration record, if any
func GetIntegration(userID string) (*models.Integration, error) {
	var integration models.Integration
	err := DB.Where("user_id = ?", userID).First(&integration).Error
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

// UpsertIntegration creates or updates a user's integration record
func UpsertIntegration(userID string, enabled, syncEnabled bool, defaultListID *string) (*models.Integration, error) {
	integration := models.Integration{
		UserID:        userID,
		Enabled:       enabled,
		SyncEnabled:   syncEnabled,
		DefaultListID: defaultListID,
	}

	err := DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "sync_enabled", "default_list_id"}),
	}).Create(&integration).Error
	if err != nil {
		return nil, err
	}

	return &integration, nil
}

// SetIntegrationDefaultList stores the resolved external list id
func SetIntegrationDefaultList(userID string, listID string) error {
	return DB.Model(&models.Integration{}).Where("user_id = ?", userID).
		Update("default_list_id", listID).Error
}

// TouchIntegrationSynced stamps an integration's last sync time
func TouchIntegrationSynced(userID string, syncedAt time.Time) error {
	return DB.Model(&models.Integration{}).Where("user_id = ?", userID).
		Update("last_synced_at", syncedAt).Error
}
