package models

import (
	"time"

	"gorm.io/gorm"
)

// Integration stores a user's link to the external task provider.
// One row per user; both Enabled and SyncEnabled must be true for the
// sync engine to pick the user up.
type Integration struct {
	ID        int64          `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// No column defaults: a default tag makes gorm omit false values on
	// insert, which would silently re-enable a disabled integration.
	UserID        string     `gorm:"uniqueIndex;not null" json:"user_id"`
	Enabled       bool       `json:"enabled"`
	SyncEnabled   bool       `json:"sync_enabled"`
	DefaultListID *string    `json:"default_list_id"`
	LastSyncedAt  *time.Time `json:"last_synced_at"`
}
