package models

import (
	"time"

	"gorm.io/gorm"
)

// Folder groups tasks for a signed-in user
type Folder struct {
	ID        int64          `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID    string `gorm:"index;not null" json:"-"`
	Name      string `gorm:"not null" json:"name"` // 1-100 chars, validated at the service layer
	Color     string `gorm:"default:purple" json:"color"`
	SortOrder int    `json:"sort_order"`

	// Relationships
	Tasks []Task `gorm:"foreignKey:FolderID" json:"-"`
}
