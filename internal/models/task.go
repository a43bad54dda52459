package models

import (
	"time"

	"gorm.io/gorm"
)

// Task represents a todo item owned by a signed-in user
type Task struct {
	ID        int64          `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID    string `gorm:"index;not null" json:"-"`
	Text      string `gorm:"not null" json:"text"`
	Completed bool   `gorm:"default:false" json:"completed"`
	SortOrder int    `json:"sort_order"`

	FolderID   *int64     `gorm:"index" json:"folder_id"`
	DueAt      *time.Time `json:"due_at"`
	RemindAt   *time.Time `json:"remind_at"`
	Recurrence string     `json:"recurrence"` // opaque descriptor, e.g. "daily"

	// External provider link (Google Tasks)
	GoogleTaskID *string    `gorm:"index" json:"google_task_id"`
	SyncEnabled  bool       `gorm:"default:true" json:"sync_enabled"`
	LastSyncedAt *time.Time `json:"last_synced_at"`

	// Relationships
	Folder   *Folder   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"folder,omitempty"`
	Subtasks []Subtask `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
}
