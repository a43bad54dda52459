package models

import (
	"time"

	"gorm.io/gorm"
)

// Subtask is a checklist item under a task
type Subtask struct {
	ID        int64          `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TaskID    int64  `gorm:"index;not null" json:"task_id"`
	Text      string `gorm:"not null" json:"text"`
	Completed bool   `gorm:"default:false" json:"completed"`
	SortOrder int    `json:"sort_order"`

	// Relationships
	Task Task `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
