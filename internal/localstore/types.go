package localstore

import (
	"time"

	"github.com/google/uuid"
)

// Task is a todo created while signed out. Ids are opaque strings and
// never overlap with the integer ids of the account store.
type Task struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Completed  bool       `json:"completed"`
	FolderID   *string    `json:"folder_id,omitempty"`
	SortOrder  int        `json:"sort_order"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	RemindAt   *time.Time `json:"remind_at,omitempty"`
	Recurrence string     `json:"recurrence,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Folder groups signed-out tasks
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Subtask is a checklist item under a signed-out task. TaskID always
// refers to a local task id, never an account-store id.
type Subtask struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	SortOrder int    `json:"sort_order"`
}

// NewID returns a fresh local-space identifier
func NewID() string {
	return uuid.NewString()
}
