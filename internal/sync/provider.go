package sync

import (
	"context"
	"time"

	"github.com/ermekov/taskfold/internal/unified"
)

// TaskList is one of the provider's task lists
type TaskList struct {
	ID        string
	Title     string
	UpdatedAt time.Time
}

// TaskPatch is the content pushed to the provider on an upsert
type TaskPatch struct {
	Text      string
	Completed bool
	DueAt     *time.Time
}

// Provider is the external task service. The engine never imports the
// provider SDK directly; internal/gtasks implements this against
// Google Tasks.
type Provider interface {
	// ListTaskLists returns the user's task lists in API order
	ListTaskLists(ctx context.Context, userID string) ([]TaskList, error)

	// ListTasks returns all tasks in a list, including tombstoned and
	// hidden ones when asked
	ListTasks(ctx context.Context, userID, listID string, includeDeleted, includeHidden bool) ([]unified.ExternalTask, error)

	// UpsertTask updates the task with externalID, or creates a new one
	// when externalID is empty, returning the provider's record
	UpsertTask(ctx context.Context, userID, listID string, patch TaskPatch, externalID string) (unified.ExternalTask, error)
}
