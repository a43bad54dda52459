package unified

import (
	"time"

	"github.com/ermekov/taskfold/internal/localstore"
	"github.com/ermekov/taskfold/internal/models"
)

// Task is the unified view of a todo from either store
type Task struct {
	ID         EntityID
	Text       string
	Completed  bool
	FolderID   *EntityID
	SortOrder  int
	DueAt      *time.Time
	RemindAt   *time.Time
	Recurrence string

	GoogleTaskID *string
	SyncEnabled  bool
	LastSyncedAt *time.Time
}

// Folder is the unified view of a folder from either store
type Folder struct {
	ID        EntityID
	Name      string
	Color     string
	SortOrder int
	CreatedAt time.Time
}

// Subtask is the unified view of a checklist item. TaskID is always in
// the same space as ID: normalizers only ever produce same-space links.
type Subtask struct {
	ID        EntityID
	TaskID    EntityID
	Text      string
	Completed bool
	SortOrder int
}

// ExternalTask mirrors one entry of the provider's task list. Deleted
// entries are tombstones, not absences.
type ExternalTask struct {
	ID        string
	Title     string
	Completed bool
	DueAt     *time.Time
	UpdatedAt time.Time
	Deleted   bool
}

// FromLocalTask normalizes a signed-out task
func FromLocalTask(t localstore.Task) Task {
	var folderID *EntityID
	if t.FolderID != nil {
		id := LocalID(*t.FolderID)
		folderID = &id
	}
	return Task{
		ID:         LocalID(t.ID),
		Text:       t.Text,
		Completed:  t.Completed,
		FolderID:   folderID,
		SortOrder:  t.SortOrder,
		DueAt:      t.DueAt,
		RemindAt:   t.RemindAt,
		Recurrence: t.Recurrence,
	}
}

// FromRemoteTask normalizes an account-store task, dropping the owning
// user id
func FromRemoteTask(t models.Task) Task {
	var folderID *EntityID
	if t.FolderID != nil {
		id := RemoteID(*t.FolderID)
		folderID = &id
	}
	return Task{
		ID:           RemoteID(t.ID),
		Text:         t.Text,
		Completed:    t.Completed,
		FolderID:     folderID,
		SortOrder:    t.SortOrder,
		DueAt:        t.DueAt,
		RemindAt:     t.RemindAt,
		Recurrence:   t.Recurrence,
		GoogleTaskID: t.GoogleTaskID,
		SyncEnabled:  t.SyncEnabled,
		LastSyncedAt: t.LastSyncedAt,
	}
}

// ToLocalTask converts a unified task back into the signed-out shape.
// The id must be local; remote tasks never flow back into the local store.
func ToLocalTask(t Task) localstore.Task {
	id, _ := t.ID.Local()
	var folderID *string
	if t.FolderID != nil {
		if fid, ok := t.FolderID.Local(); ok {
			folderID = &fid
		}
	}
	return localstore.Task{
		ID:         id,
		Text:       t.Text,
		Completed:  t.Completed,
		FolderID:   folderID,
		SortOrder:  t.SortOrder,
		DueAt:      t.DueAt,
		RemindAt:   t.RemindAt,
		Recurrence: t.Recurrence,
	}
}

// FromLocalFolder normalizes a signed-out folder
func FromLocalFolder(f localstore.Folder) Folder {
	return Folder{
		ID:        LocalID(f.ID),
		Name:      f.Name,
		Color:     f.Color,
		SortOrder: f.SortOrder,
		CreatedAt: f.CreatedAt,
	}
}

// FromRemoteFolder normalizes an account-store folder
func FromRemoteFolder(f models.Folder) Folder {
	return Folder{
		ID:        RemoteID(f.ID),
		Name:      f.Name,
		Color:     f.Color,
		SortOrder: f.SortOrder,
		CreatedAt: f.CreatedAt,
	}
}

// FromLocalSubtask normalizes a signed-out subtask
func FromLocalSubtask(s localstore.Subtask) Subtask {
	return Subtask{
		ID:        LocalID(s.ID),
		TaskID:    LocalID(s.TaskID),
		Text:      s.Text,
		Completed: s.Completed,
		SortOrder: s.SortOrder,
	}
}

// FromRemoteSubtask normalizes an account-store subtask
func FromRemoteSubtask(s models.Subtask) Subtask {
	return Subtask{
		ID:        RemoteID(s.ID),
		TaskID:    RemoteID(s.TaskID),
		Text:      s.Text,
		Completed: s.Completed,
		SortOrder: s.SortOrder,
	}
}
