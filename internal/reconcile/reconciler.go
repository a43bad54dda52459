package reconcile

import (
	"fmt"
	"log"
	"os"

	"github.com/ermekov/taskfold/internal/db"
	"github.com/ermekov/taskfold/internal/localstore"
)

// Action is the operator's choice for local data found at login
type Action string

const (
	// ActionNone is returned when the local store is empty; nothing to do
	ActionNone Action = "none"
	// ActionDiscard clears the local store and leaves the account alone
	ActionDiscard Action = "discard"
	// ActionSync copies local folders and tasks into the account
	ActionSync Action = "sync"
	// ActionKeepBoth behaves exactly like ActionSync; the distinction
	// only matters to the prompt shown when account data already exists
	ActionKeepBoth Action = "keep_both"
)

// Snapshot is what the decision prompt needs: the full local state and
// counts (only) of the account side.
type Snapshot struct {
	Todos          []localstore.Task
	Folders        []localstore.Folder
	SubtasksByTask map[string][]localstore.Subtask

	RemoteTasks   int64
	RemoteFolders int64
}

// LocalEmpty reports whether there is any signed-out data to reconcile
func (s Snapshot) LocalEmpty() bool {
	return len(s.Todos) == 0 && len(s.Folders) == 0 && s.subtaskCount() == 0
}

// RemoteEmpty reports whether the account has any data yet
func (s Snapshot) RemoteEmpty() bool {
	return s.RemoteTasks == 0 && s.RemoteFolders == 0
}

func (s Snapshot) subtaskCount() int {
	n := 0
	for _, group := range s.SubtasksByTask {
		n += len(group)
	}
	return n
}

// Result reports what a reconciliation attempt did. Err carries the
// first failure; work done before it is not rolled back.
type Result struct {
	Action          Action
	FoldersCreated  int
	TasksCreated    int
	SubtasksDropped int
	LocalCleared    bool
	Err             error
}

// Reconciler merges the local store into one user's account store
type Reconciler struct {
	store  *localstore.Store
	userID string
	logger *log.Logger
}

// New creates a reconciler for the given user. If logger is nil, a
// default logger writing to stderr is used.
func New(store *localstore.Store, userID string, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.New(os.Stderr, "[reconcile] ", log.LstdFlags)
	}
	return &Reconciler{store: store, userID: userID, logger: logger}
}

// Snapshot reads both sides: the full local state, and counts of the
// account store (counts suffice for the decision prompt).
func (r *Reconciler) Snapshot() (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Todos, err = r.store.Todos(); err != nil {
		return snap, fmt.Errorf("failed to read local todos: %w", err)
	}
	if snap.Folders, err = r.store.Folders(); err != nil {
		return snap, fmt.Errorf("failed to read local folders: %w", err)
	}
	if snap.SubtasksByTask, err = r.store.Subtasks(); err != nil {
		return snap, fmt.Errorf("failed to read local subtasks: %w", err)
	}

	if snap.RemoteTasks, err = db.CountTasks(r.userID); err != nil {
		return snap, fmt.Errorf("failed to count account tasks: %w", err)
	}
	if snap.RemoteFolders, err = db.CountFolders(r.userID); err != nil {
		return snap, fmt.Errorf("failed to count account folders: %w", err)
	}

	return snap, nil
}

// Run performs the chosen action. Whatever happens, the local store is
// cleared afterwards: clear-after-attempt, never clear-before. Partial
// failures are not rolled back and not re-queued; the first error is
// returned in the result.
// The named return lets the deferred clear record its outcome.
func (r *Reconciler) Run(snap Snapshot, action Action) (result Result) {
	result.Action = action

	if action == ActionNone {
		return result
	}

	defer func() {
		if err := r.store.Clear(); err != nil {
			r.logger.Printf("failed to clear local store: %v", err)
			if result.Err == nil {
				result.Err = err
			}
			return
		}
		result.LocalCleared = true
	}()

	if action == ActionDiscard {
		r.logger.Printf("discarding %d local todos, %d folders", len(snap.Todos), len(snap.Folders))
		return result
	}

	// sync and keep_both share mechanics: bulk-create folders first so
	// task linkage can be re-mapped to the new account folder ids.
	folderIDs := make(map[string]int64, len(snap.Folders))
	for _, f := range snap.Folders {
		created, err := db.CreateFolder(db.CreateFolderRequest{
			UserID: r.userID,
			Name:   f.Name,
			Color:  f.Color,
		})
		if err != nil {
			result.Err = fmt.Errorf("failed to migrate folder %q: %w", f.Name, err)
			return result
		}
		folderIDs[f.ID] = created.ID
		result.FoldersCreated++
	}

	for _, t := range snap.Todos {
		req := db.CreateTaskRequest{
			UserID:     r.userID,
			Text:       t.Text,
			DueAt:      t.DueAt,
			RemindAt:   t.RemindAt,
			Recurrence: t.Recurrence,
		}
		if t.FolderID != nil {
			if remoteID, ok := folderIDs[*t.FolderID]; ok {
				req.FolderID = &remoteID
			}
		}
		created, err := db.CreateTask(req)
		if err != nil {
			result.Err = fmt.Errorf("failed to migrate todo %q: %w", t.Text, err)
			return result
		}
		if t.Completed {
			if _, err := db.ToggleTask(r.userID, created.ID, true); err != nil {
				result.Err = fmt.Errorf("failed to migrate todo %q: %w", t.Text, err)
				return result
			}
		}
		result.TasksCreated++
	}

	// Subtasks are not migrated: the account-store subtask path needs a
	// task-id mapping that is not threaded through here. They are
	// counted so the caller can report what was dropped.
	result.SubtasksDropped = snap.subtaskCount()
	if result.SubtasksDropped > 0 {
		r.logger.Printf("dropping %d local subtasks (not migrated)", result.SubtasksDropped)
	}

	r.logger.Printf("migrated %d folders, %d todos for user %s",
		result.FoldersCreated, result.TasksCreated, r.userID)
	return result
}
