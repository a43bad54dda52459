// Package sync mirrors account tasks against the external task provider
// using last-write-wins timestamps. One invocation processes every
// syncable integration sequentially; per-user failures never abort the
// batch.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ermekov/taskfold/internal/db"
	"github.com/ermekov/taskfold/internal/models"
	"github.com/ermekov/taskfold/internal/unified"
)

// ErrNoListsFound means the user has no task lists at the provider
var ErrNoListsFound = errors.New("no task lists found")

// IdentityResult reports one user's sync outcome
type IdentityResult struct {
	Identity     string `json:"identity"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	TasksSynced  int    `json:"tasksSynced"`
	TasksCreated int    `json:"tasksCreated"`
	TasksUpdated int    `json:"tasksUpdated"`
}

// Summary aggregates a batch of identity results
type Summary struct {
	Total             int `json:"total"`
	Successful        int `json:"successful"`
	Failed            int `json:"failed"`
	TotalTasksSynced  int `json:"totalTasksSynced"`
	TotalTasksCreated int `json:"totalTasksCreated"`
	TotalTasksUpdated int `json:"totalTasksUpdated"`
}

// BatchResult is the full outcome of one engine invocation
type BatchResult struct {
	Success bool             `json:"success"`
	Summary Summary          `json:"summary"`
	Results []IdentityResult `json:"results"`
}

// Engine runs the bidirectional last-write-wins sync
type Engine struct {
	provider Provider
	logger   *log.Logger
	now      func() time.Time
}

// NewEngine creates a sync engine. If logger is nil, a default logger
// writing to stderr is used.
func NewEngine(provider Provider, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(os.Stderr, "[sync] ", log.LstdFlags)
	}
	return &Engine{provider: provider, logger: logger, now: time.Now}
}

// Run processes every syncable integration once, sequentially. It only
// returns an error when the integration list itself cannot be read;
// per-identity failures are recorded in the batch result instead.
func (e *Engine) Run(ctx context.Context) (BatchResult, error) {
	integrations, err := db.GetSyncableIntegrations()
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to read integrations: %w", err)
	}

	batch := BatchResult{Success: true, Results: make([]IdentityResult, 0, len(integrations))}
	batch.Summary.Total = len(integrations)

	for _, integration := range integrations {
		result := e.syncIdentity(ctx, integration)
		if result.Success {
			batch.Summary.Successful++
		} else {
			batch.Summary.Failed++
			e.logger.Printf("sync failed for %s: %s", result.Identity, result.Error)
		}
		batch.Summary.TotalTasksSynced += result.TasksSynced
		batch.Summary.TotalTasksCreated += result.TasksCreated
		batch.Summary.TotalTasksUpdated += result.TasksUpdated
		batch.Results = append(batch.Results, result)
	}

	e.logger.Printf("batch done: %d total, %d ok, %d failed",
		batch.Summary.Total, batch.Summary.Successful, batch.Summary.Failed)
	return batch, nil
}

// RunOne syncs a single user ad hoc, outside the scheduled batch
func (e *Engine) RunOne(ctx context.Context, userID string) (IdentityResult, error) {
	integration, err := db.GetIntegration(userID)
	if err != nil {
		return IdentityResult{}, fmt.Errorf("no integration for %s: %w", userID, err)
	}
	if !integration.Enabled || !integration.SyncEnabled {
		return IdentityResult{}, fmt.Errorf("integration for %s is disabled", userID)
	}
	return e.syncIdentity(ctx, *integration), nil
}

// syncIdentity runs both passes for one user. Any error is caught here
// and recorded; it never propagates to the batch.
func (e *Engine) syncIdentity(ctx context.Context, integration models.Integration) IdentityResult {
	result := IdentityResult{Identity: integration.UserID}

	err := e.runPasses(ctx, integration, &result)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	// Stamp the integration regardless of per-task outcomes
	if err := db.TouchIntegrationSynced(integration.UserID, e.now()); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	return result
}

func (e *Engine) runPasses(ctx context.Context, integration models.Integration, result *IdentityResult) error {
	userID := integration.UserID

	listID, err := e.resolveListID(ctx, integration)
	if err != nil {
		return err
	}

	external, err := e.provider.ListTasks(ctx, userID, listID, true, true)
	if err != nil {
		return fmt.Errorf("failed to list external tasks: %w", err)
	}

	local, err := db.GetTasks(userID)
	if err != nil {
		return fmt.Errorf("failed to load account tasks: %w", err)
	}

	externalByID := make(map[string]unified.ExternalTask, len(external))
	for _, ext := range external {
		externalByID[ext.ID] = ext
	}
	localByExternalID := make(map[string]models.Task)
	for _, t := range local {
		if t.GoogleTaskID != nil {
			localByExternalID[*t.GoogleTaskID] = t
		}
	}

	// Pass 1, external -> local. Completes fully before pass 2 so a
	// tombstone applied here is visible to the skip logic below. Ids
	// pulled here are excluded from pass 2: the local slice predates the
	// pull and would push stale content back.
	pulled := make(map[string]bool)
	for _, ext := range external {
		task, linked := localByExternalID[ext.ID]
		if !linked {
			// Creating local tasks from external-only entries is not done
			continue
		}

		if ext.Deleted {
			// Tombstone means "mark done", never "delete"
			if StrictlyNewer(&ext.UpdatedAt, task.LastSyncedAt) {
				if err := db.CompleteFromTombstone(task.ID, e.now()); err != nil {
					return err
				}
				pulled[ext.ID] = true
				result.TasksSynced++
			}
			continue
		}

		if StrictlyNewer(&ext.UpdatedAt, task.LastSyncedAt) {
			if err := db.ApplyExternalUpdate(task.ID, ext.Title, ext.Completed, ext.DueAt, e.now()); err != nil {
				return err
			}
			pulled[ext.ID] = true
			result.TasksSynced++
		}
	}

	// Pass 2, local -> external
	for _, task := range local {
		if !task.SyncEnabled {
			continue
		}

		patch := TaskPatch{Text: task.Text, Completed: task.Completed, DueAt: task.DueAt}

		if task.GoogleTaskID != nil {
			if pulled[*task.GoogleTaskID] {
				// The provider side won in pass 1; this snapshot is stale
				continue
			}
			ext, present := externalByID[*task.GoogleTaskID]
			if !present || ext.Deleted {
				// Provider tombstoned it; pass 1 already handled this
				continue
			}
			if task.LastSyncedAt == nil || StrictlyNewer(task.LastSyncedAt, &ext.UpdatedAt) {
				if _, err := e.provider.UpsertTask(ctx, userID, listID, patch, ext.ID); err != nil {
					return fmt.Errorf("failed to push task #%d: %w", task.ID, err)
				}
				if err := db.TouchTaskSynced(task.ID, e.now()); err != nil {
					return err
				}
				result.TasksUpdated++
			}
			continue
		}

		// Unlinked: create at the provider and store the assigned id
		created, err := e.provider.UpsertTask(ctx, userID, listID, patch, "")
		if err != nil {
			return fmt.Errorf("failed to create external task for #%d: %w", task.ID, err)
		}
		if err := db.LinkExternalTask(task.ID, created.ID, e.now()); err != nil {
			return err
		}
		result.TasksCreated++
	}

	return nil
}

// resolveListID picks the target external list: the stored default, or
// the user's first list when none is stored.
func (e *Engine) resolveListID(ctx context.Context, integration models.Integration) (string, error) {
	if integration.DefaultListID != nil && *integration.DefaultListID != "" {
		return *integration.DefaultListID, nil
	}

	lists, err := e.provider.ListTaskLists(ctx, integration.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to list task lists: %w", err)
	}
	if len(lists) == 0 {
		return "", ErrNoListsFound
	}

	// Remember the pick so the next run skips the lookup
	if err := db.SetIntegrationDefaultList(integration.UserID, lists[0].ID); err != nil {
		return "", err
	}
	return lists[0].ID, nil
}
