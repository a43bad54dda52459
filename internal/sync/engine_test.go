package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ermekov/taskfold/internal/db"
	"github.com/ermekov/taskfold/internal/models"
	"github.com/ermekov/taskfold/internal/unified"
)

var fixedNow = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Use(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
}

type upsertCall struct {
	userID     string
	listID     string
	patch      TaskPatch
	externalID string
}

// fakeProvider serves canned lists and tasks, keyed by user, and records
// every upsert it receives.
type fakeProvider struct {
	lists        map[string][]TaskList
	listsErr     map[string]error
	tasks        map[string][]unified.ExternalTask
	upserts      []upsertCall
	nextCreateID int
}

func (f *fakeProvider) ListTaskLists(_ context.Context, userID string) ([]TaskList, error) {
	if err := f.listsErr[userID]; err != nil {
		return nil, err
	}
	return f.lists[userID], nil
}

func (f *fakeProvider) ListTasks(_ context.Context, userID, listID string, _, _ bool) ([]unified.ExternalTask, error) {
	return f.tasks[userID+"/"+listID], nil
}

func (f *fakeProvider) UpsertTask(_ context.Context, userID, listID string, patch TaskPatch, externalID string) (unified.ExternalTask, error) {
	f.upserts = append(f.upserts, upsertCall{userID, listID, patch, externalID})
	id := externalID
	if id == "" {
		f.nextCreateID++
		id = fmt.Sprintf("created-%d", f.nextCreateID)
	}
	return unified.ExternalTask{ID: id, Title: patch.Text, Completed: patch.Completed, UpdatedAt: fixedNow}, nil
}

func testEngine(p Provider) *Engine {
	e := NewEngine(p, log.New(io.Discard, "", 0))
	e.now = func() time.Time { return fixedNow }
	return e
}

func addIntegration(t *testing.T, userID string, listID string) {
	t.Helper()
	var defaultList *string
	if listID != "" {
		defaultList = &listID
	}
	if _, err := db.UpsertIntegration(userID, true, true, defaultList); err != nil {
		t.Fatalf("upsert integration: %v", err)
	}
}

func addTask(t *testing.T, userID, text string) int64 {
	t.Helper()
	task, err := db.CreateTask(db.CreateTaskRequest{UserID: userID, Text: text})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task.ID
}

func TestRunSkipsDisabledIntegrations(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "list-a")
	if _, err := db.UpsertIntegration("bob", true, false, nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := db.UpsertIntegration("carol", false, true, nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	batch, err := testEngine(&fakeProvider{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Summary.Total != 1 {
		t.Errorf("total = %d, want 1 (only alice is syncable)", batch.Summary.Total)
	}
	if batch.Summary.Successful != 1 || batch.Summary.Failed != 0 {
		t.Errorf("summary = %+v", batch.Summary)
	}
}

func TestRunIsolatesIdentityFailures(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "")
	addIntegration(t, "bob", "list-b")

	provider := &fakeProvider{
		listsErr: map[string]error{"alice": errors.New("token revoked")},
	}

	batch, err := testEngine(provider).Run(context.Background())
	if err != nil {
		t.Fatalf("one bad identity must not fail the batch: %v", err)
	}

	if batch.Summary.Total != 2 || batch.Summary.Successful != 1 || batch.Summary.Failed != 1 {
		t.Fatalf("summary = %+v", batch.Summary)
	}
	for _, r := range batch.Results {
		switch r.Identity {
		case "alice":
			if r.Success || r.Error == "" {
				t.Errorf("alice should have failed with an error, got %+v", r)
			}
		case "bob":
			if !r.Success {
				t.Errorf("bob should have succeeded, got %+v", r)
			}
		}
	}
}

func TestResolveListRemembersFirstList(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "")

	provider := &fakeProvider{
		lists: map[string][]TaskList{"alice": {{ID: "first"}, {ID: "second"}}},
	}

	batch, err := testEngine(provider).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Summary.Successful != 1 {
		t.Fatalf("summary = %+v", batch.Summary)
	}

	integration, err := db.GetIntegration("alice")
	if err != nil {
		t.Fatalf("GetIntegration: %v", err)
	}
	if integration.DefaultListID == nil || *integration.DefaultListID != "first" {
		t.Errorf("default list = %v, want first", integration.DefaultListID)
	}
}

func TestNoListsFound(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "")

	batch, err := testEngine(&fakeProvider{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Summary.Failed != 1 {
		t.Fatalf("summary = %+v", batch.Summary)
	}
	if batch.Results[0].Error != ErrNoListsFound.Error() {
		t.Errorf("error = %q, want %q", batch.Results[0].Error, ErrNoListsFound)
	}
}

func TestTombstoneCompletesWithoutDeleting(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "list-a")
	taskID := addTask(t, "alice", "buy milk")
	if err := db.LinkExternalTask(taskID, "ext-1", fixedNow.Add(-time.Hour)); err != nil {
		t.Fatalf("link: %v", err)
	}

	provider := &fakeProvider{
		tasks: map[string][]unified.ExternalTask{
			"alice/list-a": {{ID: "ext-1", Deleted: true, UpdatedAt: fixedNow.Add(-time.Minute)}},
		},
	}

	batch, err := testEngine(provider).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := batch.Summary.TotalTasksSynced; got != 1 {
		t.Errorf("tasksSynced = %d, want 1", got)
	}

	task, err := db.GetTaskByID("alice", taskID)
	if err != nil {
		t.Fatalf("the tombstoned task must survive locally: %v", err)
	}
	if !task.Completed {
		t.Error("tombstone should mark the task completed")
	}
	if len(provider.upserts) != 0 {
		t.Errorf("tombstoned task must not be pushed back, got %d upserts", len(provider.upserts))
	}
}

func TestEqualTimestampsAreANoOp(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "list-a")
	taskID := addTask(t, "alice", "buy milk")
	stamp := fixedNow.Add(-time.Hour)
	if err := db.LinkExternalTask(taskID, "ext-1", stamp); err != nil {
		t.Fatalf("link: %v", err)
	}

	provider := &fakeProvider{
		tasks: map[string][]unified.ExternalTask{
			"alice/list-a": {{ID: "ext-1", Title: "buy milk remote", UpdatedAt: stamp}},
		},
	}

	batch, err := testEngine(provider).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	sum := batch.Summary
	if sum.TotalTasksSynced != 0 || sum.TotalTasksCreated != 0 || sum.TotalTasksUpdated != 0 {
		t.Errorf("equal timestamps should move nothing, got %+v", sum)
	}
	if len(provider.upserts) != 0 {
		t.Errorf("unexpected upserts: %+v", provider.upserts)
	}

	task, _ := db.GetTaskByID("alice", taskID)
	if task.Text != "buy milk" {
		t.Errorf("local text overwritten to %q", task.Text)
	}
}

func TestNewerExternalWinsPull(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "list-a")
	taskID := addTask(t, "alice", "old text")
	if err := db.LinkExternalTask(taskID, "ext-1", fixedNow.Add(-2*time.Hour)); err != nil {
		t.Fatalf("link: %v", err)
	}

	due := fixedNow.Add(24 * time.Hour)
	provider := &fakeProvider{
		tasks: map[string][]unified.ExternalTask{
			"alice/list-a": {{ID: "ext-1", Title: "new text", Completed: true, DueAt: &due, UpdatedAt: fixedNow.Add(-time.Hour)}},
		},
	}

	batch, err := testEngine(provider).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Summary.TotalTasksSynced != 1 {
		t.Errorf("tasksSynced = %d, want 1", batch.Summary.TotalTasksSynced)
	}

	task, _ := db.GetTaskByID("alice", taskID)
	if task.Text != "new text" || !task.Completed {
		t.Errorf("pull not applied: %+v", task)
	}
	if task.DueAt == nil || !task.DueAt.Equal(due) {
		t.Error("due date not pulled")
	}
	if task.LastSyncedAt == nil || !task.LastSyncedAt.Equal(fixedNow) {
		t.Errorf("last synced = %v, want %v", task.LastSyncedAt, fixedNow)
	}
}

func TestPulledTaskIsNotPushedBack(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "list-a")
	taskID := addTask(t, "alice", "old local text")
	// Linked but never synced: pass 1 must win and pass 2 must not
	// push the stale pre-pull snapshot back to the provider
	if err := db.DB.Model(&models.Task{}).Where("id = ?", taskID).
		Update("google_task_id", "ext-1").Error; err != nil {
		t.Fatalf("link without stamp: %v", err)
	}

	provider := &fakeProvider{
		tasks: map[string][]unified.ExternalTask{
			"alice/list-a": {{ID: "ext-1", Title: "newer external text", UpdatedAt: fixedNow.Add(-time.Minute)}},
		},
	}

	batch, err := testEngine(provider).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	task, _ := db.GetTaskByID("alice", taskID)
	if task.Text != "newer external text" {
		t.Errorf("local text = %q, want the pulled content", task.Text)
	}
	if len(provider.upserts) != 0 {
		t.Errorf("stale snapshot pushed back: %+v", provider.upserts)
	}
	sum := batch.Summary
	if sum.TotalTasksSynced != 1 || sum.TotalTasksUpdated != 0 {
		t.Errorf("counts = synced %d, updated %d; want 1, 0", sum.TotalTasksSynced, sum.TotalTasksUpdated)
	}
}

func TestNewerLocalWinsPush(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "list-a")
	taskID := addTask(t, "alice", "edited locally")
	if err := db.LinkExternalTask(taskID, "ext-1", fixedNow.Add(-time.Hour)); err != nil {
		t.Fatalf("link: %v", err)
	}

	provider := &fakeProvider{
		tasks: map[string][]unified.ExternalTask{
			"alice/list-a": {{ID: "ext-1", Title: "stale", UpdatedAt: fixedNow.Add(-2 * time.Hour)}},
		},
	}

	batch, err := testEngine(provider).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Summary.TotalTasksUpdated != 1 {
		t.Errorf("tasksUpdated = %d, want 1", batch.Summary.TotalTasksUpdated)
	}
	if len(provider.upserts) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(provider.upserts))
	}
	call := provider.upserts[0]
	if call.externalID != "ext-1" || call.patch.Text != "edited locally" {
		t.Errorf("push = %+v", call)
	}
}

func TestUnlinkedLocalTaskIsCreatedAndLinked(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "list-a")
	taskID := addTask(t, "alice", "brand new")

	provider := &fakeProvider{}

	batch, err := testEngine(provider).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Summary.TotalTasksCreated != 1 {
		t.Errorf("tasksCreated = %d, want 1", batch.Summary.TotalTasksCreated)
	}
	if len(provider.upserts) != 1 || provider.upserts[0].externalID != "" {
		t.Fatalf("expected one create upsert, got %+v", provider.upserts)
	}

	task, _ := db.GetTaskByID("alice", taskID)
	if task.GoogleTaskID == nil || *task.GoogleTaskID != "created-1" {
		t.Errorf("assigned id not stored, got %v", task.GoogleTaskID)
	}
}

func TestSyncDisabledTaskStaysLocal(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "list-a")
	taskID := addTask(t, "alice", "private note")
	if err := db.DB.Model(&models.Task{}).Where("id = ?", taskID).
		Update("sync_enabled", false).Error; err != nil {
		t.Fatalf("disable sync: %v", err)
	}

	provider := &fakeProvider{}

	batch, err := testEngine(provider).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if batch.Summary.TotalTasksCreated != 0 || len(provider.upserts) != 0 {
		t.Errorf("opted-out task left the account store: %+v", provider.upserts)
	}
}

func TestRunStampsIntegration(t *testing.T) {
	setupDB(t)
	addIntegration(t, "alice", "list-a")

	if _, err := testEngine(&fakeProvider{}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	integration, err := db.GetIntegration("alice")
	if err != nil {
		t.Fatalf("GetIntegration: %v", err)
	}
	if integration.LastSyncedAt == nil || !integration.LastSyncedAt.Equal(fixedNow) {
		t.Errorf("last synced = %v, want %v", integration.LastSyncedAt, fixedNow)
	}
}

func TestRunOneRejectsDisabled(t *testing.T) {
	setupDB(t)
	if _, err := db.UpsertIntegration("bob", true, false, nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := testEngine(&fakeProvider{}).RunOne(context.Background(), "bob"); err == nil {
		t.Error("RunOne should refuse a disabled integration")
	}
	if _, err := testEngine(&fakeProvider{}).RunOne(context.Background(), "nobody"); err == nil {
		t.Error("RunOne should refuse an unknown user")
	}
}
