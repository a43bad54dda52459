package localstore

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "local.json"))
}

func TestGetMissingKey(t *testing.T) {
	store := tempStore(t)

	raw, err := store.Get("todos")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if raw != nil {
		t.Errorf("expected nil for a missing key, got %s", raw)
	}
}

func TestSetGetRemove(t *testing.T) {
	store := tempStore(t)

	if err := store.Set("greeting", json.RawMessage(`"hello"`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, err := store.Get("greeting")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != `"hello"` {
		t.Errorf("got %s, want %q", raw, `"hello"`)
	}

	if err := store.Remove("greeting"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	raw, err = store.Get("greeting")
	if err != nil {
		t.Fatalf("Get after Remove: %v", err)
	}
	if raw != nil {
		t.Error("value survived Remove")
	}
}

func TestClearWipesEverything(t *testing.T) {
	store := tempStore(t)

	if err := store.SaveTodos([]Task{{ID: NewID(), Text: "a"}}); err != nil {
		t.Fatalf("SaveTodos: %v", err)
	}
	if err := store.SaveFolders([]Folder{{ID: NewID(), Name: "work", Color: "blue"}}); err != nil {
		t.Fatalf("SaveFolders: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	todos, err := store.Todos()
	if err != nil {
		t.Fatalf("Todos: %v", err)
	}
	folders, err := store.Folders()
	if err != nil {
		t.Fatalf("Folders: %v", err)
	}
	if len(todos) != 0 || len(folders) != 0 {
		t.Errorf("store not empty after Clear: %d todos, %d folders", len(todos), len(folders))
	}
}

func TestTypedRoundTrip(t *testing.T) {
	store := tempStore(t)

	folderID := NewID()
	taskID := NewID()
	tasks := []Task{
		{ID: taskID, Text: "buy milk", FolderID: &folderID, SortOrder: 0},
		{ID: NewID(), Text: "walk dog", Completed: true, SortOrder: 1},
	}
	groups := map[string][]Subtask{
		taskID: {{ID: NewID(), TaskID: taskID, Text: "2% fat"}},
	}

	if err := store.SaveTodos(tasks); err != nil {
		t.Fatalf("SaveTodos: %v", err)
	}
	if err := store.SaveSubtasks(groups); err != nil {
		t.Fatalf("SaveSubtasks: %v", err)
	}

	// Re-open to prove persistence across processes
	reopened := Open(store.path)

	got, err := reopened.Todos()
	if err != nil {
		t.Fatalf("Todos: %v", err)
	}
	if len(got) != 2 || got[0].Text != "buy milk" || !got[1].Completed {
		t.Errorf("tasks did not survive round trip: %+v", got)
	}
	if got[0].FolderID == nil || *got[0].FolderID != folderID {
		t.Error("folder link lost")
	}

	subs, err := reopened.Subtasks()
	if err != nil {
		t.Fatalf("Subtasks: %v", err)
	}
	if len(subs[taskID]) != 1 || subs[taskID][0].Text != "2% fat" {
		t.Errorf("subtasks did not survive round trip: %+v", subs)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q at iteration %d", id, i)
		}
		seen[id] = true
	}
}
