package commands

import (
	"fmt"
	"strings"

	"github.com/ermekov/taskfold/internal/auth"
	"github.com/ermekov/taskfold/internal/localstore"
	"github.com/ermekov/taskfold/internal/unified"
)

// currentSession returns the signed-in identity, or nil when signed out
func currentSession() *auth.Session {
	session, err := auth.Current()
	if err != nil {
		fmt.Printf("Warning: could not read session: %v\n", err)
		return nil
	}
	return session
}

// openLocalStore opens the signed-out store at its default location
func openLocalStore() (*localstore.Store, error) {
	path, err := localstore.DefaultPath()
	if err != nil {
		return nil, err
	}
	return localstore.Open(path), nil
}

// localTasksUnified loads the signed-out todos in their unified shape
func localTasksUnified(store *localstore.Store) ([]unified.Task, error) {
	todos, err := store.Todos()
	if err != nil {
		return nil, err
	}
	tasks := make([]unified.Task, 0, len(todos))
	for _, t := range todos {
		tasks = append(tasks, unified.FromLocalTask(t))
	}
	return tasks, nil
}

// saveLocalTasks writes a unified task list back to the signed-out store
func saveLocalTasks(store *localstore.Store, tasks []unified.Task) error {
	todos := make([]localstore.Task, 0, len(tasks))
	for _, t := range tasks {
		todos = append(todos, unified.ToLocalTask(t))
	}
	return store.SaveTodos(todos)
}

// resolveLocalID matches a (possibly shortened) local id against the
// list. Local ids are UUIDs, so a unique prefix is enough.
func resolveLocalID(tasks []unified.Task, arg string) (unified.EntityID, error) {
	var match unified.EntityID
	found := 0
	for _, t := range tasks {
		id, ok := t.ID.Local()
		if !ok {
			continue
		}
		if strings.HasPrefix(id, arg) {
			match = t.ID
			found++
		}
	}
	switch found {
	case 0:
		return unified.EntityID{}, fmt.Errorf("no todo matches id %q", arg)
	case 1:
		return match, nil
	default:
		return unified.EntityID{}, fmt.Errorf("id %q is ambiguous, use more characters", arg)
	}
}

// shortID trims a local id for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
