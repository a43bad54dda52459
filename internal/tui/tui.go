package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ermekov/taskfold/internal/parser"
	"github.com/ermekov/taskfold/internal/reconcile"
)

// RunSyncDecision shows the login reconcile prompt and returns the
// chosen action. Cancelling returns ActionNone.
func RunSyncDecision(snapshot reconcile.Snapshot) (reconcile.Action, error) {
	p := tea.NewProgram(NewSyncDecisionModel(snapshot))
	finalModel, err := p.Run()
	if err != nil {
		return reconcile.ActionNone, err
	}

	m, ok := finalModel.(SyncDecisionModel)
	if !ok || m.Cancelled() {
		return reconcile.ActionNone, nil
	}
	return m.Choice(), nil
}

// RunAddTask shows the interactive add wizard. ok is false when the
// operator cancelled.
func RunAddTask(prefilled parser.ParsedTask) (title, folder, dueDate, reminder string, ok bool, err error) {
	p := tea.NewProgram(NewAddTaskModel(prefilled))
	finalModel, err := p.Run()
	if err != nil {
		return "", "", "", "", false, err
	}

	m, isModel := finalModel.(AddTaskModel)
	if !isModel || !m.Completed() {
		return "", "", "", "", false, nil
	}
	title, folder, dueDate, reminder = m.Values()
	return title, folder, dueDate, reminder, true, nil
}
