package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ermekov/taskfold/internal/reconcile"
)

// syncOption is one selectable action in the decision prompt
type syncOption struct {
	action reconcile.Action
	label  string
	detail string
}

// SyncDecisionModel asks the operator what to do with local data found
// at login
type SyncDecisionModel struct {
	snapshot  reconcile.Snapshot
	options   []syncOption
	cursor    int
	choice    reconcile.Action
	completed bool
	cancelled bool
}

// NewSyncDecisionModel builds the prompt for a snapshot. When the
// account already holds data the upload option is presented as
// "keep both"; the mechanics are identical.
func NewSyncDecisionModel(snapshot reconcile.Snapshot) SyncDecisionModel {
	var upload syncOption
	if snapshot.RemoteEmpty() {
		upload = syncOption{
			action: reconcile.ActionSync,
			label:  "Upload to account",
			detail: "copy local folders and todos into your account",
		}
	} else {
		upload = syncOption{
			action: reconcile.ActionKeepBoth,
			label:  "Keep both",
			detail: "add local folders and todos next to your account data",
		}
	}

	return SyncDecisionModel{
		snapshot: snapshot,
		options: []syncOption{
			upload,
			{
				action: reconcile.ActionDiscard,
				label:  "Discard local data",
				detail: "throw the local copy away, keep the account as is",
			},
		},
	}
}

// Choice returns the selected action, or ActionNone when cancelled
func (m SyncDecisionModel) Choice() reconcile.Action {
	if !m.completed {
		return reconcile.ActionNone
	}
	return m.choice
}

// Cancelled reports whether the operator backed out
func (m SyncDecisionModel) Cancelled() bool { return m.cancelled }

// Init implements tea.Model
func (m SyncDecisionModel) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m SyncDecisionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.choice = m.options[m.cursor].action
		m.completed = true
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m SyncDecisionModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))

	subtasks := 0
	for _, group := range m.snapshot.SubtasksByTask {
		subtasks += len(group)
	}

	view := titleStyle.Render("You have local data from before signing in") + "\n\n"
	view += textStyle.Render(fmt.Sprintf("  %d todos, %d folders, %d subtasks",
		len(m.snapshot.Todos), len(m.snapshot.Folders), subtasks)) + "\n"
	if !m.snapshot.RemoteEmpty() {
		view += mutedStyle.Render(fmt.Sprintf("  your account already has %d todos and %d folders",
			m.snapshot.RemoteTasks, m.snapshot.RemoteFolders)) + "\n"
	}
	if subtasks > 0 {
		view += mutedStyle.Render("  note: subtasks are not uploaded") + "\n"
	}
	view += "\n"

	for i, opt := range m.options {
		cursor := "  "
		style := textStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		view += cursor + style.Render(opt.label) + "\n"
		view += "    " + mutedStyle.Render(opt.detail) + "\n"
	}

	view += "\n" + helpStyle.Render("up/down: select • enter: confirm • esc: decide later")
	return view
}
