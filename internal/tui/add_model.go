package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ermekov/taskfold/internal/parser"
)

// Step represents the current step in the add wizard
type Step int

const (
	StepTitle Step = iota
	StepFolder
	StepDueDate
	StepReminder
	StepDone
)

// AddTaskModel is the interactive wizard for creating a task
type AddTaskModel struct {
	currentStep Step
	inputs      []textinput.Model

	// Collected values
	title    string
	folder   string
	dueDate  string
	reminder string

	validationErr string
	completed     bool
	cancelled     bool
}

// NewAddTaskModel creates the wizard, optionally pre-filled from parsed
// command-line input
func NewAddTaskModel(prefilled parser.ParsedTask) AddTaskModel {
	inputs := make([]textinput.Model, 4)

	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[0].Placeholder = "Enter todo text... (required)"
	inputs[0].CharLimit = 200
	inputs[0].SetValue(prefilled.Title)
	inputs[0].Focus()

	inputs[1].Placeholder = "Folder name (Enter to skip)"
	inputs[1].CharLimit = 100
	inputs[1].SetValue(prefilled.Folder)

	inputs[2].Placeholder = "Due: tomorrow, dd/mm/yyyy, 3 days (Enter to skip)"
	inputs[2].CharLimit = 50

	inputs[3].Placeholder = "Remind: 30 minutes, 1 day (Enter to skip)"
	inputs[3].CharLimit = 50

	return AddTaskModel{inputs: inputs}
}

// Values returns what the operator entered
func (m AddTaskModel) Values() (title, folder, dueDate, reminder string) {
	return m.title, m.folder, m.dueDate, m.reminder
}

// Completed reports whether the wizard finished
func (m AddTaskModel) Completed() bool { return m.completed }

// Cancelled reports whether the operator backed out
func (m AddTaskModel) Cancelled() bool { return m.cancelled }

// Init implements tea.Model
func (m AddTaskModel) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model
func (m AddTaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			return m.advance()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	return m, cmd
}

// advance validates the current step and moves to the next
func (m AddTaskModel) advance() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.inputs[m.currentStep].Value())
	m.validationErr = ""

	switch m.currentStep {
	case StepTitle:
		if value == "" {
			m.validationErr = "Todo text is required"
			return m, nil
		}
		m.title = value
	case StepFolder:
		m.folder = value
	case StepDueDate:
		if value != "" {
			if _, err := parser.ParseDueDate(value); err != nil {
				m.validationErr = err.Error()
				return m, nil
			}
		}
		m.dueDate = value
	case StepReminder:
		if value != "" {
			if _, err := parser.ParseReminder(value); err != nil {
				m.validationErr = err.Error()
				return m, nil
			}
		}
		m.reminder = value
	}

	m.inputs[m.currentStep].Blur()
	m.currentStep++
	if m.currentStep == StepDone {
		m.completed = true
		return m, tea.Quit
	}
	m.inputs[m.currentStep].Focus()
	return m, textinput.Blink
}

// View implements tea.Model
func (m AddTaskModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))

	labels := []string{"Text", "Folder", "Due date", "Reminder"}
	values := []string{m.title, m.folder, m.dueDate, m.reminder}

	view := titleStyle.Render("New todo") + "\n\n"
	for i := range m.inputs {
		step := Step(i)
		switch {
		case step < m.currentStep:
			display := values[i]
			if display == "" {
				display = "-"
			}
			view += doneStyle.Render("  "+labels[i]+": "+display) + "\n"
		case step == m.currentStep:
			view += labelStyle.Render("> "+labels[i]+": ") + m.inputs[i].View() + "\n"
		}
	}

	if m.validationErr != "" {
		view += "\n" + errStyle.Render("  "+m.validationErr) + "\n"
	}

	view += "\n" + helpStyle.Render("enter: next • esc: cancel")
	return view
}
