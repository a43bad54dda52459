package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/db"
	"github.com/ermekov/taskfold/internal/localstore"
	"github.com/ermekov/taskfold/internal/optimistic"
	"github.com/ermekov/taskfold/internal/parser"
	"github.com/ermekov/taskfold/internal/tui"
	"github.com/ermekov/taskfold/internal/unified"
)

var addCmd = &cobra.Command{
	Use:   "add [todo text]",
	Short: "Add a new todo",
	Long: `Add a new todo with optional metadata.

Modes:
  Interactive: taskfold add (no arguments)
  Quick: taskfold add "Buy milk @groceries due:tomorrow remind:2 hours"

Smart parsing syntax:
  @folder       - Folder name
  due:<expr>    - Due date (today, tomorrow, dd/mm/yyyy, X days)
  remind:<expr> - Reminder (30 minutes, 1 day, dd/mm/yyyy)`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		parsed := parser.ParseTitle(strings.Join(args, " "))

		if len(args) == 0 || len(parsed.Errors) > 0 {
			if len(parsed.Errors) > 0 {
				fmt.Printf("Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
				fmt.Println("Opening interactive mode...")
			}
			title, folder, dueExpr, remindExpr, ok, err := tui.RunAddTask(parsed)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if !ok {
				fmt.Println("Cancelled.")
				return
			}
			parsed = parser.ParsedTask{Title: title, Folder: folder}
			if dueExpr != "" {
				parsed.DueDate, _ = parser.ParseDueDate(dueExpr)
			}
			if remindExpr != "" {
				parsed.RemindAt, _ = parser.ParseReminder(remindExpr)
			}
		}

		if parsed.Title == "" {
			fmt.Println("Todo text is required.")
			return
		}

		if session := currentSession(); session != nil {
			initDB()
			addRemote(session.UserID, parsed)
			return
		}
		addLocal(parsed)
	},
}

// addRemote creates the todo in the signed-in account store
func addRemote(userID string, parsed parser.ParsedTask) {
	req := db.CreateTaskRequest{
		UserID:   userID,
		Text:     parsed.Title,
		DueAt:    parsed.DueDate,
		RemindAt: parsed.RemindAt,
	}

	if parsed.Folder != "" {
		folders, err := db.GetFolders(userID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		for _, f := range folders {
			if strings.EqualFold(f.Name, parsed.Folder) {
				id := f.ID
				req.FolderID = &id
				break
			}
		}
		if req.FolderID == nil {
			fmt.Printf("Folder %q not found. Create it with 'taskfold folder add %s'\n", parsed.Folder, parsed.Folder)
			return
		}
	}

	task, err := db.CreateTask(req)
	if err != nil {
		fmt.Printf("Error creating todo: %v\n", err)
		return
	}
	fmt.Printf("Added todo #%d: %s\n", task.ID, task.Text)
}

// addLocal creates the todo in the signed-out local store
func addLocal(parsed parser.ParsedTask) {
	store, err := openLocalStore()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	tasks, err := localTasksUnified(store)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	var folderID *unified.EntityID
	if parsed.Folder != "" {
		folders, err := store.Folders()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		for _, f := range folders {
			if strings.EqualFold(f.Name, parsed.Folder) {
				id := unified.LocalID(f.ID)
				folderID = &id
				break
			}
		}
		if folderID == nil {
			fmt.Printf("Folder %q not found. Create it with 'taskfold folder add %s'\n", parsed.Folder, parsed.Folder)
			return
		}
	}

	localID := localstore.NewID()
	next := optimistic.Create(tasks, unified.Task{
		ID:        unified.LocalID(localID),
		Text:      parsed.Title,
		FolderID:  folderID,
		SortOrder: len(tasks),
		DueAt:     parsed.DueDate,
		RemindAt:  parsed.RemindAt,
	})

	if err := saveLocalTasks(store, next); err != nil {
		fmt.Printf("Error saving todo: %v\n", err)
		return
	}
	fmt.Printf("Added todo %s: %s\n", shortID(localID), parsed.Title)

	if parsed.DueDate != nil {
		fmt.Printf("  %s\n", parser.FormatDueDate(parsed.DueDate))
	}
}
