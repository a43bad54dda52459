package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/db"
	"github.com/ermekov/taskfold/internal/parser"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List todos",
	Long:    "List todos from the account store when signed in, or the local store otherwise",
	Run: func(cmd *cobra.Command, args []string) {
		byDue, _ := cmd.Flags().GetBool("due")
		if session := currentSession(); session != nil {
			initDB()
			listRemote(session.UserID, byDue)
			return
		}
		listLocal(byDue)
	},
}

func listRemote(userID string, byDue bool) {
	tasks, err := db.GetTasks(userID)
	if err != nil {
		fmt.Printf("Error fetching todos: %v\n", err)
		return
	}
	if byDue {
		sort.SliceStable(tasks, func(i, j int) bool {
			return dueBefore(tasks[i].DueAt, tasks[j].DueAt)
		})
	}

	if len(tasks) == 0 {
		fmt.Println("No todos found. Use 'taskfold add \"todo text\"' to create your first one.")
		return
	}

	folderNames := map[int64]string{}
	if folders, err := db.GetFolders(userID); err == nil {
		for _, f := range folders {
			folderNames[f.ID] = f.Name
		}
	}

	// Print table header
	fmt.Printf("%-6s %-4s %-40s %-15s %-6s %s\n", "ID", "DONE", "TEXT", "FOLDER", "SUBS", "DUE")
	fmt.Println(strings.Repeat("-", 90))

	for _, task := range tasks {
		folder := ""
		if task.FolderID != nil {
			folder = folderNames[*task.FolderID]
		}
		fmt.Printf("%-6d %-4s %-40s %-15s %-6d %s\n",
			task.ID,
			checkbox(task.Completed),
			truncate(task.Text, 38),
			truncate(folder, 13),
			len(task.Subtasks),
			parser.FormatDueDate(task.DueAt))
	}
}

func listLocal(byDue bool) {
	store, err := openLocalStore()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	todos, err := store.Todos()
	if err != nil {
		fmt.Printf("Error fetching todos: %v\n", err)
		return
	}
	if byDue {
		sort.SliceStable(todos, func(i, j int) bool {
			return dueBefore(todos[i].DueAt, todos[j].DueAt)
		})
	}

	if len(todos) == 0 {
		fmt.Println("No todos found. Use 'taskfold add \"todo text\"' to create your first one.")
		return
	}

	folderNames := map[string]string{}
	if folders, err := store.Folders(); err == nil {
		for _, f := range folders {
			folderNames[f.ID] = f.Name
		}
	}

	fmt.Println("(local todos - sign in to move them into your account)")
	fmt.Printf("%-10s %-4s %-40s %-15s %s\n", "ID", "DONE", "TEXT", "FOLDER", "DUE")
	fmt.Println(strings.Repeat("-", 85))

	for _, todo := range todos {
		folder := ""
		if todo.FolderID != nil {
			folder = folderNames[*todo.FolderID]
		}
		fmt.Printf("%-10s %-4s %-40s %-15s %s\n",
			shortID(todo.ID),
			checkbox(todo.Completed),
			truncate(todo.Text, 38),
			truncate(folder, 13),
			parser.FormatDueDate(todo.DueAt))
	}
}

// dueBefore sorts dated todos ahead of undated ones
func dueBefore(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func init() {
	listCmd.Flags().Bool("due", false, "Order by due date, soonest first")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
