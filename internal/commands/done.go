package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/db"
	"github.com/ermekov/taskfold/internal/optimistic"
)

var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toggle(args[0], true)
	},
}

var undoneCmd = &cobra.Command{
	Use:   "undone [id]",
	Short: "Mark a todo as not completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toggle(args[0], false)
	},
}

func toggle(arg string, completed bool) {
	if session := currentSession(); session != nil {
		initDB()
		taskID, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Printf("Invalid todo id %q\n", arg)
			return
		}
		task, err := db.ToggleTask(session.UserID, taskID, completed)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("%s #%d: %s\n", toggleVerb(completed), task.ID, task.Text)
		return
	}

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

	id, err := resolveLocalID(tasks, arg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	next := optimistic.Toggle(tasks, id, completed)
	if err := saveLocalTasks(store, next); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("%s %s\n", toggleVerb(completed), arg)
}

func toggleVerb(completed bool) string {
	if completed {
		return "Completed"
	}
	return "Reopened"
}
