package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/db"
	"github.com/ermekov/taskfold/internal/optimistic"
)

var rmCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if session := currentSession(); session != nil {
			initDB()
			taskID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fmt.Printf("Invalid todo id %q\n", args[0])
				return
			}
			if err := db.DeleteTask(session.UserID, taskID); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("Deleted todo #%d\n", taskID)
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

		id, err := resolveLocalID(tasks, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		next := optimistic.Delete(tasks, id)
		if err := saveLocalTasks(store, next); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Deleted todo %s\n", args[0])
	},
}

var moveCmd = &cobra.Command{
	Use:     "mv [id] [position]",
	Aliases: []string{"reorder"},
	Short:   "Move a todo to a new position",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		position, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("Invalid position %q\n", args[1])
			return
		}

		if session := currentSession(); session != nil {
			initDB()
			taskID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fmt.Printf("Invalid todo id %q\n", args[0])
				return
			}
			if err := db.ReorderTask(session.UserID, taskID, position); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("Moved todo #%d to position %d\n", taskID, position)
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

		id, err := resolveLocalID(tasks, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		next := optimistic.Reorder(tasks, id, position)
		if err := saveLocalTasks(store, next); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Moved todo %s to position %d\n", args[0], position)
	},
}
