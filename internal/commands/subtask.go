package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/db"
	"github.com/ermekov/taskfold/internal/localstore"
)

var subtaskCmd = &cobra.Command{
	Use:     "subtask",
	Aliases: []string{"sub"},
	Short:   "Manage subtasks",
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add [todo id] [text]",
	Short: "Add a subtask under a todo",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args[1:], " ")

		if session := currentSession(); session != nil {
			initDB()
			taskID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fmt.Printf("Invalid todo id %q\n", args[0])
				return
			}
			subtask, err := db.CreateSubtask(session.UserID, taskID, text)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("Added subtask #%d under todo #%d\n", subtask.ID, taskID)
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

		// Local subtasks reference local todo ids only; the id comes
		// from the same list we just loaded, so spaces can't cross.
		parentID, err := resolveLocalID(tasks, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		parent, _ := parentID.Local()

		groups, err := store.Subtasks()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		groups[parent] = append(groups[parent], localstore.Subtask{
			ID:        localstore.NewID(),
			TaskID:    parent,
			Text:      strings.TrimSpace(text),
			SortOrder: len(groups[parent]),
		})
		if err := store.SaveSubtasks(groups); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Added subtask under todo %s\n", args[0])
	},
}

var subtaskListCmd = &cobra.Command{
	Use:     "ls [todo id]",
	Aliases: []string{"list"},
	Short:   "List a todo's subtasks",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if session := currentSession(); session != nil {
			initDB()
			taskID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fmt.Printf("Invalid todo id %q\n", args[0])
				return
			}
			subtasks, err := db.GetSubtasks(session.UserID, taskID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if len(subtasks) == 0 {
				fmt.Println("No subtasks.")
				return
			}
			for _, s := range subtasks {
				fmt.Printf("#%-5d %s %s\n", s.ID, checkbox(s.Completed), s.Text)
			}
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
		parentID, err := resolveLocalID(tasks, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		parent, _ := parentID.Local()

		groups, err := store.Subtasks()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(groups[parent]) == 0 {
			fmt.Println("No subtasks.")
			return
		}
		for _, s := range groups[parent] {
			fmt.Printf("%-10s %s %s\n", shortID(s.ID), checkbox(s.Completed), s.Text)
		}
	},
}

var subtaskDoneCmd = &cobra.Command{
	Use:   "done [subtask id]",
	Short: "Mark a subtask as completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if session := currentSession(); session != nil {
			initDB()
			subtaskID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fmt.Printf("Invalid subtask id %q\n", args[0])
				return
			}
			subtask, err := db.ToggleSubtask(session.UserID, subtaskID, true)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("Completed subtask #%d: %s\n", subtask.ID, subtask.Text)
			return
		}

		store, err := openLocalStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		groups, err := store.Subtasks()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		for parent, group := range groups {
			for i := range group {
				if strings.HasPrefix(group[i].ID, args[0]) {
					group[i].Completed = true
					groups[parent] = group
					if err := store.SaveSubtasks(groups); err != nil {
						fmt.Printf("Error: %v\n", err)
						return
					}
					fmt.Printf("Completed subtask %s\n", args[0])
					return
				}
			}
		}
		fmt.Printf("No subtask matches id %q\n", args[0])
	},
}

func init() {
	subtaskCmd.AddCommand(subtaskAddCmd)
	subtaskCmd.AddCommand(subtaskListCmd)
	subtaskCmd.AddCommand(subtaskDoneCmd)
}
