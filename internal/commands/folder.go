package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/db"
	"github.com/ermekov/taskfold/internal/localstore"
	"github.com/ermekov/taskfold/internal/tui"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
}

var folderAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		color, _ := cmd.Flags().GetString("color")

		if session := currentSession(); session != nil {
			initDB()
			folder, err := db.CreateFolder(db.CreateFolderRequest{
				UserID: session.UserID,
				Name:   args[0],
				Color:  color,
			})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("Created folder #%d: %s (%s)\n", folder.ID, folder.Name, folder.Color)
			return
		}

		name := strings.TrimSpace(args[0])
		if len(name) < 1 || len(name) > 100 {
			fmt.Println("Folder name must be 1-100 characters.")
			return
		}
		if color == "" {
			color = db.FolderColors[0]
		}
		valid := false
		for _, c := range db.FolderColors {
			if c == color {
				valid = true
				break
			}
		}
		if !valid {
			fmt.Printf("Invalid color %q. Use one of: %s\n", color, strings.Join(db.FolderColors, ", "))
			return
		}

		store, err := openLocalStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		folders, err := store.Folders()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		folder := localstore.Folder{
			ID:        localstore.NewID(),
			Name:      name,
			Color:     color,
			SortOrder: len(folders),
			CreatedAt: time.Now(),
		}
		if err := store.SaveFolders(append(folders, folder)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Created folder %s: %s (%s)\n", shortID(folder.ID), folder.Name, folder.Color)
	},
}

var folderListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List folders",
	Run: func(cmd *cobra.Command, args []string) {
		if session := currentSession(); session != nil {
			initDB()
			folders, err := db.GetFolders(session.UserID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if len(folders) == 0 {
				fmt.Println("No folders yet.")
				return
			}
			for _, f := range folders {
				// Colorize the swatch word, not the name, so padding stays aligned
				fmt.Printf("#%-5d %-20s %s\n", f.ID, f.Name, tui.FolderLabel(f.Color, f.Color))
			}
			return
		}

		store, err := openLocalStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		folders, err := store.Folders()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(folders) == 0 {
			fmt.Println("No folders yet.")
			return
		}
		for _, f := range folders {
			fmt.Printf("%-10s %-20s %s\n", shortID(f.ID), f.Name, tui.FolderLabel(f.Color, f.Color))
		}
	},
}

var folderRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a folder (its todos are kept, unfiled)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if session := currentSession(); session != nil {
			initDB()
			folderID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fmt.Printf("Invalid folder id %q\n", args[0])
				return
			}
			if err := db.DeleteFolder(session.UserID, folderID); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("Deleted folder #%d\n", folderID)
			return
		}

		store, err := openLocalStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		folders, err := store.Folders()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		var kept []localstore.Folder
		var removed localstore.Folder
		found := false
		for _, f := range folders {
			if !found && strings.HasPrefix(f.ID, args[0]) {
				removed = f
				found = true
				continue
			}
			kept = append(kept, f)
		}
		if !found {
			fmt.Printf("No folder matches id %q\n", args[0])
			return
		}

		// Unfile the folder's todos
		todos, err := store.Todos()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		for i := range todos {
			if todos[i].FolderID != nil && *todos[i].FolderID == removed.ID {
				todos[i].FolderID = nil
			}
		}

		if err := store.SaveTodos(todos); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := store.SaveFolders(kept); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Deleted folder %s\n", removed.Name)
	},
}

func init() {
	folderAddCmd.Flags().StringP("color", "c", "", "Folder color: "+strings.Join(db.FolderColors, ", "))
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderRmCmd)
}
