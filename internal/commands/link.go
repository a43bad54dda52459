package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/config"
	"github.com/ermekov/taskfold/internal/db"
	"github.com/ermekov/taskfold/internal/gtasks"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link your account to Google Tasks",
	Long: `Link the signed-in account to Google Tasks. Opens a browser window to
authorize taskfold, then enables the periodic two-way sync. Use --list
to pin a specific task list; otherwise the first list is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		session := currentSession()
		if session == nil {
			fmt.Println("Sign in first with 'taskfold login'.")
			return
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		client, err := gtasks.NewClient(cfg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		ctx := context.Background()
		if err := client.Authorize(ctx, session.UserID); err != nil {
			fmt.Printf("Authorization failed: %v\n", err)
			return
		}
		fmt.Println("Authorization successful.")

		var defaultListID *string
		listArg, _ := cmd.Flags().GetString("list")
		if listArg != "" {
			defaultListID = &listArg
		} else {
			lists, err := client.ListTaskLists(ctx, session.UserID)
			if err != nil {
				fmt.Printf("Warning: could not read task lists: %v\n", err)
			} else if len(lists) > 0 {
				defaultListID = &lists[0].ID
				fmt.Printf("Using task list %q\n", lists[0].Title)
			}
		}

		initDB()
		if _, err := db.UpsertIntegration(session.UserID, true, true, defaultListID); err != nil {
			fmt.Printf("Error saving integration: %v\n", err)
			return
		}
		fmt.Println("Google Tasks linked. Run 'taskfold sync run' or 'taskfold serve' to sync.")
	},
}

func init() {
	linkCmd.Flags().String("list", "", "Google Tasks list id to sync with")
}
