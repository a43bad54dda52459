package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/auth"
	"github.com/ermekov/taskfold/internal/reconcile"
	"github.com/ermekov/taskfold/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and reconcile local todos with your account",
	Long: `Sign in with your account identity. If you created todos or folders
while signed out, taskfold asks whether to upload them into the account
or discard them. Either way the local copy is cleared afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		if userID == "" {
			fmt.Println("--user is required")
			return
		}

		previous := currentSession()
		observer := reconcile.NewObserver(previous != nil)

		if err := auth.Save(&auth.Session{UserID: userID, Email: email, Name: name}); err != nil {
			fmt.Printf("Error saving session: %v\n", err)
			return
		}
		fmt.Printf("Signed in as %s\n", userID)

		state := reconcile.AuthState{
			Authenticated: true,
			Identity:      &reconcile.Identity{ID: userID, Email: email, Name: name},
		}
		if observer.Observe(state) != reconcile.TransitionLogin {
			// Already signed in before; nothing to reconcile
			return
		}

		initDB()
		store, err := openLocalStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		reconciler := reconcile.New(store, userID, nil)
		snapshot, err := reconciler.Snapshot()
		if err != nil {
			fmt.Printf("Error reading stores: %v\n", err)
			return
		}

		// Empty local store: no prompt, no action
		if snapshot.LocalEmpty() {
			return
		}

		action, err := tui.RunSyncDecision(snapshot)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if action == reconcile.ActionNone {
			fmt.Println("Local data kept for now. Sign out and back in to be asked again.")
			return
		}

		result := reconciler.Run(snapshot, action)
		switch action {
		case reconcile.ActionDiscard:
			fmt.Println("Local data discarded.")
		default:
			fmt.Printf("Uploaded %d folders and %d todos into your account.\n",
				result.FoldersCreated, result.TasksCreated)
			if result.SubtasksDropped > 0 {
				fmt.Printf("Note: %d local subtasks were not uploaded.\n", result.SubtasksDropped)
			}
		}
		if result.Err != nil {
			fmt.Printf("Warning: upload was incomplete: %v\n", result.Err)
			fmt.Println("The local copy has still been cleared.")
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out (account data stays on the account; nothing syncs back)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := auth.Clear(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("Signed out.")
	},
}

func init() {
	loginCmd.Flags().String("user", "", "Account user id")
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("name", "", "Display name")
}
