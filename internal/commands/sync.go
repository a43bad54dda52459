package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/config"
	"github.com/ermekov/taskfold/internal/gtasks"
	"github.com/ermekov/taskfold/internal/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync with Google Tasks",
}

var syncRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one sync batch now",
	Long: `Run the Google Tasks sync once, for every linked account or for one
identity with --identity. The scheduled endpoint (taskfold serve) runs
the same batch.`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

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
		engine := sync.NewEngine(client, nil)
		ctx := context.Background()

		identity, _ := cmd.Flags().GetString("identity")
		if identity != "" {
			result, err := engine.RunOne(ctx, identity)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			printIdentityResult(result)
			return
		}

		batch, err := engine.Run(ctx)
		if err != nil {
			fmt.Printf("Sync failed: %v\n", err)
			return
		}

		fmt.Printf("Synced %d identities: %d ok, %d failed\n",
			batch.Summary.Total, batch.Summary.Successful, batch.Summary.Failed)
		fmt.Printf("Tasks: %d pulled, %d created, %d pushed\n",
			batch.Summary.TotalTasksSynced, batch.Summary.TotalTasksCreated, batch.Summary.TotalTasksUpdated)
		for _, result := range batch.Results {
			printIdentityResult(result)
		}
	},
}

func printIdentityResult(result sync.IdentityResult) {
	status := "ok"
	if !result.Success {
		status = "FAILED: " + result.Error
	}
	fmt.Printf("  %-20s %s (pulled %d, created %d, pushed %d)\n",
		result.Identity, status, result.TasksSynced, result.TasksCreated, result.TasksUpdated)
}

func init() {
	syncRunCmd.Flags().String("identity", "", "Sync a single identity")
	syncCmd.AddCommand(syncRunCmd)
}
