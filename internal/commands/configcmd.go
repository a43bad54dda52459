package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage taskfold configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the config file with defaults",
	Long: `Write ~/.taskfold/config.json. Existing values are kept; flags
override them. The scheduler secret is required before 'taskfold serve'
will start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if secret, _ := cmd.Flags().GetString("secret"); secret != "" {
			cfg.SchedulerSecret = secret
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}
		if credentials, _ := cmd.Flags().GetString("credentials"); credentials != "" {
			cfg.CredentialsFile = credentials
		}
		if interval, _ := cmd.Flags().GetInt("interval"); interval > 0 {
			cfg.SyncIntervalMinutes = interval
		}

		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		dir, _ := config.Dir()
		fmt.Printf("Config written to %s/config.json\n", dir)
		if cfg.SchedulerSecret == "" {
			fmt.Println("Note: scheduler_secret is empty; set it before running 'taskfold serve'.")
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().String("secret", "", "Scheduler bearer secret for the sync endpoint")
	configInitCmd.Flags().String("addr", "", "Listen address for 'taskfold serve'")
	configInitCmd.Flags().String("credentials", "", "Path to the Google API credentials.json")
	configInitCmd.Flags().Int("interval", 0, "Suggested sync interval in minutes for the scheduler")
	configCmd.AddCommand(configInitCmd)
}
