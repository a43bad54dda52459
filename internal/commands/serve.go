package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ermekov/taskfold/internal/config"
	"github.com/ermekov/taskfold/internal/gtasks"
	"github.com/ermekov/taskfold/internal/server"
	"github.com/ermekov/taskfold/internal/sync"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scheduled-sync endpoint",
	Long: `Serve POST /api/sync for an external scheduler. Requests must carry
"Authorization: Bearer <scheduler_secret>" matching the configured
secret; the response is the JSON batch summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		initDB()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.SchedulerSecret == "" {
			return fmt.Errorf("scheduler_secret is not configured; set it in the config file")
		}

		client, err := gtasks.NewClient(cfg)
		if err != nil {
			return err
		}
		engine := sync.NewEngine(client, nil)

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ListenAddr
		}

		return server.New(cfg.SchedulerSecret, engine, nil).ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (defaults to config listen_addr)")
}
