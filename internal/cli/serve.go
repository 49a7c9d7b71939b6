package cli

import (
	"log"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"fishinv/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development inventory backend (SQLite)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(dbPath) == "" {
				cfg, err := loadConfig(cmd, app)
				if err != nil {
					return writeErr(cmd, err)
				}
				dbPath = filepath.Join(cfg.Dir, "inventory.db")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := log.New(cmd.ErrOrStderr(), "fishinv-serve ", log.LstdFlags)
			if err := server.Serve(ctx, server.Config{Addr: addr, DBPath: dbPath, Logger: logger}); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("FISHINV_SERVE_ADDR", "127.0.0.1:5000"), "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default <config dir>/inventory.db)")

	return cmd
}
