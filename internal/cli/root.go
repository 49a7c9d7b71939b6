package cli

import (
	"fmt"
	"os"
	"strings"

	"fishinv/internal/api"
	"fishinv/internal/config"
	"fishinv/internal/format"
	"fishinv/internal/model"
	"fishinv/internal/store"
	"fishinv/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigDir  string
	API        string
	Location   string
	PrettyJSON bool
	Format     string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "fishinv",
		Short:        "Fish inventory client (TUI + scriptable commands)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  fishinv

  # Scriptable commands
  fishinv list --format table
  fishinv add --fish 고등어 --size 중 --qty 2 --unit-price 3000
  fishinv update 1 --qty 5

  # Local development backend
  fishinv serve --addr 127.0.0.1:5000
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("FISHINV_CONFIG_DIR", ""), "Config directory (default ~/.fishinv)")
	cmd.PersistentFlags().StringVar(&app.API, "api", "", "API base origin (overrides every other origin rule)")
	cmd.PersistentFlags().StringVar(&app.Location, "location", "", "Address the client is opened from (same-origin/loopback/?api= rules)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("FISHINV_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newUpdateCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newBulkCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newAutosaveCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// loadConfig reads the config once per invocation. Only flags the user
// actually set override the file and environment.
func loadConfig(cmd *cobra.Command, app *App) (*config.Config, error) {
	if app.cfg != nil {
		return app.cfg, nil
	}
	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("api") {
		overrides[config.KeyAPI] = app.API
	}
	if flags.Changed("location") {
		overrides[config.KeyLocation] = app.Location
	}
	cfg, err := config.Load(app.ConfigDir, overrides)
	if err != nil {
		return nil, err
	}
	app.cfg = cfg
	return cfg, nil
}

func newClient(cmd *cobra.Command, app *App) (*api.Client, *config.Config, error) {
	cfg, err := loadConfig(cmd, app)
	if err != nil {
		return nil, nil, err
	}
	origin, _ := cfg.BaseOrigin()
	return api.New(api.Options{BaseURL: origin, Timeout: cfg.HTTPTimeout}), cfg, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	client, cfg, err := newClient(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	st := store.Store{Dir: cfg.Dir}
	prefs, err := st.OpenPrefs()
	if err != nil {
		return writeErr(cmd, err)
	}
	origin, rule := cfg.BaseOrigin()
	return tui.Run(cmd.Context(), tui.Options{
		Backend:    client,
		Policy:     model.PolicyByName(cfg.NumberPolicy),
		Prefs:      prefs,
		Store:      st,
		StartPage:  cfg.StartPage,
		BaseOrigin: origin,
		OriginRule: rule,
		Theme:      cfg.TUITheme,
		Glyphs:     cfg.TUIGlyphs,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
