package cli

import (
	"fmt"

	"fishinv/internal/autosave"
	"fishinv/internal/store"

	"github.com/spf13/cobra"
)

type autosaveOut struct {
	Enabled         bool   `json:"enabled"`
	IntervalMinutes int    `json:"interval_minutes"`
	Summary         string `json:"summary"`
}

func newAutosaveCmd(app *App) *cobra.Command {
	var enable bool
	var disable bool
	var interval int

	cmd := &cobra.Command{
		Use:   "autosave",
		Short: "Show or change the persisted autosave settings used by the TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable && disable {
				return writeErr(cmd, fmt.Errorf("--enable and --disable are mutually exclusive"))
			}
			flags := cmd.Flags()
			if flags.Changed("interval") && !autosave.ValidInterval(interval) {
				return writeErr(cmd, fmt.Errorf("--interval must be one of %v", autosave.Intervals))
			}

			cfg, err := loadConfig(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			prefs, err := store.Store{Dir: cfg.Dir}.OpenPrefs()
			if err != nil {
				return writeErr(cmd, err)
			}
			sched := autosave.New(autosave.Options{Prefs: prefs})
			defer sched.Stop()

			cur := sched.LoadSettings()
			next := cur
			if enable {
				next.Enabled = true
			}
			if disable {
				next.Enabled = false
			}
			if flags.Changed("interval") {
				next.IntervalMinutes = interval
			}
			if next != cur {
				if err := sched.Apply(next); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": autosaveOut{
				Enabled:         next.Enabled,
				IntervalMinutes: next.IntervalMinutes,
				Summary:         next.String(),
			}})
		},
	}

	cmd.Flags().BoolVar(&enable, "enable", false, "Enable autosave")
	cmd.Flags().BoolVar(&disable, "disable", false, "Disable autosave")
	cmd.Flags().IntVar(&interval, "interval", autosave.DefaultMinutes, "Autosave interval in minutes (10|30|60)")

	return cmd
}
