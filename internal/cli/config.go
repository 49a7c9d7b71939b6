package cli

import (
	"github.com/spf13/cobra"
)

type configOut struct {
	ConfigDir      string `json:"config_dir"`
	Location       string `json:"location"`
	DeployedOrigin string `json:"deployed_origin,omitempty"`
	API            string `json:"api,omitempty"`
	BaseOrigin     string `json:"base_origin"`
	OriginRule     string `json:"origin_rule"`
	NumberPolicy   string `json:"number_policy"`
	StartPage      string `json:"start_page"`
	HTTPTimeout    string `json:"http_timeout"`
	TUITheme       string `json:"tui_theme"`
	TUIGlyphs      string `json:"tui_glyphs"`
}

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration and API base origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			origin, rule := cfg.BaseOrigin()
			return writeOut(cmd, app, map[string]any{"data": configOut{
				ConfigDir:      cfg.Dir,
				Location:       cfg.Location,
				DeployedOrigin: cfg.DeployedOrigin,
				API:            cfg.API,
				BaseOrigin:     origin,
				OriginRule:     rule,
				NumberPolicy:   cfg.NumberPolicy,
				StartPage:      cfg.StartPage,
				HTTPTimeout:    cfg.HTTPTimeout.String(),
				TUITheme:       cfg.TUITheme,
				TUIGlyphs:      cfg.TUIGlyphs,
			}})
		},
	}
}
