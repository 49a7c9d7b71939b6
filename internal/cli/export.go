package cli

import (
	"fmt"
	"strings"

	"fishinv/internal/export"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	var font string

	cmd := &cobra.Command{
		Use:   "export --out <file.xlsx|file.pdf>",
		Short: "Export the inventory to a spreadsheet or PDF report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(out) == "" {
				return writeErr(cmd, fmt.Errorf("--out is required"))
			}
			c, _, err := newClient(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows, err := c.ListInventory(cmd.Context())
			if err != nil {
				return writeErr(cmd, fmt.Errorf("목록 조회 실패: %w", err))
			}
			if err := export.WriteFile(out, rows, export.PDFOptions{FontPath: font}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": out, "rows": len(rows)}})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (.xlsx or .pdf)")
	cmd.Flags().StringVar(&font, "font", envOr("FISHINV_PDF_FONT", ""), "UTF-8 TrueType font for PDF output (needed for Hangul)")

	return cmd
}
