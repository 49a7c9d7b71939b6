package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fishinv/internal/export"
	"fishinv/internal/inventory"
	"fishinv/internal/model"

	"github.com/spf13/cobra"
)

func newBulkCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "bulk --file <items.json|items.xlsx>",
		Short: "Save many rows in one request",
		Long: strings.TrimSpace(`
Reads full-row replacements from a file and sends them as one bulk request.

JSON files hold either {"items": [...]} or a bare array of
{"id", "fish", "size", "qty", "unit_price"} objects. Spreadsheets use the
layout written by "fishinv export" (rows without an ID are skipped).
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(file) == "" {
				return writeErr(cmd, fmt.Errorf("--file is required"))
			}
			items, err := readBulkItems(file)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(items) == 0 {
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{"updated": 0},
					"meta": map[string]any{"message": inventory.NoChangesDetail},
				})
			}
			c, _, err := newClient(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.BulkUpdate(cmd.Context(), items); err != nil {
				return writeErr(cmd, fmt.Errorf("일괄 저장 실패: %w", err))
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"updated": len(items)},
				"meta": map[string]any{"message": fmt.Sprintf("%d개 항목 저장 완료", len(items))},
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Input file (.json or .xlsx)")

	return cmd
}

func readBulkItems(path string) ([]model.RowPayload, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return export.ReadXLSX(bytes.NewReader(b))
	}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []model.RowPayload
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return items, nil
	}
	var req model.BulkRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return req.Items, nil
}
