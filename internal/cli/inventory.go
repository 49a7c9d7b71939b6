package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"fishinv/internal/inventory"
	"fishinv/internal/model"

	"github.com/spf13/cobra"
)

// inventoryList is the list output; it also renders as a table.
type inventoryList struct {
	Data []model.InventoryRow `json:"data"`
	Meta listMeta             `json:"meta"`
}

type listMeta struct {
	Count       int     `json:"count"`
	TotalQty    float64 `json:"total_qty"`
	TotalAmount float64 `json:"total_amount"`
}

func newInventoryList(rows []model.InventoryRow) inventoryList {
	out := inventoryList{Data: rows, Meta: listMeta{Count: len(rows)}}
	for _, r := range rows {
		out.Meta.TotalQty += r.Qty
		out.Meta.TotalAmount += r.Amount
	}
	return out
}

func (l inventoryList) Header() []string {
	return []string{"ID", "어종", "크기", "수량", "단가", "금액"}
}

func (l inventoryList) Rows() [][]string {
	out := make([][]string, 0, len(l.Data)+1)
	for _, r := range l.Data {
		out = append(out, []string{
			strconv.FormatInt(r.ID, 10),
			r.Fish,
			r.Size,
			model.FormatMoney(r.Qty),
			model.FormatMoney(r.UnitPrice),
			model.FormatMoney(r.Amount),
		})
	}
	out = append(out, []string{"", fmt.Sprintf("총 %d건", l.Meta.Count), "", model.FormatMoney(l.Meta.TotalQty), "", model.FormatMoney(l.Meta.TotalAmount)})
	return out
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inventory rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newClient(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows, err := c.ListInventory(cmd.Context())
			if err != nil {
				return writeErr(cmd, fmt.Errorf("%s 실패: %w", "목록 조회", err))
			}
			return writeOut(cmd, app, newInventoryList(rows))
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var in inventory.AddInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an inventory row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := newClient(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			policy := model.PolicyByName(cfg.NumberPolicy)
			row := model.NewRow{Fish: strings.TrimSpace(in.Fish), Size: strings.TrimSpace(in.Size)}
			if row.Qty, err = policy.Coerce(string(inventory.FieldQty), in.Qty); err != nil {
				return writeErr(cmd, err)
			}
			if row.UnitPrice, err = policy.Coerce(string(inventory.FieldUnitPrice), in.UnitPrice); err != nil {
				return writeErr(cmd, err)
			}
			raw, err := c.CreateRow(cmd.Context(), row)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("%s 실패: %w", "행 추가", err))
			}
			var data any = row
			if len(raw) > 0 && json.Valid(raw) {
				data = raw
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}

	cmd.Flags().StringVar(&in.Fish, "fish", "", "Fish name")
	cmd.Flags().StringVar(&in.Size, "size", "", "Size label")
	cmd.Flags().StringVar(&in.Qty, "qty", "", "Quantity")
	cmd.Flags().StringVar(&in.UnitPrice, "unit-price", "", "Unit price")

	return cmd
}

func newUpdateCmd(app *App) *cobra.Command {
	var in inventory.AddInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace fields of one row (unset flags keep the current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRowID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, cfg, err := newClient(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows, err := c.ListInventory(cmd.Context())
			if err != nil {
				return writeErr(cmd, fmt.Errorf("%s 실패: %w", "목록 조회", err))
			}
			cur, ok := findRow(rows, id)
			if !ok {
				return writeErr(cmd, errNotFound("row", args[0]))
			}

			p := cur.Payload()
			policy := model.PolicyByName(cfg.NumberPolicy)
			flags := cmd.Flags()
			if flags.Changed("fish") {
				p.Fish = strings.TrimSpace(in.Fish)
			}
			if flags.Changed("size") {
				p.Size = strings.TrimSpace(in.Size)
			}
			if flags.Changed("qty") {
				if p.Qty, err = policy.Coerce(string(inventory.FieldQty), in.Qty); err != nil {
					return writeErr(cmd, err)
				}
			}
			if flags.Changed("unit-price") {
				if p.UnitPrice, err = policy.Coerce(string(inventory.FieldUnitPrice), in.UnitPrice); err != nil {
					return writeErr(cmd, err)
				}
			}

			if err := c.UpdateRow(cmd.Context(), p); err != nil {
				return writeErr(cmd, fmt.Errorf("개별 저장(ID:%d) 실패: %w", id, err))
			}

			// Reload so the output carries the server-computed amount.
			rows, err = c.ListInventory(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			updated, ok := findRow(rows, id)
			if !ok {
				return writeErr(cmd, errNotFound("row", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	cmd.Flags().StringVar(&in.Fish, "fish", "", "Fish name")
	cmd.Flags().StringVar(&in.Size, "size", "", "Size label")
	cmd.Flags().StringVar(&in.Qty, "qty", "", "Quantity")
	cmd.Flags().StringVar(&in.UnitPrice, "unit-price", "", "Unit price")

	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one row (asks for confirmation unless --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRowID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("정말 삭제할까요? (ID:%d) [y/N]: ", id))
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeErr(cmd, errAborted)
				}
			}
			c, _, err := newClient(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.DeleteRow(cmd.Context(), id); err != nil {
				return writeErr(cmd, fmt.Errorf("행 삭제(ID:%d) 실패: %w", id, err))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Do not ask for confirmation")

	return cmd
}

func parseRowID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid row id: %q", s)
	}
	return id, nil
}

func findRow(rows []model.InventoryRow, id int64) (model.InventoryRow, bool) {
	for _, r := range rows {
		if r.ID == id {
			return r, true
		}
	}
	return model.InventoryRow{}, false
}

// confirm prompts on stderr and reads one line from stdin.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
