package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fishinv/internal/model"

	"github.com/xuri/excelize/v2"
)

const sheetName = "재고"

var moneyFmt = "#,##0.###"

// WriteXLSX writes a header row, one row per item and a total row.
func WriteXLSX(w io.Writer, rows []model.InventoryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := []any{r.ID, r.Fish, r.Size, r.Qty, r.UnitPrice, r.Amount}
		if err := f.SetSheetRow(sheetName, cell, &vals); err != nil {
			return err
		}
	}

	last := len(rows) + 2
	qty, amount := Totals(rows)
	totalCell, _ := excelize.CoordinatesToCellName(1, last)
	total := []any{"합계", "", "", qty, "", amount}
	if err := f.SetSheetRow(sheetName, totalCell, &total); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return err
	}
	boldMoney, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt})
	if err != nil {
		return err
	}
	lastRow := strconv.Itoa(last)
	if err := f.SetCellStyle(sheetName, "A1", "F1", bold); err != nil {
		return err
	}
	if len(rows) > 0 {
		if err := f.SetCellStyle(sheetName, "D2", "F"+strconv.Itoa(last-1), money); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetName, "A"+lastRow, "F"+lastRow, boldMoney); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", "C", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "D", "F", 14); err != nil {
		return err
	}
	return f.Write(w)
}

// ReadXLSX reads rows from the first sheet as bulk-update items. The header row
// is matched by name (Korean or English, any order); rows without an ID (such
// as the total row) are skipped.
func ReadXLSX(r io.Reader) ([]model.RowPayload, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		if name, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[name] = i
		}
	}
	if _, ok := cols["id"]; !ok {
		return nil, fmt.Errorf("missing ID column")
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(row []string, name string, line int) (float64, error) {
		s := cell(row, name)
		if s == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return 0, fmt.Errorf("row %d: %s %q is not a number", line, name, s)
		}
		return v, nil
	}

	out := []model.RowPayload{}
	for i, row := range rows[1:] {
		line := i + 2
		rawID := cell(row, "id")
		if rawID == "" {
			continue
		}
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			// Total row or notes.
			if _, ferr := strconv.ParseFloat(rawID, 64); ferr != nil {
				continue
			}
			return nil, fmt.Errorf("row %d: invalid id %q", line, rawID)
		}
		p := model.RowPayload{ID: id, Fish: cell(row, "fish"), Size: cell(row, "size")}
		if p.Qty, err = num(row, "qty", line); err != nil {
			return nil, err
		}
		if p.UnitPrice, err = num(row, "unit_price", line); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

var headerAliases = map[string]string{
	"id":         "id",
	"어종":         "fish",
	"fish":       "fish",
	"크기":         "size",
	"size":       "size",
	"수량":         "qty",
	"qty":        "qty",
	"단가":         "unit_price",
	"unit_price": "unit_price",
	"unit price": "unit_price",
}
