// Package export writes the inventory collection to spreadsheet and PDF files
// and reads spreadsheets back as bulk-update items.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fishinv/internal/model"
)

// Columns is the shared column order of every export.
var Columns = []string{"ID", "어종", "크기", "수량", "단가", "금액"}

// Totals sums qty and amount over rows.
func Totals(rows []model.InventoryRow) (qty, amount float64) {
	for _, r := range rows {
		qty += r.Qty
		amount += r.Amount
	}
	return qty, amount
}

// WriteFile picks the format from the extension of path (.xlsx or .pdf).
func WriteFile(path string, rows []model.InventoryRow, opts PDFOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		err = WriteXLSX(f, rows)
	case ".pdf":
		err = WritePDF(f, rows, opts)
	default:
		err = fmt.Errorf("unsupported export format %q (use .xlsx or .pdf)", ext)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
	}
	return err
}
