package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"fishinv/internal/model"

	"github.com/go-pdf/fpdf"
)

// PDFOptions controls the PDF report. Core PDF fonts cannot draw Hangul, so
// FontPath should point at a UTF-8 TrueType font when names are Korean.
type PDFOptions struct {
	FontPath string
	Title    string
	Now      func() time.Time
}

const (
	pdfMargin = 15.0
	pdfRowH   = 7.0
)

var pdfColWidths = []float64{15, 45, 30, 25, 30, 35}

var pdfEnglishColumns = []string{"ID", "Fish", "Size", "Qty", "Unit price", "Amount"}

// WritePDF renders an A4 table report of rows with a total line.
func WritePDF(w io.Writer, rows []model.InventoryRow, opts PDFOptions) error {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	family := "Helvetica"
	columns := pdfEnglishColumns
	title := "Fish inventory"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if opts.FontPath != "" {
		family = "inventory"
		pdf.AddUTF8Font(family, "", opts.FontPath)
		columns = Columns
		title = "재고 현황"
		tr = func(s string) string { return s }
	}
	if opts.Title != "" {
		title = opts.Title
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	header := func() {
		pdf.SetFont(family, "", 10)
		pdf.SetFillColor(230, 230, 230)
		for i, c := range columns {
			pdf.CellFormat(pdfColWidths[i], pdfRowH, tr(c), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})

	pdf.AddPage()
	pdf.SetFont(family, "", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 9)
	pdf.CellFormat(0, 6, now().Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	header()

	pdf.SetFont(family, "", 10)
	for _, r := range rows {
		cells := []string{
			strconv.FormatInt(r.ID, 10),
			r.Fish,
			r.Size,
			model.FormatMoney(r.Qty),
			model.FormatMoney(r.UnitPrice),
			model.FormatMoney(r.Amount),
		}
		for i, c := range cells {
			align := "L"
			if i == 0 || i >= 3 {
				align = "R"
			}
			pdf.CellFormat(pdfColWidths[i], pdfRowH, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	qty, amount := Totals(rows)
	totalLabel := "Total"
	if opts.FontPath != "" {
		totalLabel = "합계"
	}
	pdf.CellFormat(pdfColWidths[0]+pdfColWidths[1]+pdfColWidths[2], pdfRowH, tr(totalLabel), "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfColWidths[3], pdfRowH, model.FormatMoney(qty), "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfColWidths[4], pdfRowH, "", "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfColWidths[5], pdfRowH, model.FormatMoney(amount), "1", 1, "R", true, 0, "")

	return pdf.Output(w)
}
