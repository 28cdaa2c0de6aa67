// Package pdf renders the visible roster as a printable report.
// The report carries a header bar, the filter that produced it, one table
// row per employee and a totals line. The table header repeats on every page.
package pdf

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/ports"
)

// Relative column widths, in domain.RosterColumns order.
var columnWeights = []float64{0.07, 0.25, 0.18, 0.22, 0.15, 0.13}

type Generator struct{}

func New() *Generator { return &Generator{} }

func (*Generator) ContentType() string { return "application/pdf" }

func (*Generator) Extension() string { return "pdf" }

// Export writes a landscape Letter PDF of r to w.
func (*Generator) Export(ctx context.Context, r ports.Report, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("{nb}")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR
	widths := make([]float64, len(columnWeights))
	for i, wgt := range columnWeights {
		widths[i] = contentW * wgt
	}

	pdf.SetHeaderFuncMode(func() {
		drawHeaderBar(pdf, r, contentW, tr)
		if pdf.PageNo() == 1 {
			drawCriteria(pdf, r.Criteria, contentW, tr)
		}
		drawTableHeader(pdf, widths)
	}, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-13)
		pdf.SetFont("Helvetica", "I", 7.5)
		pdf.SetTextColor(130, 130, 130)
		pdf.CellFormat(contentW/2, 5, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	rowH := 6.5
	total := decimal.Zero
	for i, e := range r.Records {
		shade := 255
		if i%2 == 0 {
			shade = 250
		}
		for j, col := range domain.RosterColumns {
			// Set per cell: an automatic page break runs the header func,
			// which changes font and fill.
			pdf.SetFont("Helvetica", "", 8.5)
			pdf.SetFillColor(shade, shade, shade)
			align := "L"
			if col.Field == domain.FieldSalary || col.Field == domain.FieldID {
				align = "R"
			}
			if col.Field == domain.FieldStatus && !e.Active {
				pdf.SetTextColor(192, 57, 43)
			}
			pdf.CellFormat(widths[j], rowH, tr(e.Value(col.Field)), "1", 0, align, true, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(rowH)
		total = total.Add(e.Salary)
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetFillColor(240, 240, 240)
	labelW := contentW - widths[4] - widths[5]
	pdf.CellFormat(labelW, rowH, fmt.Sprintf("%d employee(s)", len(r.Records)), "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[4], rowH, total.StringFixed(2), "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[5], rowH, "", "1", 1, "L", true, 0, "")

	if pdf.Err() {
		return fmt.Errorf("pdf: render: %w", pdf.Error())
	}
	return pdf.Output(w)
}

func drawHeaderBar(pdf *fpdf.Fpdf, r ports.Report, contentW float64, tr func(string) string) {
	marginL, marginT, _, _ := pdf.GetMargins()
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	title := r.Title
	if title == "" {
		title = "Employee Roster"
	}
	pdf.CellFormat(contentW-4, 7, tr(strings.ToUpper(title)), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginL, marginT+13)
}

func drawCriteria(pdf *fpdf.Fpdf, c domain.FilterCriteria, contentW float64, tr func(string) string) {
	pdf.SetFont("Helvetica", "", 8.5)
	pdf.CellFormat(contentW, 5.5, tr(CriteriaSummary(c)), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func drawTableHeader(pdf *fpdf.Fpdf, widths []float64) {
	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	for i, col := range domain.RosterColumns {
		pdf.CellFormat(widths[i], 7, col.Header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(7)
	pdf.SetTextColor(0, 0, 0)
}

// CriteriaSummary describes c in one line, e.g.
// `Filter: Name contains "al" / Department: HR / Status: Active`.
func CriteriaSummary(c domain.FilterCriteria) string {
	if c.Unconstrained() {
		return "Filter: all employees"
	}
	var parts []string
	if c.Name != "" {
		parts = append(parts, fmt.Sprintf("Name contains %q", c.Name))
	}
	if c.Department != "" {
		parts = append(parts, "Department: "+c.Department)
	}
	if c.Status != domain.StatusAny {
		parts = append(parts, "Status: "+c.Status.Label())
	}
	return "Filter: " + strings.Join(parts, " / ")
}
