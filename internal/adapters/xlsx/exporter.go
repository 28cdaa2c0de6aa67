// Package xlsx exports the visible roster as a spreadsheet.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/ports"
)

const SheetName = "Roster"

// Column widths in domain.RosterColumns order.
var columnWidths = []float64{8, 28, 20, 24, 14, 12}

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (*Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (*Exporter) Extension() string { return "xlsx" }

// Export writes one sheet: a styled header row, one row per record, an
// autofilter over the table and a frozen header.
func (*Exporter) Export(ctx context.Context, r ports.Report, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       r.Title,
		Description: fmt.Sprintf("%d employee(s)", len(r.Records)),
		Created:     r.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}); err != nil {
		return fmt.Errorf("xlsx: doc props: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1E1E1E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}
	// 4 is the built-in "#,##0.00" format.
	salaryStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("xlsx: salary style: %w", err)
	}

	for i, col := range domain.RosterColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, col.Header); err != nil {
			return fmt.Errorf("xlsx: header %s: %w", col.Header, err)
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, name, name, columnWidths[i]); err != nil {
			return fmt.Errorf("xlsx: width %s: %w", name, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(domain.RosterColumns), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	for i, e := range r.Records {
		row := i + 2
		for j, col := range domain.RosterColumns {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(SheetName, cell, cellValue(e, col.Field)); err != nil {
				return fmt.Errorf("xlsx: row %d: %w", row, err)
			}
			if col.Field == domain.FieldSalary {
				if err := f.SetCellStyle(SheetName, cell, cell, salaryStyle); err != nil {
					return fmt.Errorf("xlsx: row %d: %w", row, err)
				}
			}
		}
	}

	lastRow := max(len(r.Records)+1, 1)
	bottomRight, _ := excelize.CoordinatesToCellName(len(domain.RosterColumns), lastRow)
	if err := f.AutoFilter(SheetName, "A1:"+bottomRight, nil); err != nil {
		return fmt.Errorf("xlsx: autofilter: %w", err)
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("xlsx: freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

// cellValue keeps ID and salary numeric so spreadsheet sorting and sums work.
func cellValue(e domain.Employee, field string) any {
	switch field {
	case domain.FieldID:
		return e.ID
	case domain.FieldSalary:
		return e.Salary.InexactFloat64()
	}
	return e.Value(field)
}
