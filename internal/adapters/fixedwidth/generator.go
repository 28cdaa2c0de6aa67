// Package fixedwidth exports the visible roster as fixed-width text records
// for payroll systems that import positional files.
package fixedwidth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/csg33k/roster-viewer/internal/adapters/fixedwidth/layout"
	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/ports"
)

// ErrFieldOverflow is returned when a number has more digits than its
// field holds. Numbers are never truncated.
var ErrFieldOverflow = errors.New("fixedwidth: value does not fit field")

type Generator struct{}

func New() *Generator { return &Generator{} }

func (*Generator) ContentType() string { return "text/plain; charset=utf-8" }

func (*Generator) Extension() string { return "txt" }

// Export writes RH, one RD per record, then RT. Each record is
// layout.RecordLen characters followed by a newline.
func (g *Generator) Export(ctx context.Context, r ports.Report, w io.Writer) error {
	bw := bufio.NewWriter(w)
	write := func(rec string, err error) error {
		if err != nil {
			return err
		}
		_, err = bw.WriteString(rec + "\n")
		return err
	}

	if err := write(buildRH(r)); err != nil {
		return fmt.Errorf("fixedwidth: header: %w", err)
	}
	total := decimal.Zero
	active := 0
	for i, e := range r.Records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := write(buildRD(e)); err != nil {
			return fmt.Errorf("fixedwidth: record %d (employee %d): %w", i+1, e.ID, err)
		}
		total = total.Add(e.Salary)
		if e.Active {
			active++
		}
	}
	if err := write(buildRT(len(r.Records), active, total)); err != nil {
		return fmt.Errorf("fixedwidth: trailer: %w", err)
	}
	return bw.Flush()
}

// ---------------------------------------------------------------------------
// Record builders
// ---------------------------------------------------------------------------

func buildRH(r ports.Report) (string, error) {
	b := newBuf()
	b.put("RecordIdentifier", layout.RH, layout.Header)
	b.put("Title", layout.RH, padAlpha(defaultStr(r.Title, "Employee Roster"), 40))
	b.put("GeneratedDate", layout.RH, r.GeneratedAt.Format("20060102"))
	b.putNumeric("RecordCount", layout.RH, strconv.Itoa(len(r.Records)))
	b.put("FilterName", layout.RH, padAlpha(r.Criteria.Name, 30))
	b.put("FilterDepartment", layout.RH, padAlpha(r.Criteria.Department, 20))
	switch r.Criteria.Status {
	case domain.StatusActive:
		b.put("FilterStatus", layout.RH, layout.StatusActive)
	case domain.StatusInactive:
		b.put("FilterStatus", layout.RH, layout.StatusInactive)
	}
	return b.result()
}

func buildRD(e domain.Employee) (string, error) {
	b := newBuf()
	b.put("RecordIdentifier", layout.RD, layout.Detail)
	b.putNumeric("EmployeeID", layout.RD, strconv.FormatInt(e.ID, 10))
	b.put("Name", layout.RD, padAlpha(e.Name, 40))
	b.put("Department", layout.RD, padAlpha(e.Department, 20))
	b.put("Role", layout.RD, padAlpha(e.Role, 30))
	b.putNumeric("Salary", layout.RD, cents(e.Salary))
	b.put("StatusCode", layout.RD, statusCode(e.Active))
	return b.result()
}

func buildRT(total, active int, salary decimal.Decimal) (string, error) {
	b := newBuf()
	b.put("RecordIdentifier", layout.RT, layout.Trailer)
	b.putNumeric("TotalRecords", layout.RT, strconv.Itoa(total))
	b.putNumeric("ActiveRecords", layout.RT, strconv.Itoa(active))
	b.putNumeric("TotalSalary", layout.RT, cents(salary))
	return b.result()
}

// ---------------------------------------------------------------------------
// Buffer
// ---------------------------------------------------------------------------

type fixedBuf struct {
	data []rune
	err  error
}

func newBuf() *fixedBuf {
	d := make([]rune, layout.RecordLen)
	for i := range d {
		d[i] = ' '
	}
	return &fixedBuf{data: d}
}

// put looks up fieldName in fields and writes value at its position.
// Panics on an unknown field name: that is a layout bug, not user error.
func (b *fixedBuf) put(fieldName string, fields []layout.Field, value string) {
	f, ok := layout.Find(fields, fieldName)
	if !ok {
		panic(fmt.Sprintf("fixedwidth: field %q not in layout", fieldName))
	}
	v := []rune(value)
	if len(v) > f.Len() {
		v = v[:f.Len()]
	}
	copy(b.data[f.Start-1:f.End], v)
}

// putNumeric right-aligns digits in the field, zero-filled. Digits wider
// than the field are recorded as an ErrFieldOverflow and not written.
func (b *fixedBuf) putNumeric(fieldName string, fields []layout.Field, digits string) {
	f, ok := layout.Find(fields, fieldName)
	if !ok {
		panic(fmt.Sprintf("fixedwidth: field %q not in layout", fieldName))
	}
	if len(digits) > f.Len() {
		if b.err == nil {
			b.err = fmt.Errorf("%w: %s needs %d digits, field holds %d", ErrFieldOverflow, fieldName, len(digits), f.Len())
		}
		return
	}
	b.put(fieldName, fields, strings.Repeat("0", f.Len()-len(digits))+digits)
}

func (b *fixedBuf) result() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return string(b.data), nil
}

// ---------------------------------------------------------------------------
// Formatting helpers
// ---------------------------------------------------------------------------

// padAlpha uppercases, drops control characters and pads with spaces to
// exactly n characters.
func padAlpha(s string, n int) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return unicode.ToUpper(r)
	}, strings.TrimSpace(s))
	rs := []rune(s)
	if len(rs) > n {
		return string(rs[:n])
	}
	return s + strings.Repeat(" ", n-len(rs))
}

// cents returns d in whole cents as unpadded digits. Negative amounts
// cannot occur in a valid roster and are written as zero.
func cents(d decimal.Decimal) string {
	c := d.Shift(2).Round(0)
	if c.IsNegative() {
		return "0"
	}
	return c.String()
}

func statusCode(active bool) string {
	if active {
		return layout.StatusActive
	}
	return layout.StatusInactive
}

func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
