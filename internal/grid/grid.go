// Package grid is the display side of the roster table: column sorting and
// pagination over whatever the store's Visible projection returned. It
// never filters; the store already did.
package grid

import (
	"slices"
	"strings"

	"github.com/csg33k/roster-viewer/internal/domain"
)

const DefaultPageSize = 10

// Query describes how the table is currently displayed.
type Query struct {
	Sort     string // field key from domain.RosterColumns; empty keeps store order
	Desc     bool
	Page     int // 1-based
	PageSize int
}

// View is one page of the table.
type View struct {
	Columns  []domain.Column
	Rows     []domain.Employee
	Query    Query
	Total    int
	Pages    int
	FirstRow int // 1-based index of Rows[0] in the full result, 0 when empty
	LastRow  int
}

// HasPrev reports whether a previous page exists.
func (v View) HasPrev() bool { return v.Query.Page > 1 }

// HasNext reports whether a following page exists.
func (v View) HasNext() bool { return v.Query.Page < v.Pages }

// Build sorts and paginates records. records is not modified.
func Build(records []domain.Employee, q Query) View {
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if !sortable(q.Sort) {
		q.Sort, q.Desc = "", false
	}

	rows := slices.Clone(records)
	if q.Sort != "" {
		slices.SortStableFunc(rows, func(a, b domain.Employee) int {
			c := compare(a, b, q.Sort)
			if q.Desc {
				return -c
			}
			return c
		})
	}

	v := View{Columns: domain.RosterColumns, Total: len(rows)}
	v.Pages = max(1, (len(rows)+q.PageSize-1)/q.PageSize)
	q.Page = min(max(q.Page, 1), v.Pages)
	v.Query = q

	start := (q.Page - 1) * q.PageSize
	end := min(start+q.PageSize, len(rows))
	v.Rows = rows[start:end]
	if len(v.Rows) > 0 {
		v.FirstRow, v.LastRow = start+1, end
	}
	return v
}

func sortable(field string) bool {
	for _, c := range domain.RosterColumns {
		if c.Field == field {
			return true
		}
	}
	return false
}

func compare(a, b domain.Employee, field string) int {
	switch field {
	case domain.FieldID:
		return cmpInt(a.ID, b.ID)
	case domain.FieldName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case domain.FieldDepartment:
		return strings.Compare(strings.ToLower(a.Department), strings.ToLower(b.Department))
	case domain.FieldRole:
		return strings.Compare(strings.ToLower(a.Role), strings.ToLower(b.Role))
	case domain.FieldSalary:
		return a.Salary.Cmp(b.Salary)
	case domain.FieldStatus:
		return cmpBool(a.Active, b.Active)
	}
	return 0
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Active sorts before Inactive, matching the label order.
func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return 1
	}
	return -1
}
