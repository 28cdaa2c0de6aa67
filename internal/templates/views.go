// Package templates holds the HTML views of the roster. Each view is a
// templ.Component so handlers render pages and htmx fragments the same way.
// The markup itself lives in html/template files embedded from views/.
package templates

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/grid"
)

//go:embed views/*.html
var viewFS embed.FS

var views = template.Must(template.New("views").Funcs(template.FuncMap{
	"itoa": itoa,
}).ParseFS(viewFS, "views/*.html"))

// GridData is the table fragment: one page of the visible roster plus the
// criteria that produced it, so links can carry the filter along.
type GridData struct {
	View     grid.View
	Criteria domain.FilterCriteria
}

// SortURL toggles direction when field is already the sort column.
func (g GridData) SortURL(field string) string {
	q := grid.Query{Sort: field}
	if g.View.Query.Sort == field {
		q.Desc = !g.View.Query.Desc
	}
	return listURL(g.Criteria, q)
}

// SortMark is the arrow shown next to the active sort header.
func (g GridData) SortMark(field string) string {
	if g.View.Query.Sort != field {
		return ""
	}
	if g.View.Query.Desc {
		return "▼"
	}
	return "▲"
}

// PageURL links to page n with the current sort.
func (g GridData) PageURL(n int) string {
	q := g.View.Query
	q.Page = n
	return listURL(g.Criteria, q)
}

func (g GridData) PrevURL() string { return g.PageURL(g.View.Query.Page - 1) }

func (g GridData) NextURL() string { return g.PageURL(g.View.Query.Page + 1) }

// ExportURL downloads the currently visible records as ext.
func (g GridData) ExportURL(ext string) string {
	return withQuery("/employees/export."+ext, CriteriaValues(g.Criteria))
}

// IndexData is the full page.
type IndexData struct {
	Title       string
	Departments []string
	Grid        GridData
}

// Criteria exposes the grid criteria to the filter bar.
func (d IndexData) Criteria() domain.FilterCriteria { return d.Grid.Criteria }

// StatusOptions lists the choices of the status filter.
func (IndexData) StatusOptions() []domain.StatusFilter {
	return []domain.StatusFilter{domain.StatusAny, domain.StatusActive, domain.StatusInactive}
}

// FormValues are the raw strings of the employee form, kept as typed so a
// rejected submission re-renders exactly what the user entered.
type FormValues struct {
	Name       string
	Department string
	Role       string
	Salary     string
	Status     string
}

// FormValuesFrom fills the form from a stored record.
func FormValuesFrom(e domain.Employee) FormValues {
	return FormValues{
		Name:       e.Name,
		Department: e.Department,
		Role:       e.Role,
		Salary:     e.Salary.StringFixed(2),
		Status:     e.StatusLabel(),
	}
}

// FormData drives the add/edit dialog. ID is zero when adding.
type FormData struct {
	ID          int64
	Values      FormValues
	Errors      domain.FieldErrors
	Departments []string
}

func (f FormData) IsEdit() bool { return f.ID > 0 }

// Title is the dialog heading.
func (f FormData) Title() string {
	if f.IsEdit() {
		return "Edit Employee"
	}
	return "Add Employee"
}

// Error returns the message for field, or "".
func (f FormData) Error(field string) string { return f.Errors[field] }

// DepartmentChoices are the select options; a stored department missing from
// the configured list is kept so editing never silently changes it.
func (f FormData) DepartmentChoices() []string {
	if f.Values.Department == "" {
		return f.Departments
	}
	for _, d := range f.Departments {
		if d == f.Values.Department {
			return f.Departments
		}
	}
	return append([]string{f.Values.Department}, f.Departments...)
}

// StatusChoices are the labels offered by the status select.
func (FormData) StatusChoices() []string {
	return []string{domain.StatusLabelActive, domain.StatusLabelInactive}
}

// NotFoundData is the body of the 404 fragment.
type NotFoundData struct {
	Message string
}

// Index is the full roster page: filter bar, grid and an empty dialog slot.
func Index(d IndexData) templ.Component { return component("index", d) }

// Grid is the table fragment swapped in by the filter bar, sort headers,
// pager and the rosterChanged event.
func Grid(d GridData) templ.Component { return component("grid", d) }

// EmployeeForm is the add/edit dialog fragment.
func EmployeeForm(d FormData) templ.Component { return component("employee-form", d) }

// NotFound is the fragment shown for a record that no longer exists.
func NotFound(message string) templ.Component {
	return component("not-found", NotFoundData{Message: message})
}

// Empty renders nothing. Used to close the dialog.
func Empty() templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error { return nil })
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return views.ExecuteTemplate(w, name, data)
	})
}
