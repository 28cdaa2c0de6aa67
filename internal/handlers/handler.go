package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/grid"
	"github.com/csg33k/roster-viewer/internal/logger"
	"github.com/csg33k/roster-viewer/internal/ports"
	"github.com/csg33k/roster-viewer/internal/seed"
	"github.com/csg33k/roster-viewer/internal/templates"
)

const defaultTitle = "Employee Roster"

// Options configures the presentation side of the Handler.
type Options struct {
	Title string
	// Departments offered by the filter bar and the form, ahead of any
	// department already present in the roster.
	Departments []string
	PageSize    int
}

type Handler struct {
	store     ports.RosterStore
	exporters map[string]ports.RosterExporter
	opts      Options
	now       func() time.Time
}

func New(store ports.RosterStore, opts Options, exporters ...ports.RosterExporter) *Handler {
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	if opts.PageSize < 1 {
		opts.PageSize = grid.DefaultPageSize
	}
	h := &Handler{
		store:     store,
		exporters: make(map[string]ports.RosterExporter, len(exporters)),
		opts:      opts,
		now:       time.Now,
	}
	for _, e := range exporters {
		h.exporters[e.Extension()] = e
	}
	return h
}

// Routes returns the mux wrapped in the request middleware chain.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /healthz", h.healthz)

	mux.HandleFunc("GET /employees", h.listEmployees)
	mux.HandleFunc("GET /employees/new", h.newEmployeeForm)
	mux.HandleFunc("GET /employees/close", h.closeDialog)
	mux.HandleFunc("POST /employees", h.addEmployee)
	mux.HandleFunc("GET /employees/{id}/edit", h.editEmployeeForm)
	mux.HandleFunc("PUT /employees/{id}", h.updateEmployee)
	mux.HandleFunc("DELETE /employees/{id}", h.deleteEmployee)
	for ext := range h.exporters {
		mux.HandleFunc("GET /employees/export."+ext, h.export(ext))
	}

	mux.HandleFunc("GET /api/employees", h.apiList)
	mux.HandleFunc("POST /api/employees", h.apiAdd)
	mux.HandleFunc("GET /api/employees/schema", h.apiSchema)
	mux.HandleFunc("GET /api/employees/{id}", h.apiGet)
	mux.HandleFunc("PUT /api/employees/{id}", h.apiEdit)
	mux.HandleFunc("DELETE /api/employees/{id}", h.apiDelete)

	return Recoverer(RequestID(Logger(mux)))
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gridData(w, r)
	if !ok {
		return
	}
	depts, err := h.departments(r)
	if err != nil {
		serverError(w, r, err)
		return
	}
	render(w, r, templates.Index(templates.IndexData{
		Title:       h.opts.Title,
		Departments: depts,
		Grid:        g,
	}))
}

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	g, ok := h.gridData(w, r)
	if !ok {
		return
	}
	render(w, r, templates.Grid(g))
}

// gridData runs the store projection for the request's filter and builds
// the requested page. It answers the request itself when ok is false.
func (h *Handler) gridData(w http.ResponseWriter, r *http.Request) (templates.GridData, bool) {
	q := r.URL.Query()
	c, err := parseCriteria(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return templates.GridData{}, false
	}
	records, err := h.store.Visible(r.Context(), c)
	if err != nil {
		serverError(w, r, err)
		return templates.GridData{}, false
	}
	return templates.GridData{
		View:     grid.Build(records, parseGridQuery(q, h.opts.PageSize)),
		Criteria: c,
	}, true
}

func (h *Handler) departments(r *http.Request) ([]string, error) {
	inUse, err := h.store.Departments(r.Context())
	if err != nil {
		return nil, err
	}
	return seed.DepartmentOptions(h.opts.Departments, inUse), nil
}

func (h *Handler) newEmployeeForm(w http.ResponseWriter, r *http.Request) {
	depts, err := h.departments(r)
	if err != nil {
		serverError(w, r, err)
		return
	}
	render(w, r, templates.EmployeeForm(templates.FormData{
		Values:      templates.FormValues{Status: domain.StatusLabelActive},
		Departments: depts,
	}))
}

func (h *Handler) closeDialog(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Empty())
}

func (h *Handler) addEmployee(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fields, raw, errs := parseEmployeeForm(r)
	if errs != nil {
		h.rejectForm(w, r, 0, raw, errs)
		return
	}
	e, err := h.store.Add(r.Context(), domain.AddEmployeeRequest{EmployeeFields: fields})
	if err != nil {
		if fe, ok := domain.AsFieldErrors(err); ok {
			h.rejectForm(w, r, 0, raw, fe)
			return
		}
		serverError(w, r, err)
		return
	}
	logger.InfoLog(r.Context(), "employee %d added (%s, %s)", e.ID, e.Name, e.Department)
	rosterChanged(w, "Employee added")
	render(w, r, templates.Empty())
}

// editEmployeeForm renders the dialog prefilled from the stored record.
func (h *Handler) editEmployeeForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	e, err := h.store.Get(r.Context(), id)
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		h.notFound(w, r, id)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	depts, err := h.departments(r)
	if err != nil {
		serverError(w, r, err)
		return
	}
	render(w, r, templates.EmployeeForm(templates.FormData{
		ID:          e.ID,
		Values:      templates.FormValuesFrom(e),
		Departments: depts,
	}))
}

// updateEmployee handles PUT /employees/{id}. The ID comes from the path
// only; the form cannot change it.
func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fields, raw, errs := parseEmployeeForm(r)
	if errs != nil {
		h.rejectForm(w, r, id, raw, errs)
		return
	}
	e, err := h.store.Edit(r.Context(), domain.EditEmployeeRequest{ID: id, EmployeeFields: fields})
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		logger.WarnLog(r.Context(), "edit of unknown employee %d ignored", id)
		rosterChanged(w, "")
		h.notFound(w, r, id)
		return
	case err != nil:
		if fe, ok := domain.AsFieldErrors(err); ok {
			h.rejectForm(w, r, id, raw, fe)
			return
		}
		serverError(w, r, err)
		return
	}
	logger.InfoLog(r.Context(), "employee %d updated", e.ID)
	rosterChanged(w, "Employee updated")
	render(w, r, templates.Empty())
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if !deleted {
		logger.WarnLog(r.Context(), "delete of unknown employee %d ignored", id)
		rosterChanged(w, "")
	} else {
		logger.InfoLog(r.Context(), "employee %d deleted", id)
		rosterChanged(w, "Employee deleted")
	}
	w.WriteHeader(http.StatusOK)
}

// export streams the visible records through the exporter for ext.
func (h *Handler) export(ext string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exp := h.exporters[ext]
		c, err := parseCriteria(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		records, err := h.store.Visible(r.Context(), c)
		if err != nil {
			serverError(w, r, err)
			return
		}
		now := h.now()
		var buf bytes.Buffer
		if err := exp.Export(r.Context(), ports.Report{
			Title:       h.opts.Title,
			GeneratedAt: now,
			Criteria:    c,
			Records:     records,
		}, &buf); err != nil {
			serverError(w, r, err)
			return
		}
		filename := fmt.Sprintf("roster_%s.%s", now.Format("20060102"), ext)
		w.Header().Set("Content-Type", exp.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, _ = w.Write(buf.Bytes())
	}
}

// rejectForm re-renders the dialog with the user's input and field errors.
func (h *Handler) rejectForm(w http.ResponseWriter, r *http.Request, id int64, raw templates.FormValues, errs domain.FieldErrors) {
	depts, err := h.departments(r)
	if err != nil {
		serverError(w, r, err)
		return
	}
	renderStatus(w, r, http.StatusUnprocessableEntity, templates.EmployeeForm(templates.FormData{
		ID:          id,
		Values:      raw,
		Errors:      errs,
		Departments: depts,
	}))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, id int64) {
	renderStatus(w, r, http.StatusNotFound,
		templates.NotFound(fmt.Sprintf("Employee %d no longer exists.", id)))
}

// rosterChanged tells the page to refresh the grid and, when message is
// set, to show it as a toast.
func rosterChanged(w http.ResponseWriter, message string) {
	events := map[string]any{"rosterChanged": true}
	if message != "" {
		events["showMessage"] = message
	}
	b, _ := json.Marshal(events)
	w.Header().Set("HX-Trigger", string(b))
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	renderStatus(w, r, http.StatusOK, c)
}

// renderStatus buffers c so a template error still yields a clean 500.
func renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
