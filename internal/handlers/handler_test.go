package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/roster-viewer/internal/adapters/fixedwidth"
	"github.com/csg33k/roster-viewer/internal/adapters/memory"
	"github.com/csg33k/roster-viewer/internal/adapters/pdf"
	"github.com/csg33k/roster-viewer/internal/adapters/xlsx"
	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/logger"
	"github.com/csg33k/roster-viewer/internal/ports"
	"github.com/csg33k/roster-viewer/internal/testutil"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard, "error")
	os.Exit(m.Run())
}

func newTestHandler(t *testing.T) (*Handler, *memory.Store) {
	t.Helper()
	store, err := memory.New(testutil.Seed())
	require.NoError(t, err)
	h := New(store, Options{Departments: []string{"HR", "Engineering", "Sales"}}, pdf.New(), xlsx.New(), fixedwidth.New())
	h.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	return h, store
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	return url.Values{
		"name":       {"Carol"},
		"department": {"Sales"},
		"role":       {"Rep"},
		"salary":     {"50000"},
		"status":     {"Active"},
	}
}

func triggers(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	raw := rec.Header().Get("HX-Trigger")
	require.NotEmpty(t, raw, "HX-Trigger header")
	var events map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &events))
	return events
}

func TestIndex(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h.Routes(), http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "Employee Roster")
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Bob")
	assert.Contains(t, body, `<option value="Sales"`)
}

func TestUnknownPathIs404(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h.Routes(), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListEmployees_Filters(t *testing.T) {
	h, _ := newTestHandler(t)
	routes := h.Routes()

	tests := []struct {
		query   string
		want    []string
		notWant []string
	}{
		{"department=HR", []string{"Alice"}, []string{"Bob"}},
		{"status=inactive", []string{"Bob"}, []string{"Alice"}},
		{"name=AL", []string{"Alice"}, []string{"Bob"}},
		{"name=zz", []string{"No employees match"}, []string{"Alice", "Bob"}},
		{"", []string{"Alice", "Bob"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, routes, http.MethodGet, "/employees?"+tt.query, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			for _, s := range tt.want {
				assert.Contains(t, rec.Body.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestListEmployees_BadStatus(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h.Routes(), http.MethodGet, "/employees?status=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddEmployee(t *testing.T) {
	h, store := newTestHandler(t)
	rec := do(t, h.Routes(), http.MethodPost, "/employees", validForm())

	require.Equal(t, http.StatusOK, rec.Code)
	events := triggers(t, rec)
	assert.Equal(t, true, events["rosterChanged"])
	assert.Equal(t, "Employee added", events["showMessage"])
	assert.Empty(t, rec.Body.String(), "dialog closes")

	all, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[2].ID)
	assert.Equal(t, "Carol", all[2].Name)
	assert.True(t, all[2].Active)
}

func TestAddEmployee_Invalid(t *testing.T) {
	h, store := newTestHandler(t)
	form := validForm()
	form.Set("role", "  ")
	form.Set("salary", "-5")
	form.Set("status", "Maybe")

	rec := do(t, h.Routes(), http.MethodPost, "/employees", form)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Role is required")
	assert.Contains(t, body, "Salary must be zero or greater")
	assert.Contains(t, body, "Status must be Active or Inactive")
	assert.Contains(t, body, `value="Carol"`, "input is kept")
	assert.Empty(t, rec.Header().Get("HX-Trigger"))
	assert.Equal(t, 2, store.Len())
}

func TestEditEmployeeForm(t *testing.T) {
	h, _ := newTestHandler(t)
	routes := h.Routes()

	rec := do(t, routes, http.MethodGet, "/employees/1/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Alice"`)
	assert.Contains(t, rec.Body.String(), `hx-put="/employees/1"`)

	rec = do(t, routes, http.MethodGet, "/employees/99/edit", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Employee 99 no longer exists.")

	rec = do(t, routes, http.MethodGet, "/employees/abc/edit", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewEmployeeForm(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h.Routes(), http.MethodGet, "/employees/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Add Employee")
	assert.Contains(t, rec.Body.String(), `<option value="Active" selected>`)
}

func TestUpdateEmployee(t *testing.T) {
	h, store := newTestHandler(t)
	form := validForm()
	form.Set("name", "Alicia")
	form.Set("status", "Inactive")

	rec := do(t, h.Routes(), http.MethodPut, "/employees/1", form)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Employee updated", triggers(t, rec)["showMessage"])
	e, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, "Alicia", e.Name)
	assert.Equal(t, "Sales", e.Department)
	assert.False(t, e.Active)
	assert.Equal(t, 2, store.Len())
}

func TestUpdateEmployee_Unknown(t *testing.T) {
	h, store := newTestHandler(t)
	before, _ := store.List(context.Background())

	rec := do(t, h.Routes(), http.MethodPut, "/employees/99", validForm())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	after, _ := store.List(context.Background())
	assert.Equal(t, before, after)
}

func TestDeleteEmployee(t *testing.T) {
	h, store := newTestHandler(t)
	routes := h.Routes()

	rec := do(t, routes, http.MethodDelete, "/employees/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Employee deleted", triggers(t, rec)["showMessage"])
	assert.Equal(t, 1, store.Len())
	_, err := store.Get(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	rec = do(t, routes, http.MethodDelete, "/employees/99", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events := triggers(t, rec)
	assert.Equal(t, true, events["rosterChanged"])
	assert.NotContains(t, events, "showMessage")
	assert.Equal(t, 1, store.Len())

	rec = do(t, routes, http.MethodDelete, "/employees/0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCloseDialog(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h.Routes(), http.MethodGet, "/employees/close", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestExport(t *testing.T) {
	h, _ := newTestHandler(t)
	routes := h.Routes()

	rec := do(t, routes, http.MethodGet, "/employees/export.pdf?department=HR", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="roster_20261018.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = do(t, routes, http.MethodGet, "/employees/export.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsx.New().ContentType(), rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip")

	rec = do(t, routes, http.MethodGet, "/employees/export.txt?status=inactive", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3, "header, Bob, trailer")
	assert.Contains(t, lines[1], "BOB")

	rec = do(t, routes, http.MethodGet, "/employees/export.pdf?status=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h.Routes(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequestID(t *testing.T) {
	h, _ := newTestHandler(t)
	routes := h.Routes()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "<script>")
	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, req)
	got := rec.Header().Get("X-Request-ID")
	assert.NotEqual(t, "<script>", got)
	assert.Len(t, got, 36, "replaced with a uuid")
}

// panicStore has a nil RosterStore, so every call panics.
type panicStore struct{ ports.RosterStore }

func TestRecoverer(t *testing.T) {
	h := New(panicStore{}, Options{})
	rec := do(t, h.Routes(), http.MethodGet, "/employees", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, codeInternal, resp.Code)
	assert.NotEmpty(t, resp.RequestID)
}
