package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"

	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/logger"
)

const maxBodyBytes = 64 << 10

// employeePayload is the body of POST and PUT /api/employees. Pointers
// distinguish a missing salary or status from a zero value. Salary accepts
// a JSON number or a numeric string.
type employeePayload struct {
	Name       string           `json:"name" jsonschema:"minLength=1"`
	Department string           `json:"department" jsonschema:"minLength=1"`
	Role       string           `json:"role" jsonschema:"minLength=1"`
	Salary     *decimal.Decimal `json:"salary" jsonschema:"minimum=0"`
	Active     *bool            `json:"active"`
}

// fields applies the same presence rules as the HTML form.
func (p employeePayload) fields() (domain.EmployeeFields, error) {
	f := domain.EmployeeFields{
		Name:       p.Name,
		Department: p.Department,
		Role:       p.Role,
	}.Normalize()
	errs := domain.FieldErrors{}
	if err := f.Validate(); err != nil {
		fe, _ := domain.AsFieldErrors(err)
		for k, v := range fe {
			errs[k] = v
		}
	}
	switch {
	case p.Salary == nil:
		errs["salary"] = "Salary is required"
	case p.Salary.IsNegative():
		errs["salary"] = "Salary must be zero or greater"
	default:
		f.Salary = p.Salary.Round(2)
	}
	if p.Active == nil {
		errs["active"] = "Status is required"
	} else {
		f.Active = *p.Active
	}
	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

// employeeJSON is a record as the API returns it. Salary is a bare JSON
// number, the same form the payload accepts.
type employeeJSON struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Department string      `json:"department"`
	Role       string      `json:"role"`
	Salary     json.Number `json:"salary"`
	Active     bool        `json:"active"`
	Status     string      `json:"status"`
}

func toJSON(e domain.Employee) employeeJSON {
	return employeeJSON{
		ID:         e.ID,
		Name:       e.Name,
		Department: e.Department,
		Role:       e.Role,
		Salary:     json.Number(e.Salary.String()),
		Active:     e.Active,
		Status:     e.StatusLabel(),
	}
}

type listResponse struct {
	Columns []domain.Column `json:"columns"`
	Records []employeeJSON  `json:"records"`
	Total   int             `json:"total"`
}

var payloadSchema = sync.OnceValue(func() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(decimal.Decimal{}) {
				return &jsonschema.Schema{Type: "number"}
			}
			return nil
		},
	}
	s := reflector.Reflect(&employeePayload{})
	s.Title = "Employee"
	return s
})

func (h *Handler) apiSchema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, payloadSchema())
}

// apiList returns the visible records for the same filter parameters the
// grid accepts, in store order.
func (h *Handler) apiList(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, r, err.Error(), codeBadRequest, http.StatusBadRequest)
		return
	}
	records, err := h.store.Visible(r.Context(), c)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	resp := listResponse{
		Columns: domain.RosterColumns,
		Records: make([]employeeJSON, 0, len(records)),
		Total:   len(records),
	}
	for _, e := range records {
		resp.Records = append(resp.Records, toJSON(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) apiGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid id", codeBadRequest, http.StatusBadRequest)
		return
	}
	e, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSON(e))
}

func (h *Handler) apiAdd(w http.ResponseWriter, r *http.Request) {
	f, ok := decodePayload(w, r)
	if !ok {
		return
	}
	e, err := h.store.Add(r.Context(), domain.AddEmployeeRequest{EmployeeFields: f})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	logger.InfoLog(r.Context(), "employee %d added via api", e.ID)
	w.Header().Set("Location", "/api/employees/"+strconv.FormatInt(e.ID, 10))
	writeJSON(w, http.StatusCreated, toJSON(e))
}

func (h *Handler) apiEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid id", codeBadRequest, http.StatusBadRequest)
		return
	}
	f, ok := decodePayload(w, r)
	if !ok {
		return
	}
	e, err := h.store.Edit(r.Context(), domain.EditEmployeeRequest{ID: id, EmployeeFields: f})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	logger.InfoLog(r.Context(), "employee %d updated via api", e.ID)
	writeJSON(w, http.StatusOK, toJSON(e))
}

func (h *Handler) apiDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid id", codeBadRequest, http.StatusBadRequest)
		return
	}
	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if !deleted {
		writeStoreError(w, r, domain.ErrEmployeeNotFound)
		return
	}
	logger.InfoLog(r.Context(), "employee %d deleted via api", id)
	w.WriteHeader(http.StatusNoContent)
}

// decodePayload reads and checks the request body. It answers the request
// itself when ok is false.
func decodePayload(w http.ResponseWriter, r *http.Request) (domain.EmployeeFields, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var p employeePayload
	if err := dec.Decode(&p); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, "request body too large", codeBadRequest, http.StatusRequestEntityTooLarge)
			return domain.EmployeeFields{}, false
		}
		writeError(w, r, "invalid JSON: "+err.Error(), codeBadRequest, http.StatusBadRequest)
		return domain.EmployeeFields{}, false
	}
	f, err := p.fields()
	if err != nil {
		writeStoreError(w, r, err)
		return domain.EmployeeFields{}, false
	}
	return f, true
}
