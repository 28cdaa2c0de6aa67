package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/grid"
	"github.com/csg33k/roster-viewer/internal/templates"
)

// parseEmployeeForm reads the add/edit dialog. It returns the typed fields,
// the raw values for re-rendering, and every problem found; errs is nil when
// the submission is acceptable.
func parseEmployeeForm(r *http.Request) (domain.EmployeeFields, templates.FormValues, domain.FieldErrors) {
	raw := templates.FormValues{
		Name:       strings.TrimSpace(r.FormValue("name")),
		Department: strings.TrimSpace(r.FormValue("department")),
		Role:       strings.TrimSpace(r.FormValue("role")),
		Salary:     strings.TrimSpace(r.FormValue("salary")),
		Status:     strings.TrimSpace(r.FormValue("status")),
	}
	f := domain.EmployeeFields{
		Name:       raw.Name,
		Department: raw.Department,
		Role:       raw.Role,
	}
	errs := domain.FieldErrors{}
	if err := f.Validate(); err != nil {
		fe, _ := domain.AsFieldErrors(err)
		for k, v := range fe {
			errs[k] = v
		}
	}

	salary, msg := parseSalary(raw.Salary)
	if msg != "" {
		errs["salary"] = msg
	}
	f.Salary = salary

	switch active, ok := domain.ParseStatusLabel(raw.Status); {
	case raw.Status == "":
		errs["status"] = "Status is required"
	case !ok:
		errs["status"] = fmt.Sprintf("Status must be %s or %s", domain.StatusLabelActive, domain.StatusLabelInactive)
	default:
		f.Active = active
	}

	if len(errs) == 0 {
		return f, raw, nil
	}
	return f, raw, errs
}

// groupedAmount is an amount written with comma thousands separators.
var groupedAmount = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d*)?$`)

// parseSalary accepts a plain decimal amount; a leading "$" and correctly
// placed thousands separators are tolerated. msg is empty when s is valid.
func parseSalary(s string) (d decimal.Decimal, msg string) {
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return decimal.Zero, "Salary is required"
	}
	if strings.Contains(s, ",") {
		if !groupedAmount.MatchString(s) {
			return decimal.Zero, "Salary must be a number"
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, "Salary must be a number"
	}
	if d.IsNegative() {
		return decimal.Zero, "Salary must be zero or greater"
	}
	return d.Round(2), ""
}

// parseCriteria reads the filter bar. The name query is used verbatim,
// surrounding spaces included. An unknown status is an error.
func parseCriteria(q url.Values) (domain.FilterCriteria, error) {
	status, ok := domain.ParseStatusFilter(q.Get("status"))
	if !ok {
		return domain.FilterCriteria{}, fmt.Errorf("unknown status %q", q.Get("status"))
	}
	return domain.FilterCriteria{
		Name:       q.Get("name"),
		Department: strings.TrimSpace(q.Get("department")),
		Status:     status,
	}, nil
}

// parseGridQuery reads sort and page parameters. Malformed numbers fall
// back to the first page; grid.Build clamps the rest.
func parseGridQuery(q url.Values, pageSize int) grid.Query {
	page, _ := strconv.Atoi(q.Get("page"))
	desc, _ := strconv.ParseBool(q.Get("desc"))
	return grid.Query{
		Sort:     q.Get("sort"),
		Desc:     desc,
		Page:     page,
		PageSize: pageSize,
	}
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(key), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
