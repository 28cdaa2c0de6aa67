package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Status labels shown wherever the Active flag leaves the process
// (grid cells, form selects, seed files, exports).
const (
	StatusLabelActive   = "Active"
	StatusLabelInactive = "Inactive"
)

// Employee is a single roster record. ID is assigned by the store on creation
// and never changes afterwards.
type Employee struct {
	ID         int64
	Name       string
	Department string
	Role       string
	Salary     decimal.Decimal
	Active     bool
}

// StatusLabel maps the Active flag to its display label.
func (e Employee) StatusLabel() string {
	return StatusLabel(e.Active)
}

// StatusLabel maps an active flag to "Active" or "Inactive".
func StatusLabel(active bool) string {
	if active {
		return StatusLabelActive
	}
	return StatusLabelInactive
}

// ParseStatusLabel is the inverse of StatusLabel. It also accepts "true" and
// "false" so boolean-valued inputs map onto the same flag.
func ParseStatusLabel(s string) (active bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "true":
		return true, true
	case "inactive", "false":
		return false, true
	}
	return false, false
}

// EmployeeFields holds every mutable Employee attribute. It is the payload of
// both add and edit.
type EmployeeFields struct {
	Name       string
	Department string
	Role       string
	Salary     decimal.Decimal
	Active     bool
}

// Fields returns the mutable attributes of e.
func (e Employee) Fields() EmployeeFields {
	return EmployeeFields{
		Name:       e.Name,
		Department: e.Department,
		Role:       e.Role,
		Salary:     e.Salary,
		Active:     e.Active,
	}
}

// Apply replaces every mutable attribute of e with f. The ID is untouched.
func (e *Employee) Apply(f EmployeeFields) {
	e.Name = f.Name
	e.Department = f.Department
	e.Role = f.Role
	e.Salary = f.Salary
	e.Active = f.Active
}

// Normalize trims surrounding whitespace from the text fields.
func (f EmployeeFields) Normalize() EmployeeFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Department = strings.TrimSpace(f.Department)
	f.Role = strings.TrimSpace(f.Role)
	return f
}

// Validate checks the presence and range rules shared by add and edit.
// It returns nil or a FieldErrors value.
func (f EmployeeFields) Validate() error {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Department) == "" {
		errs["department"] = "Department is required"
	}
	if strings.TrimSpace(f.Role) == "" {
		errs["role"] = "Role is required"
	}
	if f.Salary.IsNegative() {
		errs["salary"] = "Salary must be zero or greater"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AddEmployeeRequest carries the fields of a new record. The store assigns the ID.
type AddEmployeeRequest struct {
	EmployeeFields
}

// EditEmployeeRequest replaces all mutable fields of the record with ID.
type EditEmployeeRequest struct {
	ID int64
	EmployeeFields
}
