package domain

import "strconv"

// Column binds a grid header to an Employee field key.
type Column struct {
	Header string `json:"header"`
	Field  string `json:"field"`
}

// Field keys, also used as JSON keys and sort keys.
const (
	FieldID         = "id"
	FieldName       = "name"
	FieldDepartment = "department"
	FieldRole       = "role"
	FieldSalary     = "salary"
	FieldStatus     = "status"
)

// RosterColumns is the column-to-field mapping shared by the grid, the
// exports and the JSON API.
var RosterColumns = []Column{
	{Header: "ID", Field: FieldID},
	{Header: "Name", Field: FieldName},
	{Header: "Department", Field: FieldDepartment},
	{Header: "Role", Field: FieldRole},
	{Header: "Salary", Field: FieldSalary},
	{Header: "Status", Field: FieldStatus},
}

// Value renders field of e as display text. Unknown fields yield "".
func (e Employee) Value(field string) string {
	switch field {
	case FieldID:
		return strconv.FormatInt(e.ID, 10)
	case FieldName:
		return e.Name
	case FieldDepartment:
		return e.Department
	case FieldRole:
		return e.Role
	case FieldSalary:
		return e.Salary.StringFixed(2)
	case FieldStatus:
		return e.StatusLabel()
	}
	return ""
}
