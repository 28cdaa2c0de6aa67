package domain

import "strings"

// StatusFilter is the tri-state status constraint of FilterCriteria.
type StatusFilter int

const (
	StatusAny StatusFilter = iota
	StatusActive
	StatusInactive
)

// ParseStatusFilter reads the "status" query value. The empty string and
// "all" mean unconstrained.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any":
		return StatusAny, true
	case "active", "true":
		return StatusActive, true
	case "inactive", "false":
		return StatusInactive, true
	}
	return StatusAny, false
}

// String returns the query-string form accepted by ParseStatusFilter.
func (s StatusFilter) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	default:
		return ""
	}
}

// Label is the human-readable form used in report headers.
func (s StatusFilter) Label() string {
	switch s {
	case StatusActive:
		return StatusLabelActive
	case StatusInactive:
		return StatusLabelInactive
	default:
		return "All"
	}
}

// FilterCriteria are the active constraints of the roster view.
// Zero value matches every record.
type FilterCriteria struct {
	Name       string // case-insensitive substring
	Department string // exact match, empty means any
	Status     StatusFilter
}

// Unconstrained reports whether c matches every record.
func (c FilterCriteria) Unconstrained() bool {
	return c.Name == "" && c.Department == "" && c.Status == StatusAny
}

// MatchesName is the case-insensitive substring predicate.
func (c FilterCriteria) MatchesName(e Employee) bool {
	if c.Name == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), strings.ToLower(c.Name))
}

// MatchesDepartment is the exact department predicate.
func (c FilterCriteria) MatchesDepartment(e Employee) bool {
	return c.Department == "" || e.Department == c.Department
}

// MatchesStatus is the tri-state status predicate.
func (c FilterCriteria) MatchesStatus(e Employee) bool {
	switch c.Status {
	case StatusActive:
		return e.Active
	case StatusInactive:
		return !e.Active
	default:
		return true
	}
}

// Matches is the conjunction of the name, department and status predicates.
func (c FilterCriteria) Matches(e Employee) bool {
	return c.MatchesName(e) && c.MatchesDepartment(e) && c.MatchesStatus(e)
}

// Filter returns the records of roster matching c, in roster order.
// The result never aliases roster.
func Filter(roster []Employee, c FilterCriteria) []Employee {
	out := make([]Employee, 0, len(roster))
	for _, e := range roster {
		if c.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
