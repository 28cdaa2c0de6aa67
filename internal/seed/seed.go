// Package seed reads the starting roster from YAML.
//
//	departments: [HR, Engineering]
//	employees:
//	  - {id: 1, name: Alice, department: HR, role: Manager, salary: "60000", status: Active}
//
// status accepts Active/Inactive or a YAML boolean. Records without an id
// are numbered after the largest explicit one.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/csg33k/roster-viewer/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

var ErrInvalidSeed = errors.New("seed: invalid roster")

// Roster is a decoded seed document.
type Roster struct {
	// Departments offered in the department select even before any
	// employee belongs to them.
	Departments []string
	Employees   []domain.Employee
}

type document struct {
	Departments []string `yaml:"departments"`
	Employees   []record `yaml:"employees"`
}

type record struct {
	ID         int64     `yaml:"id"`
	Name       string    `yaml:"name"`
	Department string    `yaml:"department"`
	Role       string    `yaml:"role"`
	Salary     string    `yaml:"salary"`
	Status     yaml.Node `yaml:"status"`
}

// Default returns the embedded roster.
func Default() (*Roster, error) {
	return Decode(bytes.NewReader(defaultYAML))
}

// Load reads the roster at path, or the embedded default when path is empty.
func Load(path string) (*Roster, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses and validates a seed document.
func Decode(r io.Reader) (*Roster, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("seed: decode yaml: %w", err)
	}

	out := &Roster{Departments: doc.Departments}
	seen := make(map[int64]bool, len(doc.Employees))
	var maxID int64
	for i, rec := range doc.Employees {
		if rec.ID < 0 {
			return nil, fmt.Errorf("%w: employee #%d has negative id", ErrInvalidSeed, i+1)
		}
		if rec.ID > 0 {
			if seen[rec.ID] {
				return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidSeed, rec.ID)
			}
			seen[rec.ID] = true
			maxID = max(maxID, rec.ID)
		}
	}

	for i, rec := range doc.Employees {
		e, err := rec.employee()
		if err != nil {
			return nil, fmt.Errorf("%w: employee #%d: %v", ErrInvalidSeed, i+1, err)
		}
		if e.ID == 0 {
			maxID++
			e.ID = maxID
		}
		out.Employees = append(out.Employees, e)
	}
	return out, nil
}

func (r record) employee() (domain.Employee, error) {
	if strings.TrimSpace(r.Salary) == "" {
		return domain.Employee{}, errors.New("salary is required")
	}
	salary, err := decimal.NewFromString(strings.TrimSpace(r.Salary))
	if err != nil {
		return domain.Employee{}, fmt.Errorf("salary %q: %w", r.Salary, err)
	}
	if r.Status.Kind == 0 {
		return domain.Employee{}, errors.New("status is required")
	}
	active, ok := domain.ParseStatusLabel(r.Status.Value)
	if !ok {
		return domain.Employee{}, fmt.Errorf("status %q is not Active or Inactive", r.Status.Value)
	}

	f := domain.EmployeeFields{
		Name:       r.Name,
		Department: r.Department,
		Role:       r.Role,
		Salary:     salary,
		Active:     active,
	}.Normalize()
	if err := f.Validate(); err != nil {
		return domain.Employee{}, err
	}
	e := domain.Employee{ID: r.ID}
	e.Apply(f)
	return e, nil
}

// DepartmentOptions merges the configured departments with those in use,
// keeping first-seen order and dropping duplicates.
func DepartmentOptions(configured, inUse []string) []string {
	seen := make(map[string]bool, len(configured)+len(inUse))
	var out []string
	for _, list := range [][]string{configured, inUse} {
		for _, d := range list {
			if d == "" || seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
