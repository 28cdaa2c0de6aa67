package ports

import (
	"context"
	"io"
	"time"

	"github.com/csg33k/roster-viewer/internal/domain"
)

// RosterStore owns the authoritative list of employees.
//
// Edit and Delete given an unknown ID leave the roster untouched: Edit
// reports domain.ErrEmployeeNotFound, Delete reports false.
type RosterStore interface {
	Add(ctx context.Context, req domain.AddEmployeeRequest) (domain.Employee, error)
	Get(ctx context.Context, id int64) (domain.Employee, error)
	Edit(ctx context.Context, req domain.EditEmployeeRequest) (domain.Employee, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// List returns the whole roster in insertion order.
	List(ctx context.Context) ([]domain.Employee, error)
	// Visible returns the records matching c in insertion order.
	Visible(ctx context.Context, c domain.FilterCriteria) ([]domain.Employee, error)
	// Departments returns the distinct departments in first-seen order.
	Departments(ctx context.Context) ([]string, error)
}

// Report is what an exporter renders: the visible records plus the
// criteria that produced them.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Criteria    domain.FilterCriteria
	Records     []domain.Employee
}

// RosterExporter renders a Report into a downloadable document.
type RosterExporter interface {
	ContentType() string
	// Extension is the file extension without the dot, e.g. "pdf".
	Extension() string
	Export(ctx context.Context, r Report, w io.Writer) error
}
