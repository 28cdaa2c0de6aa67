package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/csg33k/roster-viewer/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT    NOT NULL,
	department TEXT    NOT NULL,
	role       TEXT    NOT NULL,
	salary     TEXT    NOT NULL,
	active     INTEGER NOT NULL
);`

type Repository struct {
	db *sql.DB
}

// New opens a private in-memory SQLite database, creates the schema and
// loads seed. The database disappears when the Repository is closed.
func New(ctx context.Context, seed []domain.Employee) (*Repository, error) {
	dsn := fmt.Sprintf("file:roster-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A named in-memory database lives only while a connection is open.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	r := &Repository{db: db}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	if err := r.load(ctx, seed); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) load(ctx context.Context, seed []domain.Employee) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin seed: %w", err)
	}
	defer tx.Rollback()
	seen := make(map[int64]bool, len(seed))
	for _, e := range seed {
		if e.ID <= 0 || seen[e.ID] {
			return fmt.Errorf("sqlite: seed id %d: %w", e.ID, domain.ErrInvalidID)
		}
		seen[e.ID] = true
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO employees (id, name, department, role, salary, active)
			VALUES (?,?,?,?,?,?)`,
			e.ID, e.Name, e.Department, e.Role, e.Salary.String(), boolToInt(e.Active),
		); err != nil {
			return fmt.Errorf("sqlite: seed %d: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// ── Mutations ─────────────────────────────────────────────────────────────────

func (r *Repository) Add(ctx context.Context, req domain.AddEmployeeRequest) (domain.Employee, error) {
	f := req.EmployeeFields.Normalize()
	if err := f.Validate(); err != nil {
		return domain.Employee{}, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO employees (name, department, role, salary, active)
		VALUES (?,?,?,?,?)`,
		f.Name, f.Department, f.Role, f.Salary.String(), boolToInt(f.Active),
	)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("sqlite: insert employee: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Employee{}, fmt.Errorf("sqlite: insert employee: %w", err)
	}
	e := domain.Employee{ID: id}
	e.Apply(f)
	return e, nil
}

func (r *Repository) Edit(ctx context.Context, req domain.EditEmployeeRequest) (domain.Employee, error) {
	f := req.EmployeeFields.Normalize()
	if err := f.Validate(); err != nil {
		return domain.Employee{}, err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE employees
		SET name=?, department=?, role=?, salary=?, active=?
		WHERE id=?`,
		f.Name, f.Department, f.Role, f.Salary.String(), boolToInt(f.Active), req.ID,
	)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("sqlite: update employee %d: %w", req.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Employee{}, fmt.Errorf("sqlite: update employee %d: %w", req.ID, err)
	}
	if n == 0 {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	e := domain.Employee{ID: req.ID}
	e.Apply(f)
	return e, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id=?`, id)
	if err != nil {
		return false, fmt.Errorf("sqlite: delete employee %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: delete employee %d: %w", id, err)
	}
	return n > 0, nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (r *Repository) Get(ctx context.Context, id int64) (domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, department, role, salary, active
		FROM employees WHERE id=?`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return domain.Employee{}, fmt.Errorf("sqlite: get employee %d: %w", id, err)
	}
	return e, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Employee, error) {
	return r.Visible(ctx, domain.FilterCriteria{})
}

// Visible pushes the department and status predicates into SQL. The name
// predicate runs in Go: SQLite's lower() only folds ASCII.
func (r *Repository) Visible(ctx context.Context, c domain.FilterCriteria) ([]domain.Employee, error) {
	var (
		where []string
		args  []any
	)
	if c.Department != "" {
		where = append(where, "department = ?")
		args = append(args, c.Department)
	}
	switch c.Status {
	case domain.StatusActive:
		where = append(where, "active = 1")
	case domain.StatusInactive:
		where = append(where, "active = 0")
	}
	query := `SELECT id, name, department, role, salary, active FROM employees`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	// AUTOINCREMENT ids only grow, so id order is insertion order.
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list employees: %w", err)
	}
	defer rows.Close()
	list := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan employee: %w", err)
		}
		if c.MatchesName(e) {
			list = append(list, e)
		}
	}
	return list, rows.Err()
}

func (r *Repository) Departments(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT department FROM employees
		GROUP BY department ORDER BY MIN(id)`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list departments: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("sqlite: scan department: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(s scanner) (domain.Employee, error) {
	var (
		e      domain.Employee
		salary string
		active int
	)
	if err := s.Scan(&e.ID, &e.Name, &e.Department, &e.Role, &salary, &active); err != nil {
		return domain.Employee{}, err
	}
	amount, err := decimal.NewFromString(salary)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("salary %q: %w", salary, err)
	}
	e.Salary = amount
	e.Active = active == 1
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
