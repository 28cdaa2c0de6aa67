// Package memory holds the in-process roster. Nothing is persisted; a new
// Store starts from its seed every time.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/csg33k/roster-viewer/internal/domain"
)

type Store struct {
	mu      sync.RWMutex
	records []domain.Employee
	lastID  int64
}

// New builds a Store holding a copy of seed. Seed IDs must be positive and
// unique; later IDs continue after the largest one.
func New(seed []domain.Employee) (*Store, error) {
	s := &Store{records: make([]domain.Employee, 0, len(seed))}
	seen := make(map[int64]bool, len(seed))
	for _, e := range seed {
		if e.ID <= 0 {
			return nil, fmt.Errorf("memory: seed record %q: %w", e.Name, domain.ErrInvalidID)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("memory: duplicate seed id %d: %w", e.ID, domain.ErrInvalidID)
		}
		seen[e.ID] = true
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
		s.records = append(s.records, e)
	}
	return s, nil
}

// Add appends a record with a fresh ID. IDs come from a counter that only
// moves forward, so a deleted record's ID is never handed out again.
func (s *Store) Add(_ context.Context, req domain.AddEmployeeRequest) (domain.Employee, error) {
	fields := req.EmployeeFields.Normalize()
	if err := fields.Validate(); err != nil {
		return domain.Employee{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	e := domain.Employee{ID: s.lastID}
	e.Apply(fields)
	s.records = append(s.records, e)
	return e, nil
}

func (s *Store) Get(_ context.Context, id int64) (domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	return s.records[i], nil
}

// Edit replaces every mutable field of the matching record.
func (s *Store) Edit(_ context.Context, req domain.EditEmployeeRequest) (domain.Employee, error) {
	fields := req.EmployeeFields.Normalize()
	if err := fields.Validate(); err != nil {
		return domain.Employee{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(req.ID)
	if i < 0 {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	s.records[i].Apply(fields)
	return s.records[i], nil
}

func (s *Store) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return true, nil
}

func (s *Store) List(_ context.Context) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Employee, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) Visible(_ context.Context, c domain.FilterCriteria) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Filter(s.records, c), nil
}

func (s *Store) Departments(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, e := range s.records {
		if !seen[e.Department] {
			seen[e.Department] = true
			out = append(out, e.Department)
		}
	}
	return out, nil
}

// Len reports the current roster size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) indexOf(id int64) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}
