// Package testutil holds the behaviour suite every ports.RosterStore
// implementation must pass, plus small fixtures shared by tests.
package testutil

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/ports"
)

// DecimalComparer lets cmp compare decimal.Decimal by value.
var DecimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// Seed is the two-record roster used by the store scenarios.
func Seed() []domain.Employee {
	return []domain.Employee{
		{ID: 1, Name: "Alice", Department: "HR", Role: "Manager", Salary: decimal.NewFromInt(60000), Active: true},
		{ID: 2, Name: "Bob", Department: "Engineering", Role: "Developer", Salary: decimal.NewFromInt(70000), Active: false},
	}
}

// Fields builds a valid EmployeeFields value.
func Fields(name, dept, role string, salary int64, active bool) domain.EmployeeFields {
	return domain.EmployeeFields{Name: name, Department: dept, Role: role, Salary: decimal.NewFromInt(salary), Active: active}
}

// StoreFactory builds a fresh store holding seed.
type StoreFactory func(t *testing.T, seed []domain.Employee) ports.RosterStore

// RunStoreSuite runs the shared RosterStore behaviour against newStore.
func RunStoreSuite(t *testing.T, newStore StoreFactory) {
	ctx := context.Background()

	t.Run("VisibleByDepartment", func(t *testing.T) {
		s := newStore(t, Seed())
		got, err := s.Visible(ctx, domain.FilterCriteria{Department: "HR"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("VisibleUnconstrainedIsIdempotent", func(t *testing.T) {
		s := newStore(t, Seed())
		first, err := s.Visible(ctx, domain.FilterCriteria{})
		require.NoError(t, err)
		second, err := s.Visible(ctx, domain.FilterCriteria{})
		require.NoError(t, err)
		if diff := cmp.Diff(first, second, DecimalComparer); diff != "" {
			t.Errorf("second projection differs (-first +second):\n%s", diff)
		}
		if diff := cmp.Diff(Seed(), first, DecimalComparer); diff != "" {
			t.Errorf("unconstrained projection differs from seed (-want +got):\n%s", diff)
		}
	})

	t.Run("VisibleMatchesFilter", func(t *testing.T) {
		s := newStore(t, Seed())
		_, err := s.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: Fields("Ålice Ström", "HR", "Analyst", 1, false)})
		require.NoError(t, err)
		all, err := s.List(ctx)
		require.NoError(t, err)
		for _, c := range []domain.FilterCriteria{
			{},
			{Name: "LI"},
			{Name: "ålice"},
			{Department: "HR", Status: domain.StatusInactive},
			{Status: domain.StatusActive},
			{Name: "b", Department: "Engineering"},
			{Department: "Nowhere"},
		} {
			got, err := s.Visible(ctx, c)
			require.NoError(t, err)
			if diff := cmp.Diff(domain.Filter(all, c), got, DecimalComparer); diff != "" {
				t.Errorf("Visible(%+v) mismatch (-want +got):\n%s", c, diff)
			}
		}
	})

	t.Run("AddAssignsFreshID", func(t *testing.T) {
		s := newStore(t, Seed())
		e, err := s.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: Fields("Carol", "Sales", "Rep", 50000, true)})
		require.NoError(t, err)
		assert.NotContains(t, []int64{1, 2}, e.ID)
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, e.ID, all[2].ID, "new record is appended")
	})

	t.Run("AddThenFilterByName", func(t *testing.T) {
		s := newStore(t, Seed())
		e, err := s.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: Fields("Carol", "Sales", "Rep", 50000, true)})
		require.NoError(t, err)
		got, err := s.Visible(ctx, domain.FilterCriteria{Name: "Carol"})
		require.NoError(t, err)
		if diff := cmp.Diff([]domain.Employee{e}, got, DecimalComparer); diff != "" {
			t.Errorf("filter by new name (-want +got):\n%s", diff)
		}
	})

	t.Run("AddNeverReusesDeletedID", func(t *testing.T) {
		s := newStore(t, Seed())
		e, err := s.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: Fields("Carol", "Sales", "Rep", 50000, true)})
		require.NoError(t, err)
		ok, err := s.Delete(ctx, e.ID)
		require.NoError(t, err)
		require.True(t, ok)
		next, err := s.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: Fields("Dan", "Sales", "Rep", 1, true)})
		require.NoError(t, err)
		assert.Greater(t, next.ID, e.ID)
	})

	t.Run("AddRejectsInvalidFields", func(t *testing.T) {
		s := newStore(t, Seed())
		_, err := s.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: domain.EmployeeFields{Salary: decimal.NewFromInt(-5)}})
		fe, ok := domain.AsFieldErrors(err)
		require.True(t, ok, "got %v", err)
		assert.Contains(t, fe, "name")
		assert.Contains(t, fe, "salary")
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("EditPreservesID", func(t *testing.T) {
		s := newStore(t, Seed())
		f := Fields("Bobby", "Sales", "Lead", 90000, true)
		e, err := s.Edit(ctx, domain.EditEmployeeRequest{ID: 2, EmployeeFields: f})
		require.NoError(t, err)
		assert.Equal(t, int64(2), e.ID)

		got, err := s.Get(ctx, 2)
		require.NoError(t, err)
		if diff := cmp.Diff(f, got.Fields(), DecimalComparer); diff != "" {
			t.Errorf("edited fields (-want +got):\n%s", diff)
		}
		alice, err := s.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Alice", alice.Name, "other records untouched")
	})

	t.Run("EditUnknownIsNoop", func(t *testing.T) {
		s := newStore(t, Seed())
		_, err := s.Edit(ctx, domain.EditEmployeeRequest{ID: 99, EmployeeFields: Fields("X", "Y", "Z", 1, true)})
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
		all, err := s.List(ctx)
		require.NoError(t, err)
		if diff := cmp.Diff(Seed(), all, DecimalComparer); diff != "" {
			t.Errorf("roster changed (-want +got):\n%s", diff)
		}
	})

	t.Run("DeleteIsExhaustive", func(t *testing.T) {
		s := newStore(t, Seed())
		ok, err := s.Delete(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)
		all, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, int64(2), all[0].ID)
		_, err = s.Get(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	})

	t.Run("DeleteUnknownIsNoop", func(t *testing.T) {
		s := newStore(t, Seed())
		ok, err := s.Delete(ctx, 99)
		require.NoError(t, err)
		assert.False(t, ok)
		all, err := s.List(ctx)
		require.NoError(t, err)
		if diff := cmp.Diff(Seed(), all, DecimalComparer); diff != "" {
			t.Errorf("roster changed (-want +got):\n%s", diff)
		}
	})

	t.Run("Departments", func(t *testing.T) {
		s := newStore(t, Seed())
		_, err := s.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: Fields("Carol", "HR", "Rep", 1, true)})
		require.NoError(t, err)
		_, err = s.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: Fields("Dan", "Sales", "Rep", 1, true)})
		require.NoError(t, err)
		got, err := s.Departments(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"HR", "Engineering", "Sales"}, got)
	})

	t.Run("EmptyRoster", func(t *testing.T) {
		s := newStore(t, nil)
		got, err := s.Visible(ctx, domain.FilterCriteria{})
		require.NoError(t, err)
		assert.Empty(t, got)
		e, err := s.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: Fields("First", "HR", "Rep", 0, true)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), e.ID)
	})
}
