package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/roster-viewer/internal/adapters/sqlite"
	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/ports"
	"github.com/csg33k/roster-viewer/internal/testutil"
)

func newRepo(t *testing.T, seed []domain.Employee) *sqlite.Repository {
	t.Helper()
	r, err := sqlite.New(context.Background(), seed)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRepository(t *testing.T) {
	testutil.RunStoreSuite(t, func(t *testing.T, seed []domain.Employee) ports.RosterStore {
		return newRepo(t, seed)
	})
}

func TestRepository_Isolated(t *testing.T) {
	ctx := context.Background()
	a := newRepo(t, testutil.Seed())
	b := newRepo(t, testutil.Seed())

	ok, err := a.Delete(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)

	list, err := b.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2, "repositories must not share a database")
}

func TestRepository_SalaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t, nil)
	f := testutil.Fields("Carol", "Sales", "Rep", 0, true)
	f.Salary = decimal.RequireFromString("123.45")
	e, err := r.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: f})
	require.NoError(t, err)

	got, err := r.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "123.45", got.Salary.StringFixed(2))
}

func TestNew_RejectsDuplicateSeedIDs(t *testing.T) {
	seed := testutil.Seed()
	seed[1].ID = 1
	_, err := sqlite.New(context.Background(), seed)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
