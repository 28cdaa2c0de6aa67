package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/roster-viewer/internal/adapters/memory"
	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/ports"
	"github.com/csg33k/roster-viewer/internal/testutil"
)

func TestStore(t *testing.T) {
	testutil.RunStoreSuite(t, func(t *testing.T, seed []domain.Employee) ports.RosterStore {
		s, err := memory.New(seed)
		require.NoError(t, err)
		return s
	})
}

func TestNew_RejectsBadSeed(t *testing.T) {
	seed := testutil.Seed()
	seed[1].ID = seed[0].ID
	_, err := memory.New(seed)
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	seed = testutil.Seed()
	seed[0].ID = 0
	_, err = memory.New(seed)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestNew_CopiesSeed(t *testing.T) {
	seed := testutil.Seed()
	s, err := memory.New(seed)
	require.NoError(t, err)
	seed[0].Name = "mutated"
	got, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func TestStore_IDsContinueAfterSeedMax(t *testing.T) {
	seed := testutil.Seed()
	seed[1].ID = 40
	s, err := memory.New(seed)
	require.NoError(t, err)
	e, err := s.Add(context.Background(), domain.AddEmployeeRequest{EmployeeFields: testutil.Fields("Carol", "Sales", "Rep", 1, true)})
	require.NoError(t, err)
	assert.Equal(t, int64(41), e.ID)
}

func TestStore_ConcurrentAddsGetDistinctIDs(t *testing.T) {
	s, err := memory.New(nil)
	require.NoError(t, err)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := s.Add(ctx, domain.AddEmployeeRequest{EmployeeFields: testutil.Fields("Worker", "Ops", "Tech", 1, true)})
			if err == nil {
				ids <- e.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, s.Len())
}
