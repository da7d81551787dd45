package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "runway.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[i]
		if i < len(ts)-1 {
			i++
		}
		return t
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(t0)

	costs := []budget.CostEntry{
		{ID: 1, Name: "Rent", Amount: "1200", Description: "flat"},
		{ID: 3, Name: "Food", Amount: "300"},
		{ID: 4, Amount: "abc"},
	}
	_, err := s.Save(ctx, model.Scenario{Name: "  home ", Remaining: "9000", Costs: costs})
	require.NoError(t, err)

	got, err := s.Get(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, "home", got.Name)
	assert.Equal(t, "9000", got.Remaining)
	assert.True(t, got.CreatedAt.Equal(t0))
	if diff := cmp.Diff(costs, got.Costs); diff != "" {
		t.Fatalf("costs mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_ReplacesCostsKeepsCreatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	s.now = fixedClock(t0, t1)

	_, err := s.Save(ctx, model.Scenario{Name: "a", Remaining: "100", Costs: []budget.CostEntry{{ID: 1, Amount: "1"}, {ID: 2, Amount: "2"}}})
	require.NoError(t, err)
	saved, err := s.Save(ctx, model.Scenario{Name: "a", Remaining: "200", Costs: []budget.CostEntry{{ID: 1, Amount: "5"}}})
	require.NoError(t, err)
	assert.True(t, saved.CreatedAt.Equal(t0))
	assert.True(t, saved.UpdatedAt.Equal(t1))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "200", got.Remaining)
	require.Len(t, got.Costs, 1)
	assert.Equal(t, "5", got.Costs[0].Amount)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSave_EmptyName(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Save(context.Background(), model.Scenario{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestList_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = fixedClock(t0, t0.Add(time.Minute))

	_, err := s.Save(ctx, model.Scenario{Name: "old", Remaining: "1", Costs: []budget.CostEntry{{ID: 1, Amount: "1"}}})
	require.NoError(t, err)
	_, err = s.Save(ctx, model.Scenario{Name: "new", Remaining: "2", Costs: []budget.CostEntry{{ID: 1, Amount: "2"}}})
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Name)
	assert.Equal(t, "old", list[1].Name)
	assert.Equal(t, "2", list[0].Costs[0].Amount)
	assert.Equal(t, "1", list[1].Costs[0].Amount)
}

func TestList_OrdersWithinSameSecond(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	t0 := time.Date(2026, 1, 1, 12, 0, 5, 0, time.UTC)
	s.now = fixedClock(t0, t0.Add(500*time.Millisecond))

	_, err := s.Save(ctx, model.Scenario{Name: "b-first", Remaining: "1"})
	require.NoError(t, err)
	_, err = s.Save(ctx, model.Scenario{Name: "a-second", Remaining: "2"})
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a-second", list[0].Name)
	assert.True(t, list[0].UpdatedAt.Equal(t0.Add(500*time.Millisecond)))
	assert.True(t, list[1].UpdatedAt.Equal(t0))
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.Save(ctx, model.Scenario{Name: "gone", Remaining: "1", Costs: []budget.CostEntry{{ID: 1, Amount: "1"}}})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "gone"))
	_, err = s.Get(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "gone"), ErrNotFound)

	var orphans int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM scenario_costs").Scan(&orphans))
	assert.Zero(t, orphans, "costs cascade with their scenario")
}
