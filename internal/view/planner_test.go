package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SisStore/internal/product"
)

func drainChunks(t *testing.T, p *Planner, gen uint64) []product.Product {
	t.Helper()
	var out []product.Product
	for i := 0; i < 1000; i++ {
		c, ok := p.NextChunk(gen)
		require.True(t, ok, "sequence unexpectedly superseded")
		out = append(out, c.Items...)
		if c.Done {
			return out
		}
	}
	t.Fatal("chunk sequence did not finish")
	return nil
}

func TestScheduler_CoalescesBursts(t *testing.T) {
	var s Scheduler

	assert.False(t, s.TakeFrame(), "no request, no paint")

	s.Request()
	s.Request()
	s.Request()
	assert.True(t, s.TakeFrame(), "burst collapses into one paint")
	assert.False(t, s.TakeFrame(), "paint consumed the request")

	s.Request()
	assert.True(t, s.TakeFrame())
}

func TestPlanner_FirstPlanRebuildsFromPlaceholder(t *testing.T) {
	p := NewPlanner(NewEngine(), 32, nil)
	assert.True(t, p.Placeholder())

	f := p.Plan(catalogFixture(), DefaultState())
	assert.True(t, f.Grid.Rebuild, "skeleton content forces a rebuild")
	assert.True(t, f.Chips.Rebuild)
	assert.False(t, p.Placeholder())

	items := drainChunks(t, p, f.Generation)
	assert.Len(t, items, len(catalogFixture()))
	assert.Equal(t, len(catalogFixture()), p.Rendered())
}

func TestPlanner_UnchangedFilterAppendsOnlyTail(t *testing.T) {
	p := NewPlanner(NewEngine(), 32, nil)
	cat := catalogFixture()

	f1 := p.Plan(cat[:3], DefaultState())
	drainChunks(t, p, f1.Generation)

	f2 := p.Plan(cat, DefaultState())
	assert.False(t, f2.Grid.Rebuild, "same filter appends instead of rebuilding")

	tail := drainChunks(t, p, f2.Generation)
	require.Len(t, tail, 2, "only the newly visible items are appended")
	assert.Equal(t, "f002", tail[0].ID)
	assert.Equal(t, "m001", tail[1].ID)
	assert.Equal(t, len(cat), p.Rendered())
}

func TestPlanner_FilterChangeRebuilds(t *testing.T) {
	p := NewPlanner(NewEngine(), 32, nil)
	cat := catalogFixture()

	f1 := p.Plan(cat, DefaultState())
	drainChunks(t, p, f1.Generation)

	s := DefaultState()
	s.CategoryKey = "first aid"
	f2 := p.Plan(cat, s)
	assert.True(t, f2.Grid.Rebuild, "changed filter rebuilds from empty")

	items := drainChunks(t, p, f2.Generation)
	assert.Len(t, items, 2)
}

func TestPlanner_ChunkedAppendBatches(t *testing.T) {
	p := NewPlanner(NewEngine(), 2, nil)
	cat := catalogFixture() // 5 items, chunk size 2

	f := p.Plan(cat, DefaultState())

	c1, ok := p.NextChunk(f.Generation)
	require.True(t, ok)
	assert.Len(t, c1.Items, 2)
	assert.False(t, c1.Done)

	c2, ok := p.NextChunk(f.Generation)
	require.True(t, ok)
	assert.Len(t, c2.Items, 2)
	assert.False(t, c2.Done)

	c3, ok := p.NextChunk(f.Generation)
	require.True(t, ok)
	assert.Len(t, c3.Items, 1)
	assert.True(t, c3.Done)
}

func TestPlanner_NewPlanSupersedesInFlightAppend(t *testing.T) {
	p := NewPlanner(NewEngine(), 2, nil)
	cat := catalogFixture()

	f1 := p.Plan(cat, DefaultState())
	_, ok := p.NextChunk(f1.Generation)
	require.True(t, ok, "first chunk of the old sequence still runs")

	s := DefaultState()
	s.Query = "gauze"
	f2 := p.Plan(cat, s)

	_, ok = p.NextChunk(f1.Generation)
	assert.False(t, ok, "stale sequence must detect it was superseded")

	items := drainChunks(t, p, f2.Generation)
	assert.Len(t, items, 1)
}

func TestPlanner_ChipRebuildOnlyWhenSetChanges(t *testing.T) {
	p := NewPlanner(NewEngine(), 32, nil)
	cat := catalogFixture()

	f1 := p.Plan(cat, DefaultState())
	assert.True(t, f1.Chips.Rebuild)
	drainChunks(t, p, f1.Generation)

	// Same categories, different active chip: restyle only.
	s := DefaultState()
	s.CategoryKey = "mobility"
	f2 := p.Plan(cat, s)
	assert.False(t, f2.Chips.Rebuild)
	assert.Equal(t, "mobility", f2.Chips.ActiveKey)
	drainChunks(t, p, f2.Generation)

	// A new category appears: full chip rebuild.
	grown := append(append([]product.Product{}, cat...), product.Product{
		ID: "x001", Name: "Nebulizer", Code: "X001", Category: "Respiratory",
	})
	f3 := p.Plan(grown, s)
	assert.True(t, f3.Chips.Rebuild)
}

func TestPlanner_ShrunkCatalogForcesRebuild(t *testing.T) {
	p := NewPlanner(NewEngine(), 32, nil)
	cat := catalogFixture()

	f1 := p.Plan(cat, DefaultState())
	drainChunks(t, p, f1.Generation)

	f2 := p.Plan(cat[:2], DefaultState())
	assert.True(t, f2.Grid.Rebuild, "fewer visible items than rendered cannot be an append")
	items := drainChunks(t, p, f2.Generation)
	assert.Len(t, items, 2)
}

func TestPlanner_ResetReturnsToSkeleton(t *testing.T) {
	p := NewPlanner(NewEngine(), 32, nil)
	f1 := p.Plan(catalogFixture(), DefaultState())
	drainChunks(t, p, f1.Generation)

	p.Reset()
	assert.True(t, p.Placeholder())
	assert.Equal(t, 0, p.Rendered())

	_, ok := p.NextChunk(f1.Generation)
	assert.False(t, ok, "reset supersedes outstanding sequences")
}
