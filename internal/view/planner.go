package view

import (
	"SisStore/internal/product"
	"SisStore/pkg/kit"
)

// Scheduler coalesces any number of render requests into one paint per frame.
// Request marks a paint as pending; TakeFrame consumes the mark, returning
// true at most once per burst of requests.
type Scheduler struct {
	pending bool
}

func (s *Scheduler) Request()      { s.pending = true }
func (s *Scheduler) Pending() bool { return s.pending }

func (s *Scheduler) TakeFrame() bool {
	if !s.pending {
		return false
	}
	s.pending = false
	return true
}

// ChipOp describes what to do with the category chip row. The full chip list
// is rebuilt only when the set of categories changed; otherwise the display
// just restyles the active chip.
type ChipOp struct {
	Rebuild    bool
	Categories []product.Category
	ActiveKey  string
}

// GridOp describes what to do with the product grid. On Rebuild the display
// clears and resets scroll to the top; either way the new cards arrive in
// chunks via NextChunk.
type GridOp struct {
	Rebuild bool
	Total   int
}

// Frame is one planned paint.
type Frame struct {
	Chips      ChipOp
	Grid       GridOp
	Generation uint64
}

// Planner tracks what is currently displayed and turns (catalog, filter
// state) into display operations. Each Plan supersedes any chunked append
// still in flight: the stale sequence's generation no longer matches and
// NextChunk refuses to emit for it.
type Planner struct {
	engine  *Engine
	chunk   int
	metrics *kit.Metrics

	placeholder   bool
	renderedFp    string
	renderedCount int
	chipKeys      map[string]struct{}

	generation uint64
	pending    []product.Product
	cursor     int
}

func NewPlanner(engine *Engine, chunkSize int, metrics *kit.Metrics) *Planner {
	if chunkSize <= 0 {
		chunkSize = 32
	}
	return &Planner{
		engine:      engine,
		chunk:       chunkSize,
		metrics:     metrics,
		placeholder: true,
		chipKeys:    map[string]struct{}{},
	}
}

// Placeholder reports whether the grid is still showing loading skeletons.
func (p *Planner) Placeholder() bool { return p.placeholder }

// Rendered reports how many items of the current filter result have been
// emitted to the display.
func (p *Planner) Rendered() int { return p.renderedCount }

// Plan computes the next paint. The caller applies the chip op, clears the
// grid when GridOp.Rebuild is set, and then drains NextChunk with the
// returned generation.
func (p *Planner) Plan(catalog []product.Product, s State) Frame {
	p.metrics.RenderFrame()

	cats := product.Categories(catalog)
	chips := ChipOp{Categories: cats, ActiveKey: s.CategoryKey}
	if !p.sameChipSet(cats) {
		chips.Rebuild = true
		p.chipKeys = keySet(cats)
	}

	visible := p.engine.Filter(catalog, s)
	fp := s.Fingerprint()

	p.generation++
	rebuild := fp != p.renderedFp || p.placeholder || len(visible) < p.renderedCount
	if rebuild {
		p.pending = visible
		p.renderedCount = 0
	} else {
		p.pending = visible[p.renderedCount:]
	}
	p.cursor = 0
	p.renderedFp = fp
	p.placeholder = false

	return Frame{
		Chips:      chips,
		Grid:       GridOp{Rebuild: rebuild, Total: len(visible)},
		Generation: p.generation,
	}
}

// Chunk is one batch of cards for the display.
type Chunk struct {
	Items []product.Product
	Done  bool
}

// NextChunk emits the next batch for the given plan generation. A stale
// generation gets ok=false and must stop emitting; this is how a superseded
// append sequence detects it has been replaced, so two sequences never
// interleave their output.
func (p *Planner) NextChunk(gen uint64) (Chunk, bool) {
	if gen != p.generation {
		return Chunk{}, false
	}
	if p.cursor >= len(p.pending) {
		return Chunk{Done: true}, true
	}

	end := p.cursor + p.chunk
	if end > len(p.pending) {
		end = len(p.pending)
	}
	items := p.pending[p.cursor:end]
	p.cursor = end
	p.renderedCount += len(items)
	p.metrics.ChunkAppended()

	return Chunk{Items: items, Done: p.cursor >= len(p.pending)}, true
}

// Reset returns the planner to the initial skeleton state, for full reloads.
func (p *Planner) Reset() {
	p.placeholder = true
	p.renderedFp = ""
	p.renderedCount = 0
	p.chipKeys = map[string]struct{}{}
	p.pending = nil
	p.cursor = 0
	p.generation++
}

func (p *Planner) sameChipSet(cats []product.Category) bool {
	if len(cats) != len(p.chipKeys) {
		return false
	}
	for _, c := range cats {
		if _, ok := p.chipKeys[c.Key]; !ok {
			return false
		}
	}
	return true
}

func keySet(cats []product.Category) map[string]struct{} {
	m := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		m[c.Key] = struct{}{}
	}
	return m
}
