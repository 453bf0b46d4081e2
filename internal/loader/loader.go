// Package loader owns the in-memory catalog and drives the progressive load
// sequence: cache-first paint, a small first page, then background pages
// merged in by identifier. It is a step machine: every call to Step performs
// exactly one transition, so the caller chooses how to yield between steps.
// The interactive UI runs one step per scheduler message; the one-shot CLI
// drains them in a loop.
package loader

import (
	"context"
	"time"

	"go.uber.org/zap"

	"SisStore/internal/cache"
	"SisStore/internal/catalog"
	"SisStore/internal/product"
	"SisStore/pkg/kit"
)

type Config struct {
	// FirstPage is the size of the initial fast fetch.
	FirstPage int
	// PageStep is the size of every background page.
	PageStep int
	// MaxItems caps paging when the endpoint reports no usable total.
	MaxItems int
}

func DefaultConfig() Config {
	return Config{FirstPage: 24, PageStep: 60, MaxItems: 100000}
}

type phase int

const (
	phaseCache phase = iota
	phaseFirst
	phaseBackground
	phaseDone
)

// Event reports the outcome of one Step.
type Event struct {
	// Render asks the caller to schedule a repaint.
	Render bool
	// Done marks the end of the loading session.
	Done bool
	// FromCache is set when the catalog was just populated from the cache.
	FromCache bool
	// Fallback is set when the built-in sample catalog was installed.
	Fallback bool
	// NewItems counts products appended by this step.
	NewItems int
	// Err carries the failure that ended the session early. Diagnostic
	// only; the loader has already degraded gracefully.
	Err error
}

type Loader struct {
	client  *catalog.Client
	store   cache.Store
	log     *zap.Logger
	metrics *kit.Metrics
	cfg     Config

	phase     phase
	products  []product.Product
	index     map[string]struct{}
	offset    int
	total     int // -1 until the endpoint reports one
	usedCache bool
}

func New(client *catalog.Client, store cache.Store, cfg Config, log *zap.Logger, metrics *kit.Metrics) *Loader {
	if cfg.FirstPage <= 0 {
		cfg.FirstPage = DefaultConfig().FirstPage
	}
	if cfg.PageStep <= 0 {
		cfg.PageStep = DefaultConfig().PageStep
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultConfig().MaxItems
	}
	if log == nil {
		log = zap.NewNop()
	}
	if store == nil {
		store = cache.Nop{}
	}
	return &Loader{
		client:  client,
		store:   store,
		log:     log,
		metrics: metrics,
		cfg:     cfg,
		index:   map[string]struct{}{},
		total:   -1,
	}
}

// Products is a read-only view of the catalog. The slice is append-only for
// the duration of a session; callers must not mutate it.
func (l *Loader) Products() []product.Product { return l.products }

func (l *Loader) Done() bool { return l.phase == phaseDone }

// Step performs one transition of the load sequence.
func (l *Loader) Step(ctx context.Context) Event {
	switch l.phase {
	case phaseCache:
		return l.stepCache()
	case phaseFirst:
		return l.stepFirst(ctx)
	case phaseBackground:
		return l.stepBackground(ctx)
	default:
		return Event{Done: true}
	}
}

func (l *Loader) stepCache() Event {
	cached, ok := l.store.Read()
	l.metrics.CacheRead(ok)
	l.phase = phaseFirst
	if !ok || len(cached) == 0 {
		return Event{}
	}

	l.usedCache = true
	l.merge(cached)
	l.log.Info("catalog painted from cache", zap.Int("items", len(cached)))
	return Event{Render: true, FromCache: true, NewItems: len(cached)}
}

func (l *Loader) stepFirst(ctx context.Context) Event {
	page, err := l.fetch(ctx, l.cfg.FirstPage, 0)
	if err != nil {
		return l.firstFetchFailed(err)
	}

	var added int
	if !l.usedCache {
		// First paint comes straight from the network.
		l.reset()
		added = l.merge(page.Items)
	} else {
		// Merge over the cache snapshot so overlapping identifiers do
		// not produce duplicate cards.
		added = l.merge(page.Items)
	}

	l.total = page.Total
	l.offset = l.cfg.FirstPage
	l.store.Write(l.products)
	l.metrics.SetItemsLoaded(len(l.products))

	if l.remaining() {
		l.phase = phaseBackground
		return Event{Render: true, NewItems: added}
	}
	l.phase = phaseDone
	return Event{Render: true, Done: true, NewItems: added}
}

func (l *Loader) stepBackground(ctx context.Context) Event {
	if !l.remaining() {
		l.phase = phaseDone
		return Event{Done: true}
	}

	page, err := l.fetch(ctx, l.cfg.PageStep, l.offset)
	if err != nil {
		// Best-effort degrade: keep what is loaded, end the loop.
		l.phase = phaseDone
		l.log.Warn("background page fetch failed", zap.Int("offset", l.offset), zap.Error(err))
		return Event{Done: true, Err: err}
	}
	if len(page.Items) == 0 {
		l.phase = phaseDone
		return Event{Done: true}
	}

	added := l.merge(page.Items)
	l.offset += l.cfg.PageStep
	l.metrics.SetItemsLoaded(len(l.products))

	ev := Event{NewItems: added}
	if added > 0 {
		l.store.Write(l.products)
		ev.Render = true
	}
	if !l.remaining() {
		l.phase = phaseDone
		ev.Done = true
	}
	return ev
}

func (l *Loader) firstFetchFailed(err error) Event {
	l.phase = phaseDone
	l.log.Warn("first page fetch failed", zap.Error(err))
	if len(l.products) > 0 {
		// Cache already painted something usable.
		return Event{Done: true, Err: err}
	}
	l.reset()
	added := l.merge(catalog.Fallback())
	l.metrics.SetItemsLoaded(len(l.products))
	return Event{Render: true, Done: true, Fallback: true, NewItems: added, Err: err}
}

func (l *Loader) fetch(ctx context.Context, limit, offset int) (catalog.Page, error) {
	start := time.Now()
	page, err := l.client.FetchPage(ctx, limit, offset)
	if err != nil {
		l.metrics.FetchFailed()
		return catalog.Page{}, err
	}
	l.metrics.PageFetched(time.Since(start))
	return page, nil
}

// remaining reports whether more pages should be requested. A known total
// bounds the loop; an unknown one pages until an empty page, capped by the
// configured ceiling.
func (l *Loader) remaining() bool {
	bound := l.cfg.MaxItems
	if l.total >= 0 && l.total < bound {
		bound = l.total
	}
	return l.offset < bound
}

// merge appends products whose identifier has not been seen yet, preserving
// page order. Returns the number of items actually added.
func (l *Loader) merge(items []product.Product) int {
	added := 0
	for _, p := range items {
		if _, ok := l.index[p.ID]; ok {
			continue
		}
		l.index[p.ID] = struct{}{}
		l.products = append(l.products, p)
		added++
	}
	return added
}

func (l *Loader) reset() {
	l.products = nil
	l.index = map[string]struct{}{}
}

// Reload discards the catalog and restarts the session from the cache check.
// The only way the catalog ever shrinks.
func (l *Loader) Reload() {
	l.reset()
	l.phase = phaseCache
	l.offset = 0
	l.total = -1
	l.usedCache = false
}

// RunToEnd drains the step machine without yielding, for non-interactive
// callers. onEvent may be nil.
func (l *Loader) RunToEnd(ctx context.Context, onEvent func(Event)) {
	for {
		ev := l.Step(ctx)
		if onEvent != nil {
			onEvent(ev)
		}
		if ev.Done {
			return
		}
	}
}
