// Package cache persists a timestamped snapshot of the catalog so the grid
// can paint instantly on the next session. Caching is best-effort: a missing,
// malformed, or expired snapshot reads as absent, and write failures are
// swallowed.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"SisStore/internal/product"
)

const DefaultTTL = 10 * time.Minute

type Store interface {
	Read() ([]product.Product, bool)
	Write([]product.Product)
}

type entry struct {
	TS   int64             `json:"ts"`
	Data []product.Product `json:"data"`
}

// FileStore keeps the snapshot as a single JSON file.
type FileStore struct {
	Path string
	TTL  time.Duration
	Log  *zap.Logger

	now func() time.Time
}

func NewFileStore(path string, ttl time.Duration, log *zap.Logger) *FileStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{Path: path, TTL: ttl, Log: log, now: time.Now}
}

// WithClock overrides the time source. Tests only.
func (s *FileStore) WithClock(now func() time.Time) *FileStore {
	s.now = now
	return s
}

func (s *FileStore) Read() ([]product.Product, bool) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		s.Log.Debug("cache snapshot malformed", zap.Error(err))
		return nil, false
	}
	if e.TS <= 0 || e.Data == nil {
		s.Log.Debug("cache snapshot incomplete")
		return nil, false
	}
	age := s.now().Sub(time.UnixMilli(e.TS))
	if age > s.TTL {
		s.Log.Debug("cache snapshot expired", zap.Duration("age", age))
		return nil, false
	}
	return e.Data, true
}

func (s *FileStore) Write(list []product.Product) {
	raw, err := json.Marshal(entry{TS: s.now().UnixMilli(), Data: list})
	if err != nil {
		s.Log.Debug("cache marshal failed", zap.Error(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		s.Log.Debug("cache dir create failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.Path, raw, 0o644); err != nil {
		s.Log.Debug("cache write failed", zap.Error(err))
	}
}

// Clear removes the snapshot file.
func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Status describes the snapshot on disk without TTL filtering.
type Status struct {
	Present bool
	Items   int
	Age     time.Duration
	Expired bool
}

func (s *FileStore) Status() Status {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return Status{}
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil || e.TS <= 0 || e.Data == nil {
		return Status{}
	}
	age := s.now().Sub(time.UnixMilli(e.TS))
	return Status{Present: true, Items: len(e.Data), Age: age, Expired: age > s.TTL}
}

// MemStore holds the snapshot in memory, for tests and ephemeral sessions.
type MemStore struct {
	mu   sync.RWMutex
	ts   time.Time
	data []product.Product
	ttl  time.Duration
	now  func() time.Time
}

func NewMemStore(ttl time.Duration) *MemStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemStore{ttl: ttl, now: time.Now}
}

func (s *MemStore) Read() ([]product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil || s.now().Sub(s.ts) > s.ttl {
		return nil, false
	}
	out := make([]product.Product, len(s.data))
	copy(out, s.data)
	return out, true
}

func (s *MemStore) Write(list []product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ts = s.now()
	s.data = make([]product.Product, len(list))
	copy(s.data, list)
}

// Nop discards writes and never reads back. Used by --no-cache runs.
type Nop struct{}

func (Nop) Read() ([]product.Product, bool) { return nil, false }
func (Nop) Write([]product.Product)         {}
