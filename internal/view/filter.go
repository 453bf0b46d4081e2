// Package view derives what the display should show: the pure filter/sort
// engine, the per-frame render scheduler, and the planner that decides
// between appending new cards and rebuilding the grid.
package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"SisStore/internal/product"
)

type Sort string

const (
	SortPopular   Sort = "popular"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortNameAsc   Sort = "name-asc"
	SortNameDesc  Sort = "name-desc"
)

var sortOrder = []Sort{SortPopular, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

// ParseSort validates a sort mode, defaulting to popularity.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		return SortPopular, nil
	}
	for _, m := range sortOrder {
		if Sort(s) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}

// NextSort cycles through the sort modes in a fixed order.
func NextSort(s Sort) Sort {
	for i, m := range sortOrder {
		if m == s {
			return sortOrder[(i+1)%len(sortOrder)]
		}
	}
	return SortPopular
}

// State is the user-controlled filter configuration.
type State struct {
	Query       string
	CategoryKey string
	Sort        Sort
}

func DefaultState() State {
	return State{CategoryKey: product.AllKey, Sort: SortPopular}
}

// Fingerprint identifies the filter configuration; two states with the same
// fingerprint produce the same visible list for a given catalog.
func (s State) Fingerprint() string {
	return strings.ToLower(strings.TrimSpace(s.Query)) + "\x00" + s.CategoryKey + "\x00" + string(s.Sort)
}

// Engine filters and sorts the catalog. Pure: it never mutates its input and
// identical inputs yield an identical ordered list.
type Engine struct {
	collator *collate.Collator
}

func NewEngine() *Engine {
	return &Engine{collator: collate.New(language.English)}
}

func (e *Engine) Filter(list []product.Product, s State) []product.Product {
	q := strings.ToLower(strings.TrimSpace(s.Query))

	out := make([]product.Product, 0, len(list))
	for _, p := range list {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Code), q) {
			continue
		}
		if s.CategoryKey != "" && s.CategoryKey != product.AllKey &&
			product.CatKey(p.Category) != s.CategoryKey {
			continue
		}
		out = append(out, p)
	}

	switch s.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return e.collator.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return e.collator.CompareString(out[i].Name, out[j].Name) > 0
		})
	default:
		// Popularity keeps catalog insertion order.
	}
	return out
}
