package product

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const defaultCategory = "General"

// Product is a normalized catalog entry. Immutable once fetched.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Code     string  `json:"code"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Img      string  `json:"img"`
	Desc     string  `json:"desc"`
}

// RawProduct mirrors the wire shape before normalization. Fields arrive as
// strings or numbers depending on the sheet export, so everything is decoded
// loosely and coerced afterwards.
type RawProduct struct {
	ID       any `json:"id"`
	Code     any `json:"code"`
	Name     any `json:"name"`
	Price    any `json:"price"`
	Category any `json:"category"`
	Img      any `json:"img"`
	Desc     any `json:"desc"`
}

// Normalize coerces a raw record into a Product. Malformed fields degrade to
// defaults rather than erroring: a bad price becomes 0, a missing category
// becomes "General".
func Normalize(raw RawProduct, idx int) Product {
	return Product{
		ID:       StableID(raw, idx),
		Name:     asString(raw.Name),
		Code:     asString(raw.Code),
		Price:    asPrice(raw.Price),
		Category: NormCategory(asString(raw.Category)),
		Img:      asString(raw.Img),
		Desc:     asString(raw.Desc),
	}
}

// StableID derives the product identifier from the first supplied field of
// id, code, name (trimmed, lower-cased). A record carrying none of them gets
// a positional fallback that is distinct on every call, so two anonymous rows
// never collide.
func StableID(raw RawProduct, idx int) string {
	for _, f := range []any{raw.ID, raw.Code, raw.Name} {
		if f == nil {
			continue
		}
		if s := asString(f); s != "" {
			return strings.ToLower(s)
		}
	}
	return fmt.Sprintf("row-%d-%s", idx, uuid.NewString()[:8])
}

// NormCategory trims the category and substitutes "General" when empty.
func NormCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultCategory
	}
	return s
}

// CatKey is the normalized category compared case-insensitively.
func CatKey(s string) string {
	return strings.ToLower(NormCategory(s))
}

type Category struct {
	Key   string
	Label string
}

// AllKey is the sentinel category matching every product.
const AllKey = "all"

// Categories lists the "all" sentinel followed by one entry per distinct
// category key, in first-seen catalog order.
func Categories(list []Product) []Category {
	out := []Category{{Key: AllKey, Label: "All"}}
	seen := map[string]struct{}{}
	for _, p := range list {
		key := CatKey(p.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Category{Key: key, Label: NormCategory(p.Category)})
	}
	return out
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

func asPrice(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}
