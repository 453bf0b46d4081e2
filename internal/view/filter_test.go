package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"SisStore/internal/product"
)

func catalogFixture() []product.Product {
	return []product.Product{
		{ID: "e001", Name: "Digital Thermometer", Code: "E001", Price: 7.5, Category: "Diagnostics"},
		{ID: "e002", Name: "Blood Pressure Monitor", Code: "E002", Price: 45, Category: "Diagnostics"},
		{ID: "f001", Name: "Gauze Roll", Code: "F001", Price: 2.75, Category: "First Aid"},
		{ID: "f002", Name: "Adhesive Bandages", Code: "F002", Price: 3.5, Category: "First Aid"},
		{ID: "m001", Name: "Aluminium Crutches", Code: "M001", Price: 32, Category: "Mobility"},
	}
}

func TestFilter_AllSentinelMatchesEverything(t *testing.T) {
	e := NewEngine()
	got := e.Filter(catalogFixture(), State{CategoryKey: product.AllKey, Sort: SortPopular})
	assert.Len(t, got, len(catalogFixture()))
}

func TestFilter_CategoryKey(t *testing.T) {
	e := NewEngine()
	got := e.Filter(catalogFixture(), State{CategoryKey: "first aid", Sort: SortPopular})
	assert.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, "first aid", product.CatKey(p.Category))
	}
}

func TestFilter_QueryMatchesNameOrCode(t *testing.T) {
	e := NewEngine()

	byName := e.Filter(catalogFixture(), State{Query: "thermo", CategoryKey: product.AllKey})
	assert.Len(t, byName, 1)
	assert.Equal(t, "e001", byName[0].ID)

	byCode := e.Filter(catalogFixture(), State{Query: "f00", CategoryKey: product.AllKey})
	assert.Len(t, byCode, 2)

	caseInsensitive := e.Filter(catalogFixture(), State{Query: "GAUZE", CategoryKey: product.AllKey})
	assert.Len(t, caseInsensitive, 1)
}

func TestFilter_EmptyQueryMatchesAll(t *testing.T) {
	e := NewEngine()
	got := e.Filter(catalogFixture(), State{Query: "   ", CategoryKey: product.AllKey})
	assert.Len(t, got, len(catalogFixture()))
}

func TestFilter_PopularKeepsInsertionOrder(t *testing.T) {
	e := NewEngine()
	got := e.Filter(catalogFixture(), State{CategoryKey: product.AllKey, Sort: SortPopular})
	for i, p := range got {
		assert.Equal(t, catalogFixture()[i].ID, p.ID)
	}
}

func TestFilter_PriceAscReversedEqualsPriceDesc(t *testing.T) {
	e := NewEngine()
	cat := catalogFixture() // all-distinct prices

	asc := e.Filter(cat, State{CategoryKey: product.AllKey, Sort: SortPriceAsc})
	desc := e.Filter(cat, State{CategoryKey: product.AllKey, Sort: SortPriceDesc})

	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestFilter_NameSort(t *testing.T) {
	e := NewEngine()
	got := e.Filter(catalogFixture(), State{CategoryKey: product.AllKey, Sort: SortNameAsc})
	assert.Equal(t, "f002", got[0].ID, "Adhesive Bandages sorts first")
	assert.Equal(t, "f001", got[len(got)-1].ID, "Gauze Roll sorts last")
}

func TestFilter_PureAndIdempotent(t *testing.T) {
	e := NewEngine()
	cat := catalogFixture()
	s := State{Query: "a", CategoryKey: product.AllKey, Sort: SortPriceDesc}

	first := e.Filter(cat, s)
	second := e.Filter(cat, s)
	assert.Equal(t, first, second)
	assert.Equal(t, catalogFixture(), cat, "input catalog must not be reordered")
}

func TestParseSort(t *testing.T) {
	if _, err := ParseSort("price-asc"); err != nil {
		t.Fatal(err)
	}
	if s, err := ParseSort(""); err != nil || s != SortPopular {
		t.Fatalf("empty sort: %v %v", s, err)
	}
	if _, err := ParseSort("cheapest"); err == nil {
		t.Fatal("expected error for unknown sort")
	}
}

func TestNextSort_CyclesAllModes(t *testing.T) {
	s := SortPopular
	seen := map[Sort]bool{}
	for i := 0; i < len(sortOrder); i++ {
		seen[s] = true
		s = NextSort(s)
	}
	assert.Len(t, seen, len(sortOrder))
	assert.Equal(t, SortPopular, s, "cycle returns to the default")
}

func genProducts(t *rapid.T) []product.Product {
	n := rapid.IntRange(0, 40).Draw(t, "n")
	cats := []string{"Diagnostics", "First Aid", "Mobility", "General"}
	out := make([]product.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, product.Product{
			ID:       rapid.StringMatching(`[a-z][a-z0-9]{2,6}`).Draw(t, "id"),
			Name:     rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,12}`).Draw(t, "name"),
			Code:     rapid.StringMatching(`[A-Z][0-9]{3}`).Draw(t, "code"),
			Price:    float64(rapid.IntRange(0, 10000).Draw(t, "cents")) / 100,
			Category: rapid.SampledFrom(cats).Draw(t, "cat"),
		})
	}
	return out
}

func TestProperty_Filter_CategoryRespected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := NewEngine()
		cat := genProducts(rt)
		key := rapid.SampledFrom([]string{"all", "diagnostics", "first aid", "mobility", "general"}).Draw(rt, "key")

		got := e.Filter(cat, State{CategoryKey: key, Sort: SortPopular})
		if key == product.AllKey {
			if len(got) != len(cat) {
				rt.Fatalf("all sentinel: %d != %d", len(got), len(cat))
			}
			return
		}
		for _, p := range got {
			if product.CatKey(p.Category) != key {
				rt.Fatalf("item %q leaked into category %q", p.ID, key)
			}
		}
	})
}

func TestProperty_Filter_SortedByPrice(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := NewEngine()
		got := e.Filter(genProducts(rt), State{CategoryKey: product.AllKey, Sort: SortPriceAsc})
		for i := 1; i < len(got); i++ {
			if got[i-1].Price > got[i].Price {
				rt.Fatalf("not sorted at %d: %v > %v", i, got[i-1].Price, got[i].Price)
			}
		}
	})
}

func TestProperty_Filter_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := NewEngine()
		cat := genProducts(rt)
		s := State{
			Query:       rapid.StringMatching(`[a-z]{0,3}`).Draw(rt, "q"),
			CategoryKey: product.AllKey,
			Sort:        rapid.SampledFrom(sortOrder).Draw(rt, "sort"),
		}
		a := e.Filter(cat, s)
		b := e.Filter(cat, s)
		if len(a) != len(b) {
			rt.Fatalf("lengths differ: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				rt.Fatalf("order differs at %d", i)
			}
		}
	})
}
