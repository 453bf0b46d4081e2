package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"SisStore/internal/catalogtest"
	"SisStore/internal/config"
	"SisStore/internal/product"
	"SisStore/pkg/kit"
)

func newTestGlobals(t *testing.T, products []product.Product) (*Globals, *bytes.Buffer) {
	t.Helper()

	fake := catalogtest.New(products, catalogtest.Options{})
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)

	cfg := config.Default()
	cfg.Endpoint = ts.URL

	out := &bytes.Buffer{}
	return &Globals{
		Cfg:     cfg,
		Log:     zap.NewNop(),
		Metrics: kit.NewMetrics(prometheus.NewRegistry()),
		Out:     out,
		NoCache: true,
	}, out
}

func TestListPrintsTable(t *testing.T) {
	g, out := newTestGlobals(t, catalogtest.Fixture(5))

	cmd := &ListCmd{}
	require.NoError(t, cmd.Run(g))

	assert.Contains(t, out.String(), "CODE")
	assert.Contains(t, out.String(), "Product 001")
	assert.Contains(t, out.String(), "$1.50")
}

func TestListFilters(t *testing.T) {
	g, out := newTestGlobals(t, catalogtest.Fixture(30))

	cmd := &ListCmd{Query: "p007"}
	require.NoError(t, cmd.Run(g))

	assert.Contains(t, out.String(), "Product 007")
	assert.NotContains(t, out.String(), "Product 008")
}

func TestListJSON(t *testing.T) {
	g, out := newTestGlobals(t, catalogtest.Fixture(3))

	cmd := &ListCmd{JSON: true, Sort: "price-desc"}
	require.NoError(t, cmd.Run(g))

	var items []product.Product
	require.NoError(t, json.Unmarshal(out.Bytes(), &items))
	require.Len(t, items, 3)
	assert.Equal(t, "p003", items[0].ID)
}

func TestListPrintsImageColumn(t *testing.T) {
	products := []product.Product{
		{
			ID: "c1", Name: "Cream", Code: "C1", Price: 3, Category: "First Aid",
			Img: "https://res.cloudinary.com/demo/image/upload/v2/cream.jpg",
		},
		{
			ID: "c2", Name: "Tape", Code: "C2", Price: 1, Category: "First Aid",
		},
	}
	g, out := newTestGlobals(t, products)

	cmd := &ListCmd{}
	require.NoError(t, cmd.Run(g))

	assert.Contains(t, out.String(), "IMAGE")
	assert.Contains(t, out.String(), "image/upload/f_auto,q_auto,w_480/v2/cream.jpg")
	assert.Contains(t, out.String(), "-")
}

func TestRunLoggerSelection(t *testing.T) {
	// browse keeps stdout clean: without a file sink its logger is disabled.
	browse := newRunLogger("browse", "")
	assert.False(t, browse.Core().Enabled(zap.InfoLevel))

	list := newRunLogger("list", "")
	assert.True(t, list.Core().Enabled(zap.InfoLevel))

	path := filepath.Join(t.TempDir(), "run.log")
	withFile := newRunLogger("list", path)
	assert.True(t, withFile.Core().Enabled(zap.InfoLevel))
	require.NoError(t, withFile.Sync())
}

func TestListRejectsUnknownSort(t *testing.T) {
	g, _ := newTestGlobals(t, catalogtest.Fixture(1))

	cmd := &ListCmd{Sort: "newest"}
	assert.Error(t, cmd.Run(g))
}

func TestListEmptyCatalogFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Endpoint = "http://127.0.0.1:1"

	out := &bytes.Buffer{}
	g := &Globals{
		Cfg:     cfg,
		Log:     zap.NewNop(),
		Metrics: kit.NewMetrics(prometheus.NewRegistry()),
		Out:     out,
		NoCache: true,
	}

	cmd := &ListCmd{}
	require.NoError(t, cmd.Run(g))
	// Built-in sample catalog keeps the command useful offline.
	assert.Contains(t, out.String(), "Digital Thermometer")
}
