// Package catalogtest provides a fake catalog endpoint speaking the
// limit/offset wire protocol, for exercising the fetch and load paths
// without a real backend.
package catalogtest

import (
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"SisStore/internal/product"
	"SisStore/pkg/kit"
)

type Options struct {
	// BareArray serves pages as a JSON array instead of {products, total}.
	BareArray bool
	// OmitTotal drops the total field from object responses.
	OmitTotal bool
	// FailAfter, when > 0, returns HTTP 500 for every request after the
	// first N successful ones.
	FailAfter int
}

// Server counts requests so tests can assert paging behavior.
type Server struct {
	Products []product.Product
	Opts     Options
	Log      *zap.Logger

	requests atomic.Int64
}

func New(products []product.Product, opts Options) *Server {
	return &Server{Products: products, Opts: opts}
}

func (s *Server) Requests() int { return int(s.requests.Load()) }

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(s.Log))
	r.Get("/", s.page)
	return r
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	n := s.requests.Add(1)
	if s.Opts.FailAfter > 0 && n > int64(s.Opts.FailAfter) {
		kit.WriteError(w, r, http.StatusInternalServerError, "induced failure", nil)
		return
	}

	limit := queryInt(r, "limit", 24)
	offset := queryInt(r, "offset", 0)

	page := slice(s.Products, limit, offset)
	if s.Opts.BareArray {
		kit.WriteJSON(w, http.StatusOK, page)
		return
	}

	body := map[string]any{"products": page}
	if !s.Opts.OmitTotal {
		body["total"] = len(s.Products)
	}
	kit.WriteJSON(w, http.StatusOK, body)
}

func slice(list []product.Product, limit, offset int) []product.Product {
	if offset >= len(list) {
		return []product.Product{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// Fixture generates n distinct products spread over a few categories.
func Fixture(n int) []product.Product {
	cats := []string{"Diagnostics", "First Aid", "Mobility"}
	out := make([]product.Product, 0, n)
	for i := 0; i < n; i++ {
		code := fmt.Sprintf("P%03d", i+1)
		out = append(out, product.Product{
			ID:       fmt.Sprintf("p%03d", i+1),
			Name:     fmt.Sprintf("Product %03d", i+1),
			Code:     code,
			Price:    float64(i+1) * 1.5,
			Category: cats[i%len(cats)],
			Desc:     "Fixture item " + code,
		})
	}
	return out
}
