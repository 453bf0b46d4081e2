package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"SisStore/internal/product"
)

var (
	ErrUnavailable = errors.New("catalog unavailable")
	ErrBadStatus   = errors.New("catalog bad status")
	ErrBadPayload  = errors.New("catalog bad payload")
)

// Page is one fetched slice of the remote catalog. Total is the endpoint's
// reported catalog size, or -1 when the endpoint omits it; callers must then
// page until an empty page or their safety ceiling.
type Page struct {
	Items []product.Product
	Total int
}

// Client fetches catalog pages from the configured JSON endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{},
		Log:     log,
	}
}

// wirePage matches the object wire shape. The endpoint may also return a bare
// array of raw records instead.
type wirePage struct {
	Products []product.RawProduct `json:"products"`
	Total    *int                 `json:"total"`
}

// FetchPage issues one GET with limit/offset query parameters and normalizes
// every raw record. It never mutates shared state; on any failure the caller
// gets a zero Page and a single recoverable error.
func (c *Client) FetchPage(ctx context.Context, limit, offset int) (Page, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Page{}, err
	}
	// Always revalidate; the layer below us has its own cache.
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Page{}, err
		}
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return Page{}, ErrUnavailable
		}
		return Page{}, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Page{}, fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, ErrUnavailable
	}

	raws, total, err := decodePage(body)
	if err != nil {
		c.Log.Warn("catalog payload rejected", zap.Error(err), zap.Int("offset", offset))
		return Page{}, err
	}

	items := make([]product.Product, 0, len(raws))
	for i, raw := range raws {
		items = append(items, product.Normalize(raw, offset+i))
	}
	return Page{Items: items, Total: total}, nil
}

// decodePage accepts either {products: [...], total?} or a bare array.
// A missing total is reported as -1 so the caller can approximate it.
func decodePage(body []byte) ([]product.RawProduct, int, error) {
	var obj wirePage
	if err := json.Unmarshal(body, &obj); err == nil && obj.Products != nil {
		if obj.Total != nil {
			return obj.Products, *obj.Total, nil
		}
		return obj.Products, -1, nil
	}

	var arr []product.RawProduct
	if err := json.Unmarshal(body, &arr); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return arr, -1, nil
}
