// Package cart tracks quantity-based line items for the current session and
// renders the shareable cart summary.
package cart

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"SisStore/internal/product"
)

// EmptyMessage is returned by ShareMessage for a cart with no items.
const EmptyMessage = "Cart is empty."

const shareTitle = "🛍️ Sis Store Cart"

// Item is one cart line: a product and a positive quantity.
type Item struct {
	Product product.Product
	Qty     int
}

func (it Item) LineTotal() float64 {
	return float64(it.Qty) * price(it.Product)
}

// Cart holds at most one line item per product identifier, in insertion
// order. Quantity never goes below one; decrementing past it removes the
// line. Session-scoped, never persisted.
type Cart struct {
	items   []Item
	printer *message.Printer
}

func New() *Cart {
	return &Cart{printer: message.NewPrinter(language.AmericanEnglish)}
}

// Add inserts a new line with quantity 1, or increments the existing one.
// Returns the resulting quantity.
func (c *Cart) Add(p product.Product) int {
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Qty++
			return c.items[i].Qty
		}
	}
	c.items = append(c.items, Item{Product: p, Qty: 1})
	return 1
}

func (c *Cart) Increment(id string) {
	for i := range c.items {
		if c.items[i].Product.ID == id {
			c.items[i].Qty++
			return
		}
	}
}

// Decrement lowers the quantity by one, removing the line when it reaches
// zero.
func (c *Cart) Decrement(id string) {
	for i := range c.items {
		if c.items[i].Product.ID == id {
			c.items[i].Qty--
			if c.items[i].Qty <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			}
			return
		}
	}
}

// Remove drops the line regardless of quantity.
func (c *Cart) Remove(id string) {
	for i := range c.items {
		if c.items[i].Product.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, it := range c.items {
		total += it.Qty
	}
	return total
}

func (c *Cart) TotalCost() float64 {
	total := 0.0
	for _, it := range c.items {
		total += it.LineTotal()
	}
	return total
}

// Money formats a price the way the storefront displays it.
func (c *Cart) Money(v float64) string {
	return c.printer.Sprintf("$%.2f", v)
}

// ShareMessage renders the deterministic multi-line cart summary used for
// the Telegram deep link and clipboard copy.
func (c *Cart) ShareMessage() string {
	if len(c.items) == 0 {
		return EmptyMessage
	}

	lines := make([]string, 0, len(c.items)+3)
	lines = append(lines, shareTitle)
	for i, it := range c.items {
		lines = append(lines, fmt.Sprintf(
			"%d. %s (%s)  x%d  — %s each = %s",
			i+1,
			it.Product.Name,
			it.Product.Code,
			it.Qty,
			c.Money(price(it.Product)),
			c.Money(it.LineTotal()),
		))
	}
	lines = append(lines,
		fmt.Sprintf("Items: %d", c.TotalQuantity()),
		fmt.Sprintf("Total: %s", c.Money(c.TotalCost())),
	)
	return strings.Join(lines, "\n")
}

// price guards against NaN or negative values slipping past normalization;
// a price that is not a usable number counts as zero.
func price(p product.Product) float64 {
	if p.Price != p.Price || p.Price < 0 {
		return 0
	}
	return p.Price
}
