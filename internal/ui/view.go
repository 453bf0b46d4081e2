package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"SisStore/internal/imgurl"
	"SisStore/internal/product"
)

const cardWidth = 26

func (m Model) columns() int {
	cols := (m.width - 2) / (cardWidth + 2)
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.styles.SearchBar.Width(m.width - 4).Render(m.search.View()))
	b.WriteString("\n")
	b.WriteString(m.renderChips())
	b.WriteString("\n")

	switch {
	case m.manual != "":
		b.WriteString(m.renderManual())
	case m.cartOpen:
		b.WriteString(m.renderCart())
	case m.detailOpen:
		b.WriteString(m.renderDetail())
	default:
		b.WriteString(m.renderGrid())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := "Sis Store"
	var notes []string
	if m.loading {
		notes = append(notes, m.spin.View()+"loading")
	}
	if m.fromCache {
		notes = append(notes, "cache")
	}
	if m.fallback {
		notes = append(notes, "offline sample")
	}
	if m.loadErr != nil {
		notes = append(notes, "catalog incomplete")
	}
	status := fmt.Sprintf("%d items", len(m.ld.Products()))
	noteStyle := m.styles.Muted
	if m.loadErr != nil {
		noteStyle = m.styles.Error
	}
	if len(notes) > 0 {
		status += "  " + noteStyle.Render("["+strings.Join(notes, ", ")+"]")
	}

	left := m.styles.Header.Render(title)
	right := m.styles.Muted.Render(status)
	if m.toast != "" {
		right = m.styles.Toast.Render(m.toast)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderChips() string {
	if len(m.chips) == 0 {
		return m.styles.Skeleton.Render("░░░░  ░░░░  ░░░░")
	}
	parts := make([]string, 0, len(m.chips))
	for _, c := range m.chips {
		style := m.styles.Chip
		if c.Key == m.filter.CategoryKey {
			style = m.styles.ChipActive
		}
		parts = append(parts, style.Render(c.Label))
	}
	row := strings.Join(parts, " ")
	row += "  " + m.styles.Muted.Render("sort: "+string(m.filter.Sort))
	return row
}

func (m Model) renderGrid() string {
	if m.planner.Placeholder() {
		return m.renderSkeleton()
	}
	if len(m.visible) == 0 {
		return m.styles.Muted.Render("\n  Nothing matches the current filter.\n")
	}

	cols := m.columns()
	cards := make([]string, 0, len(m.visible))
	for i, p := range m.visible {
		cards = append(cards, m.renderCard(p, i == m.cursor))
	}

	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for i := 0; i < len(cards); i += cols {
		end := i + cols
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}

	grid := m.windowRows(rows, cols)
	if len(m.visible) < m.total {
		grid += "\n" + m.styles.Muted.Render(fmt.Sprintf("  … %d more", m.total-len(m.visible)))
	}
	return grid
}

// windowRows keeps the row holding the cursor on screen.
func (m Model) windowRows(rows []string, cols int) string {
	if len(rows) == 0 {
		return ""
	}
	rowH := lipgloss.Height(rows[0])
	avail := m.height - 8
	fit := avail / rowH
	if fit < 1 {
		fit = 1
	}
	if len(rows) <= fit {
		return strings.Join(rows, "\n")
	}

	cur := m.cursor / cols
	start := cur - fit/2
	start = clamp(start, 0, len(rows)-fit)
	return strings.Join(rows[start:start+fit], "\n")
}

func (m Model) renderCard(p product.Product, selected bool) string {
	style := m.styles.Card
	if selected {
		style = m.styles.CardSelected
	}

	inner := cardWidth - 4
	lines := []string{
		m.styles.CardName.Render(truncate(p.Name, inner)),
		m.styles.CardCode.Render(truncate(p.Code+" · "+p.Category, inner)),
		m.styles.Muted.Render(truncate(imageHint(m.img, p.Img), inner)),
		m.styles.CardPrice.Render(m.bag.Money(p.Price)),
	}
	if qty := m.cartQty(p.ID); qty > 0 {
		lines[3] += "  " + m.styles.CardBadge.Render(fmt.Sprintf("×%d", qty))
	}
	return style.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderSkeleton() string {
	cols := m.columns()
	card := m.styles.Card.Width(cardWidth).Render(
		m.styles.Skeleton.Render("░░░░░░░░░░\n░░░░░░\n░░░░░░░░\n░░░░"))
	row := make([]string, cols)
	for i := range row {
		row[i] = card
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, row...)
}

// renderDetail is the quick view of the focused card: full name, price,
// description, and the display-ready image URL.
func (m Model) renderDetail() string {
	if m.cursor >= len(m.visible) {
		return m.renderGrid()
	}
	p := m.visible[m.cursor]
	width := minInt(m.width-4, 72)

	lines := []string{
		m.styles.Title.Render(p.Name),
		m.styles.CardCode.Render(p.Code + " · " + p.Category),
		m.styles.CardPrice.Render(m.bag.Money(p.Price)),
		m.styles.Divider(width - 6),
	}
	if p.Desc != "" {
		lines = append(lines, p.Desc)
	} else {
		lines = append(lines, m.styles.Muted.Render("No description."))
	}
	if img := displayImage(m.img, p.Img); img != "" {
		lines = append(lines, m.styles.Divider(width-6), m.styles.Muted.Render(img))
	}
	if qty := m.cartQty(p.ID); qty > 0 {
		lines = append(lines, "", m.styles.CardBadge.Render(fmt.Sprintf("in cart ×%d", qty)))
	}
	return m.styles.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderCart() string {
	items := m.bag.Items()
	lines := []string{m.styles.PanelTitle.Render("Cart")}
	if len(items) == 0 {
		lines = append(lines, m.styles.Muted.Render("Cart is empty."))
	}
	for i, it := range items {
		style := m.styles.CartLine
		marker := "  "
		if i == m.cartCursor {
			style = m.styles.CartActive
			marker = "> "
		}
		lines = append(lines, style.Render(fmt.Sprintf(
			"%s%s (%s)  x%d  = %s",
			marker, it.Product.Name, it.Product.Code, it.Qty, m.bag.Money(it.LineTotal()))))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Items: %d   Total: %s",
			m.bag.TotalQuantity(), m.styles.Success.Render(m.bag.Money(m.bag.TotalCost()))),
	)
	if m.shareLink != "" {
		lines = append(lines, m.styles.Muted.Render(truncate(m.shareLink, m.width-12)))
	}
	return m.styles.Panel.Width(minInt(m.width-4, 72)).Render(strings.Join(lines, "\n"))
}

func (m Model) renderManual() string {
	lines := []string{
		m.styles.PanelTitle.Render("Clipboard unavailable — copy manually:"),
		"",
		m.manual,
		"",
		m.styles.Muted.Render(truncate(m.shareLink, m.width-12)),
	}
	return m.styles.Panel.Width(minInt(m.width-4, 72)).Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	help := "enter add · i details · c cart · s share · / search · tab category · f sort · r reload · q quit"
	switch {
	case m.cartOpen:
		help = "+/- qty · x remove · s share · o open telegram · esc close"
	case m.detailOpen:
		help = "enter add · s share · esc close"
	}
	return m.styles.Footer.Render(help)
}

func (m Model) cartQty(id string) int {
	for _, it := range m.bag.Items() {
		if it.Product.ID == id {
			return it.Qty
		}
	}
	return 0
}

// displayImage resolves the reference to the URL the detail view hands out,
// with the large-width transform injected for Cloudinary images.
func displayImage(cfg imgurl.Config, ref string) string {
	resolved := imgurl.Resolve(cfg, ref)
	if imgurl.IsCloudinary(resolved) {
		return imgurl.Sized(resolved, 640)
	}
	return resolved
}

// imageHint reduces the resolved image URL to something meaningful in a
// terminal: the host for remote images, the filename otherwise.
func imageHint(cfg imgurl.Config, ref string) string {
	resolved := imgurl.Resolve(cfg, ref)
	if resolved == "" {
		return "no image"
	}
	if u, err := url.Parse(resolved); err == nil && u.Host != "" {
		return "img: " + u.Host
	}
	return "img: " + resolved
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
