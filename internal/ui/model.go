package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"SisStore/internal/cart"
	"SisStore/internal/imgurl"
	"SisStore/internal/loader"
	"SisStore/internal/product"
	"SisStore/internal/share"
	"SisStore/internal/view"
)

const (
	searchDebounce = 250 * time.Millisecond
	toastLifetime  = 2 * time.Second
)

// Mockable for tests.
var (
	copyText    = share.Copy
	openBrowser = share.OpenBrowser
)

// One loader transition finished.
type stepMsg struct{ ev loader.Event }

// A coalesced paint is due.
type frameMsg struct{}

// The next card batch of an append sequence is due.
type chunkMsg struct{ gen uint64 }

// The search input settled.
type searchMsg struct{ seq int }

type toastGoneMsg struct{ seq int }

type Options struct {
	Loader   *loader.Loader
	Planner  *view.Planner
	Telegram share.Telegram
	Images   imgurl.Config
	PageURL  string
	Log      *zap.Logger
}

// Model is the storefront screen. Loading, painting, and appending all move
// through messages: the loader yields between pages, the scheduler coalesces
// paint requests into frames, and the planner hands out card batches whose
// generation goes stale the moment a newer plan lands.
type Model struct {
	styles Styles
	log    *zap.Logger

	ld      *loader.Loader
	planner *view.Planner
	sched   *view.Scheduler
	filter  view.State

	bag     *cart.Cart
	tg      share.Telegram
	img     imgurl.Config
	pageURL string

	search textinput.Model
	spin   spinner.Model

	width  int
	height int

	chips   []product.Category
	visible []product.Product
	total   int
	gen     uint64

	cursor     int
	cartOpen   bool
	detailOpen bool
	cartCursor int
	manual     string
	shareLink  string

	toast    string
	toastSeq int

	searchSeq   int
	frameQueued bool

	loading   bool
	fromCache bool
	fallback  bool
	loadErr   error
}

func New(opts Options) Model {
	in := textinput.New()
	in.Placeholder = "search name or code"
	in.Prompt = "/ "
	in.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = DefaultStyles().Spinner

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	return Model{
		styles:  DefaultStyles(),
		log:     log,
		ld:      opts.Loader,
		planner: opts.Planner,
		sched:   &view.Scheduler{},
		filter:  view.DefaultState(),
		bag:     cart.New(),
		tg:      opts.Telegram,
		img:     opts.Images,
		pageURL: opts.PageURL,
		search:  in,
		spin:    sp,
		width:   80,
		height:  24,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.stepCmd())
}

func (m Model) stepCmd() tea.Cmd {
	return func() tea.Msg { return stepMsg{ev: m.ld.Step(context.Background())} }
}

func chunkCmd(gen uint64) tea.Cmd {
	return func() tea.Msg { return chunkMsg{gen: gen} }
}

func frameCmd() tea.Cmd {
	return func() tea.Msg { return frameMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.loading {
			cmds = append(cmds, cmd)
		}

	case stepMsg:
		m = m.applyStep(msg.ev)
		if !msg.ev.Done {
			cmds = append(cmds, m.stepCmd())
		}

	case frameMsg:
		m.frameQueued = false
		if m.sched.TakeFrame() {
			frame := m.planner.Plan(m.ld.Products(), m.filter)
			if frame.Chips.Rebuild {
				m.chips = frame.Chips.Categories
			}
			if frame.Grid.Rebuild {
				m.visible = m.visible[:0]
				m.cursor = 0
			}
			m.total = frame.Grid.Total
			m.gen = frame.Generation
			cmds = append(cmds, chunkCmd(m.gen))
		}

	case chunkMsg:
		chunk, ok := m.planner.NextChunk(msg.gen)
		if !ok {
			break
		}
		m.visible = append(m.visible, chunk.Items...)
		if !chunk.Done {
			cmds = append(cmds, chunkCmd(msg.gen))
		}

	case searchMsg:
		if msg.seq == m.searchSeq && m.filter.Query != m.search.Value() {
			m.filter.Query = m.search.Value()
			m.sched.Request()
		}

	case toastGoneMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)
	}

	if m.sched.Pending() && !m.frameQueued {
		m.frameQueued = true
		cmds = append(cmds, frameCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) applyStep(ev loader.Event) Model {
	if ev.FromCache {
		m.fromCache = true
	}
	if ev.Fallback {
		m.fallback = true
	}
	if ev.Err != nil {
		m.loadErr = ev.Err
	}
	if ev.Render {
		m.sched.Request()
	}
	if ev.Done {
		m.loading = false
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}
	if m.manual != "" {
		if msg.String() == "esc" || msg.String() == "enter" {
			m.manual = ""
		}
		return m, nil
	}
	if m.cartOpen {
		return m.handleCartKey(msg)
	}
	if m.detailOpen {
		return m.handleDetailKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.searchSeq++
	seq := m.searchSeq
	debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchMsg{seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cols := m.columns()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.search.Focus()
		return m, textinput.Blink
	case "left", "h":
		m.cursor = clamp(m.cursor-1, 0, len(m.visible)-1)
	case "right", "l":
		m.cursor = clamp(m.cursor+1, 0, len(m.visible)-1)
	case "up", "k":
		m.cursor = clamp(m.cursor-cols, 0, len(m.visible)-1)
	case "down", "j":
		m.cursor = clamp(m.cursor+cols, 0, len(m.visible)-1)
	case "enter", "a":
		if m.cursor < len(m.visible) {
			p := m.visible[m.cursor]
			qty := m.bag.Add(p)
			return m.showToast(fmt.Sprintf("Added %s (x%d)", p.Name, qty))
		}
	case "i":
		if m.cursor < len(m.visible) {
			m.detailOpen = true
		}
	case "tab":
		m.filter.CategoryKey = m.nextChip()
		m.sched.Request()
	case "f":
		m.filter.Sort = view.NextSort(m.filter.Sort)
		m.sched.Request()
	case "c":
		m.cartOpen = true
		m.cartCursor = 0
	case "s":
		return m.shareCart()
	case "r":
		return m.reload()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "i", "q":
		m.detailOpen = false
	case "enter", "a":
		if m.cursor < len(m.visible) {
			p := m.visible[m.cursor]
			qty := m.bag.Add(p)
			return m.showToast(fmt.Sprintf("Added %s (x%d)", p.Name, qty))
		}
	case "s":
		return m.shareCart()
	}
	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	items := m.bag.Items()
	switch msg.String() {
	case "esc", "c", "q":
		m.cartOpen = false
	case "up", "k":
		m.cartCursor = clamp(m.cartCursor-1, 0, len(items)-1)
	case "down", "j":
		m.cartCursor = clamp(m.cartCursor+1, 0, len(items)-1)
	case "+", "=":
		if m.cartCursor < len(items) {
			m.bag.Increment(items[m.cartCursor].Product.ID)
		}
	case "-":
		if m.cartCursor < len(items) {
			m.bag.Decrement(items[m.cartCursor].Product.ID)
			m.cartCursor = clamp(m.cartCursor, 0, m.bag.Len()-1)
		}
	case "x", "backspace", "delete":
		if m.cartCursor < len(items) {
			m.bag.Remove(items[m.cartCursor].Product.ID)
			m.cartCursor = clamp(m.cartCursor, 0, m.bag.Len()-1)
		}
	case "s":
		return m.shareCart()
	case "o":
		if m.shareLink != "" {
			if err := openBrowser(m.shareLink); err != nil {
				return m.showToast("Could not open browser")
			}
			return m.showToast("Opening Telegram…")
		}
	}
	return m, nil
}

// shareCart copies the summary to the clipboard and records the deep link.
// When the clipboard is unavailable the summary is shown in a panel so the
// user can select it by hand.
func (m Model) shareCart() (Model, tea.Cmd) {
	if m.bag.Len() == 0 {
		return m.showToast(cart.EmptyMessage)
	}

	text := m.bag.ShareMessage()
	m.shareLink = share.Link(m.tg, m.pageURL, text)

	if err := copyText(text); err != nil {
		m.log.Debug("clipboard unavailable", zap.Error(err))
		m.manual = text
		return m, nil
	}
	return m.showToast("Cart copied — press o to open Telegram")
}

func (m Model) reload() (Model, tea.Cmd) {
	m.ld.Reload()
	m.planner.Reset()
	m.loading = true
	m.fromCache = false
	m.fallback = false
	m.loadErr = nil
	return m, tea.Batch(m.spin.Tick, m.stepCmd())
}

func (m Model) showToast(text string) (Model, tea.Cmd) {
	m.toast = text
	m.toastSeq++
	seq := m.toastSeq
	return m, tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastGoneMsg{seq: seq}
	})
}

// nextChip cycles the active category through the chip row.
func (m Model) nextChip() string {
	if len(m.chips) == 0 {
		return product.AllKey
	}
	for i, c := range m.chips {
		if c.Key == m.filter.CategoryKey {
			return m.chips[(i+1)%len(m.chips)].Key
		}
	}
	return m.chips[0].Key
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
