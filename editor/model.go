package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/codecell/buffer"
)

// Model is a Bubble Tea component that renders one buffer and routes keys
// through a Dispatcher. It is the terminal view synchronizer: after every
// dispatched key the changed rows are repainted and the cursor row is kept
// visible.
type Model struct {
	cfg        Config
	buf        *buffer.Buffer
	dispatcher Dispatcher

	focused bool

	viewport viewport.Model

	lastBufVersion uint64
	lastCursor     buffer.Pos
}

// New returns a Model over a fresh buffer seeded from cfg.Text.
func New(cfg Config) Model {
	b := buffer.NewFromText(cfg.Text, buffer.Options{IndentWidth: cfg.IndentWidth})
	return NewWithBuffer(b, cfg)
}

// NewWithBuffer returns a Model over b. The caller keeps ownership of b and
// may mutate it between updates; the Model picks changes up on the next
// Update.
func NewWithBuffer(b *buffer.Buffer, cfg Config) Model {
	cfg = cfg.withDefaults()
	m := Model{
		cfg:        cfg,
		buf:        b,
		dispatcher: Dispatcher{Logger: cfg.Logger},
		focused:    true,
		viewport:   viewport.New(0, 0),
	}
	m.lastBufVersion = b.Version()
	m.lastCursor = b.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// LineCount is the number of buffer rows, which is the content height.
func (m Model) LineCount() int {
	if m.buf == nil {
		return 0
	}
	return m.buf.LineCount()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	default:
		// The host may have mutated the buffer directly.
		m.sync()
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

// CaretCell returns the terminal cell of the cursor relative to the top-left
// of the view, gutter included.
func (m Model) CaretCell() (row, col int) {
	if m.buf == nil {
		return 0, 0
	}
	cur := m.buf.Cursor()
	line, _ := m.buf.Line(cur.Row)
	return cur.Row - m.viewport.YOffset, m.gutterWidth() + prefixCells(line, cur.Col)
}

func (m *Model) sync() {
	if m.syncFromBuffer() {
		m.followCursor()
	}
}

// syncFromBuffer repaints when the buffer moved since the last paint and
// reports whether it did.
func (m *Model) syncFromBuffer() bool {
	if m.buf == nil {
		return false
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return false
	}
	since := m.lastBufVersion
	m.lastBufVersion = ver
	m.lastCursor = cur
	m.rebuildContent()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf, since))
	}
	return true
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	cur := m.buf.Cursor()
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if cur.Row < y {
		m.viewport.SetYOffset(cur.Row)
		return
	}
	if cur.Row >= y+h {
		m.viewport.SetYOffset(cur.Row - h + 1)
	}
}
