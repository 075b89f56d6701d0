package buffer

import (
	"fmt"
	"strings"
)

// DefaultIndentWidth is the tab stop used by Indent and Outdent.
const DefaultIndentWidth = 4

type Options struct {
	IndentWidth int // default: DefaultIndentWidth
}

// Buffer is the logical text of one code cell: rows, cursor and the
// select-all flag.
type Buffer struct {
	lines   []Line
	version uint64

	cursor    Pos
	selectAll bool

	opt Options

	// history holds recent changes oldest first; see ChangesSince.
	history []Change
}

// New returns a buffer seeded with a single empty row.
func New(opt Options) *Buffer {
	if opt.IndentWidth <= 0 {
		opt.IndentWidth = DefaultIndentWidth
	}
	b := &Buffer{opt: opt}
	b.lines = []Line{{}}
	return b
}

// NewFromText returns a buffer seeded line by line from text.
// Any "\r\n" or "\r" line endings are treated as "\n".
func NewFromText(text string, opt Options) *Buffer {
	b := New(opt)
	_ = b.Seed(text)
	return b
}

// Seed replaces the whole buffer with text, one row per "\n"-separated part,
// by replaying InsertLineAfter. The cursor ends at the start of the last row.
func (b *Buffer) Seed(text string) error {
	text = normalizeNewlines(text)
	parts := strings.Split(text, "\n")

	change := b.beginChange()
	b.lines = []Line{lineFromText(parts[0])}
	b.cursor = Pos{}
	b.selectAll = false
	for i := 1; i < len(parts); i++ {
		if err := b.insertLineAfter(i-1, parts[i]); err != nil {
			return fmt.Errorf("seed row %d: %w", i, err)
		}
	}
	b.finish(change)
	return nil
}

func (b *Buffer) Version() uint64 { return b.version }

// LineCount is the number of rows. It is at least 1.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns a copy of the row at index row.
func (b *Buffer) Line(row int) (Line, bool) {
	if row < 0 || row >= len(b.lines) {
		return nil, false
	}
	return b.lines[row].clone(), true
}

// LineText returns the text of row, or "" when row does not exist.
func (b *Buffer) LineText(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row].String()
}

// Lines returns the text of every row in ascending row order.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.String()
	}
	return out
}

func (b *Buffer) Cursor() Pos { return b.cursor }

// SelectAll reports whether the entire buffer is selected.
func (b *Buffer) SelectAll() bool { return b.selectAll }

func (b *Buffer) IndentWidth() int { return b.opt.IndentWidth }

// SetCursor moves the cursor to p, clamped into the buffer.
func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	change := b.beginChange()
	b.cursor = next
	b.finish(change)
}

// SelectAllLines marks the entire buffer as selected.
func (b *Buffer) SelectAllLines() {
	if b.selectAll {
		return
	}
	change := b.beginChange()
	b.selectAll = true
	b.finish(change)
}

// ClearSelection drops the select-all flag without touching text.
func (b *Buffer) ClearSelection() {
	if !b.selectAll {
		return
	}
	change := b.beginChange()
	b.selectAll = false
	b.finish(change)
}

// Reset clears the buffer back to a single empty row.
func (b *Buffer) Reset() {
	change := b.beginChange()
	b.reset()
	b.finish(change)
}

func (b *Buffer) reset() {
	b.lines = []Line{{}}
	b.cursor = Pos{}
	b.selectAll = false
}

// ExportText joins every row with "\n" in ascending row order.
func (b *Buffer) ExportText() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line.String())
	}
	return sb.String()
}

// String implements fmt.Stringer with the exported text.
func (b *Buffer) String() string { return b.ExportText() }

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

// assertContiguous panics when the row table or cursor break the buffer
// invariants. Rows live in a slice so gaps are impossible short of a bug.
func (b *Buffer) assertContiguous() {
	if len(b.lines) == 0 {
		panic("buffer: no rows after mutation")
	}
	for i, l := range b.lines {
		if l == nil {
			panic(fmt.Sprintf("buffer: row %d missing after renumbering", i))
		}
	}
	if b.cursor.Row < 0 || b.cursor.Row >= len(b.lines) {
		panic(fmt.Sprintf("buffer: cursor row %d outside [0,%d)", b.cursor.Row, len(b.lines)))
	}
	if b.cursor.Col < 0 || b.cursor.Col > len(b.lines[b.cursor.Row]) {
		panic(fmt.Sprintf("buffer: cursor col %d outside [0,%d]", b.cursor.Col, len(b.lines[b.cursor.Row])))
	}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
