package buffer

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/codecell/internal/grapheme"
)

// InsertChar writes ch at the cursor, shifting the rest of the row right,
// and advances the cursor by one column. ch must be exactly one displayable
// grapheme cluster. While select-all is set, ch replaces the whole buffer.
func (b *Buffer) InsertChar(ch string) error {
	if !grapheme.IsDisplayable(ch) {
		return fmt.Errorf("insert %q: %w", ch, ErrInvalidInput)
	}

	change := b.beginChange()
	if b.selectAll {
		b.reset()
	}
	row, col := b.cursor.Row, b.cursor.Col
	b.lines[row] = b.lines[row].insertAt(col, ch)
	b.cursor = Pos{Row: row, Col: col + 1}
	b.finish(change)
	return nil
}

// DeleteCharBefore applies backspace semantics.
//
// With select-all set the buffer is cleared to one empty row. At column 0 of
// a non-first row the row is merged onto the previous one and the cursor
// lands where the previous row used to end. At the very start of the buffer
// it returns ErrOutOfBounds and changes nothing.
func (b *Buffer) DeleteCharBefore() error {
	if b.selectAll {
		change := b.beginChange()
		b.reset()
		b.finish(change)
		return nil
	}

	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return fmt.Errorf("delete before %d:%d: %w", row, col, ErrOutOfBounds)
	}

	change := b.beginChange()
	if col > 0 {
		b.lines[row] = b.lines[row].removeRange(col-1, col)
		b.cursor = Pos{Row: row, Col: col - 1}
		b.finish(change)
		return nil
	}

	// Join with previous row (delete the line break).
	prevLen := len(b.lines[row-1])
	merged := make(Line, 0, prevLen+len(b.lines[row]))
	merged = append(merged, b.lines[row-1]...)
	merged = append(merged, b.lines[row]...)
	b.lines[row-1] = merged
	b.removeRow(row)
	b.cursor = CursorAfterMerge(row, prevLen)
	b.finish(change)
	return nil
}

// InsertLineAfter creates an empty row immediately after row and moves the
// cursor to its start. Row -1 inserts before the first row.
func (b *Buffer) InsertLineAfter(row int) error {
	return b.InsertLineAfterText(row, "")
}

// InsertLineAfterText is InsertLineAfter with the new row seeded with text.
// text must not contain a line break.
func (b *Buffer) InsertLineAfterText(row int, text string) error {
	change := b.beginChange()
	if err := b.insertLineAfter(row, text); err != nil {
		return err
	}
	b.selectAll = false
	b.finish(change)
	return nil
}

func (b *Buffer) insertLineAfter(row int, text string) error {
	if row < -1 || row >= len(b.lines) {
		return fmt.Errorf("insert line after %d: %w", row, ErrOutOfBounds)
	}
	if !validLineText(text) {
		return fmt.Errorf("insert line after %d: %w", row, ErrInvalidInput)
	}
	b.insertRow(row+1, lineFromText(text))
	b.cursor = CursorAfterSplit(row)
	return nil
}

// RemoveLine deletes row and renumbers every row below it. The cursor moves
// to the end of row-1, or to the start of row 0 when row is 0. Removing the
// only row leaves one empty row.
func (b *Buffer) RemoveLine(row int) error {
	if row < 0 || row >= len(b.lines) {
		return fmt.Errorf("remove line %d: %w", row, ErrOutOfBounds)
	}

	change := b.beginChange()
	b.selectAll = false
	if len(b.lines) == 1 {
		b.reset()
		b.finish(change)
		return nil
	}

	prevLen := b.lineLen(row - 1)
	b.removeRow(row)
	b.cursor = CursorAfterRemove(row, prevLen)
	b.finish(change)
	return nil
}

// Indent pads spaces at the cursor up to the next indent stop, counted from
// the cursor column. At most IndentWidth spaces are inserted.
func (b *Buffer) Indent() error {
	change := b.beginChange()
	b.selectAll = false

	row, col := b.cursor.Row, b.cursor.Col
	stop := IndentStop(col, b.opt.IndentWidth)
	b.lines[row] = b.lines[row].insertAt(col, spaces(stop-col)...)
	b.cursor = Pos{Row: row, Col: stop}
	b.finish(change)
	return nil
}

// Outdent removes the spaces directly left of the cursor back to the
// previous indent stop. Non-space text is never removed. At column 0 it
// returns ErrOutOfBounds.
func (b *Buffer) Outdent() error {
	row, col := b.cursor.Row, b.cursor.Col
	if col == 0 {
		return fmt.Errorf("outdent at %d:0: %w", row, ErrOutOfBounds)
	}

	change := b.beginChange()
	b.selectAll = false

	n := col - OutdentStop(col, b.opt.IndentWidth)
	if run := b.lines[row].spacesBefore(col); run < n {
		n = run
	}
	if n > 0 {
		b.lines[row] = b.lines[row].removeRange(col-n, col)
		b.cursor = Pos{Row: row, Col: col - n}
	}
	b.finish(change)
	return nil
}

// InsertText types s at the cursor: each "\n" splits the row and each tab
// indents. Clusters that are not displayable are dropped. While select-all
// is set, s replaces the whole buffer.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		return
	}

	change := b.beginChange()
	if b.selectAll {
		b.reset()
	}
	for i, part := range strings.Split(normalizeNewlines(s), "\n") {
		if i > 0 {
			row, col := b.cursor.Row, b.cursor.Col
			right := append(Line{}, b.lines[row][col:]...)
			b.lines[row] = append(Line{}, b.lines[row][:col]...)
			b.insertRow(row+1, right)
			b.cursor = CursorAfterSplit(row)
		}
		for _, g := range grapheme.Split(part) {
			row, col := b.cursor.Row, b.cursor.Col
			switch {
			case g == "\t":
				stop := IndentStop(col, b.opt.IndentWidth)
				b.lines[row] = b.lines[row].insertAt(col, spaces(stop-col)...)
				b.cursor.Col = stop
			case grapheme.IsDisplayable(g):
				b.lines[row] = b.lines[row].insertAt(col, g)
				b.cursor.Col = col + 1
			}
		}
	}
	b.finish(change)
}

// insertRow places l at index at and renumbers every later row by +1.
func (b *Buffer) insertRow(at int, l Line) {
	b.lines = append(b.lines, nil)
	copy(b.lines[at+1:], b.lines[at:])
	b.lines[at] = l
}

// removeRow drops the row at index row and renumbers every later row by -1.
func (b *Buffer) removeRow(row int) {
	copy(b.lines[row:], b.lines[row+1:])
	b.lines[len(b.lines)-1] = nil
	b.lines = b.lines[:len(b.lines)-1]
}
