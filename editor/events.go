package editor

import "github.com/iw2rmb/codecell/buffer"

// ChangeEvent describes the buffer after one or more effective mutations
// since the previous event.
type ChangeEvent struct {
	Version   uint64
	Cursor    buffer.Pos
	SelectAll bool

	// CursorOffset is the cursor column of its row in UTF-16 code units and
	// DocOffset the same position counted from the start of Text, with each
	// line break as one unit. Hosts that drive a browser selection use them
	// directly.
	CursorOffset int
	DocOffset    int

	// Rows and Removed are the repaint set accumulated since the previous
	// event.
	Rows    []buffer.RowUpdate
	Removed []int

	Text string
}

func buildChangeEvent(b *buffer.Buffer, since uint64) ChangeEvent {
	cur := b.Cursor()
	ev := ChangeEvent{
		Version:      b.Version(),
		Cursor:       cur,
		SelectAll:    b.SelectAll(),
		CursorOffset: b.CursorOffset(buffer.UnitUTF16),
		Text:         b.ExportText(),
	}
	ev.DocOffset, _ = b.OffsetFromPos(cur, buffer.UnitUTF16, buffer.OffsetClamp)
	if ch, ok := b.ChangesSince(since); ok {
		ev.Rows = ch.Rows
		ev.Removed = ch.Removed
	}
	return ev
}

// SubmitMsg is emitted when the user runs the cell.
type SubmitMsg struct {
	Text string
}

// CopyMsg is emitted after the whole buffer was copied.
type CopyMsg struct {
	Text string
	Err  error
}
