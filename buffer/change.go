package buffer

import "sort"

// maxHistory bounds the change log. Older entries are folded together
// rather than dropped so ChangesSince never loses a row.
const maxHistory = 256

// Change is the view-facing summary of one effective mutation: which rows
// must be repainted, which trailing row indices disappeared, and where the
// caret goes.
type Change struct {
	VersionBefore uint64
	VersionAfter  uint64
	CursorBefore  Pos
	CursorAfter   Pos

	// Rows lists every row whose text at that index differs from before,
	// in ascending row order.
	Rows []RowUpdate
	// Removed lists row indices that existed before and no longer do.
	Removed []int

	LineCountBefore int
	LineCount       int
	SelectAllBefore bool
	SelectAllAfter  bool
}

// TextChanged reports whether any row was repainted or removed.
func (c Change) TextChanged() bool {
	return len(c.Rows) > 0 || len(c.Removed) > 0
}

type changeBuilder struct {
	versionBefore   uint64
	cursorBefore    Pos
	selectAllBefore bool
	linesBefore     []string
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if len(b.history) == 0 {
		return Change{}, false
	}
	return cloneChange(b.history[len(b.history)-1]), true
}

// ChangesSince folds every change made after version into one Change, as if
// the buffer had moved from version to its current state in a single step.
// Rows may include indices whose text ended up unchanged.
func (b *Buffer) ChangesSince(version uint64) (Change, bool) {
	var (
		out Change
		ok  bool
	)
	for _, c := range b.history {
		if c.VersionAfter <= version {
			continue
		}
		if !ok {
			out, ok = cloneChange(c), true
			continue
		}
		out = mergeChanges(out, c)
	}
	return out, ok
}

// mergeChanges combines a with the change that directly followed it.
func mergeChanges(a, b Change) Change {
	text := make(map[int]string, len(a.Rows)+len(b.Rows))
	for _, r := range a.Rows {
		if r.Row < b.LineCount {
			text[r.Row] = r.Text
		}
	}
	for _, r := range b.Rows {
		text[r.Row] = r.Text
	}
	rows := make([]RowUpdate, 0, len(text))
	for row, t := range text {
		rows = append(rows, RowUpdate{Row: row, Text: t})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Row < rows[j].Row })

	var removed []int
	for row := b.LineCount; row < a.LineCountBefore; row++ {
		removed = append(removed, row)
	}

	return Change{
		VersionBefore:   a.VersionBefore,
		VersionAfter:    b.VersionAfter,
		CursorBefore:    a.CursorBefore,
		CursorAfter:     b.CursorAfter,
		Rows:            rows,
		Removed:         removed,
		LineCountBefore: a.LineCountBefore,
		LineCount:       b.LineCount,
		SelectAllBefore: a.SelectAllBefore,
		SelectAllAfter:  b.SelectAllAfter,
	}
}

func (b *Buffer) record(c Change) {
	if len(b.history) == maxHistory {
		b.history[1] = mergeChanges(b.history[0], b.history[1])
		b.history = append(b.history[:0], b.history[1:]...)
	}
	b.history = append(b.history, c)
}

func cloneChange(in Change) Change {
	out := in
	out.Rows = append([]RowUpdate(nil), in.Rows...)
	out.Removed = append([]int(nil), in.Removed...)
	return out
}

func (b *Buffer) beginChange() changeBuilder {
	return changeBuilder{
		versionBefore:   b.version,
		cursorBefore:    b.cursor,
		selectAllBefore: b.selectAll,
		linesBefore:     b.Lines(),
	}
}

// finish checks invariants, bumps the version when anything observable
// moved, and records the change.
func (b *Buffer) finish(cb changeBuilder) bool {
	b.assertContiguous()

	var rows []RowUpdate
	for row, line := range b.lines {
		text := line.String()
		if row < len(cb.linesBefore) && cb.linesBefore[row] == text {
			continue
		}
		rows = append(rows, RowUpdate{Row: row, Text: text})
	}
	var removed []int
	for row := len(b.lines); row < len(cb.linesBefore); row++ {
		removed = append(removed, row)
	}

	if len(rows) == 0 && len(removed) == 0 &&
		b.cursor == cb.cursorBefore && b.selectAll == cb.selectAllBefore {
		return false
	}

	b.version++
	b.record(Change{
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    cb.cursorBefore,
		CursorAfter:     b.cursor,
		Rows:            rows,
		Removed:         removed,
		LineCountBefore: len(cb.linesBefore),
		LineCount:       len(b.lines),
		SelectAllBefore: cb.selectAllBefore,
		SelectAllAfter:  b.selectAll,
	})
	return true
}
