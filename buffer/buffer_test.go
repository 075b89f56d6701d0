package buffer

import (
	"reflect"
	"testing"
)

func TestNew_SeedsOneEmptyRow(t *testing.T) {
	b := New(Options{})
	if got := b.LineCount(); got != 1 {
		t.Fatalf("line count=%d, want 1", got)
	}
	if got := b.ExportText(); got != "" {
		t.Fatalf("export=%q, want empty", got)
	}
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}
	if b.SelectAll() {
		t.Fatalf("expected select-all unset")
	}
	if b.Version() != 0 {
		t.Fatalf("expected version 0, got %d", b.Version())
	}
	if got := b.IndentWidth(); got != DefaultIndentWidth {
		t.Fatalf("indent width=%d, want %d", got, DefaultIndentWidth)
	}
}

func TestNewFromText_SeedsRowsAndNormalizesBreaks(t *testing.T) {
	b := NewFromText("ab\r\nc\rd", Options{})
	if got, want := b.Lines(), []string{"ab", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 2, Col: 0}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_SetCursor_ClampsAndVersions(t *testing.T) {
	b := NewFromText("a\nbc", Options{})
	v := b.Version()

	b.SetCursor(Pos{Row: 999, Col: 999})
	if got := b.Cursor(); got != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("cursor=%v, want (1,2)", got)
	}
	if b.Version() != v+1 {
		t.Fatalf("expected version %d, got %d", v+1, b.Version())
	}

	b.SetCursor(Pos{Row: 1, Col: 2})
	if b.Version() != v+1 {
		t.Fatalf("expected version unchanged, got %d", b.Version())
	}

	b.SetCursor(Pos{Row: -3, Col: -3})
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}
}

func TestBuffer_LineAccessors(t *testing.T) {
	b := NewFromText("ab\n", Options{})

	line, ok := b.Line(0)
	if !ok || line.String() != "ab" || line.Len() != 2 {
		t.Fatalf("line 0: got (%q,%v)", line.String(), ok)
	}
	line[0] = "X"
	if got := b.LineText(0); got != "ab" {
		t.Fatalf("Line must return a copy, row 0 is now %q", got)
	}

	if line, ok := b.Line(1); !ok || line.Len() != 0 {
		t.Fatalf("line 1: got (%q,%v), want empty row", line.String(), ok)
	}
	if _, ok := b.Line(2); ok {
		t.Fatalf("line 2 should not exist")
	}
	if got := b.LineText(-1); got != "" {
		t.Fatalf("line text -1=%q, want empty", got)
	}
}

func TestBuffer_ExportText_IdempotentAndOrdered(t *testing.T) {
	b := NewFromText("one\n\nthree", Options{})

	first := b.ExportText()
	second := b.ExportText()
	if first != second {
		t.Fatalf("export not idempotent: %q vs %q", first, second)
	}
	if first != "one\n\nthree" {
		t.Fatalf("export=%q, want %q", first, "one\n\nthree")
	}
	if b.String() != first {
		t.Fatalf("String()=%q, want %q", b.String(), first)
	}
}

func TestBuffer_SelectAllThenDeleteResets(t *testing.T) {
	b := NewFromText("ab\ncd\nef", Options{})

	b.SelectAllLines()
	if !b.SelectAll() {
		t.Fatalf("expected select-all set")
	}
	v := b.Version()
	b.SelectAllLines()
	if b.Version() != v {
		t.Fatalf("repeated select-all bumped version")
	}

	if err := b.DeleteCharBefore(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := b.Lines(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("lines=%q, want one empty row", got)
	}
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}
	if b.SelectAll() {
		t.Fatalf("expected select-all cleared")
	}
}

func TestBuffer_ClearSelection(t *testing.T) {
	b := NewFromText("ab", Options{})
	v := b.Version()

	b.ClearSelection()
	if b.Version() != v {
		t.Fatalf("clearing an unset flag bumped version")
	}

	b.SelectAllLines()
	b.ClearSelection()
	if b.SelectAll() {
		t.Fatalf("expected select-all cleared")
	}
	if got := b.ExportText(); got != "ab" {
		t.Fatalf("export=%q, want %q", got, "ab")
	}
}

func TestBuffer_Reset(t *testing.T) {
	b := NewFromText("a\nb", Options{})
	b.Reset()
	if got := b.Lines(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("lines=%q, want one empty row", got)
	}
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}
}

func TestBuffer_CustomIndentWidth(t *testing.T) {
	b := New(Options{IndentWidth: 2})
	if err := b.Indent(); err != nil {
		t.Fatalf("indent: %v", err)
	}
	if got := b.ExportText(); got != "  " {
		t.Fatalf("export=%q, want two spaces", got)
	}
}
