package editor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/iw2rmb/codecell/buffer"
)

func TestResolve_DecisionTable(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		want Command
	}{
		{"enter", KeyEvent{Code: "Enter", Key: "Enter"}, CmdInsertLine},
		{"shift enter", KeyEvent{Code: "Enter", Key: "Enter", Shift: true}, CmdSubmit},
		{"ctrl shift enter", KeyEvent{Code: "Enter", Key: "Enter", Shift: true, Ctrl: true}, CmdSubmit},
		{"numpad enter", KeyEvent{Code: "NumpadEnter", Key: "Enter"}, CmdInsertLine},
		{"backspace", KeyEvent{Code: "Backspace", Key: "Backspace"}, CmdDeleteBefore},
		{"delete", KeyEvent{Code: "Delete", Key: "Delete"}, CmdDeleteBefore},
		{"tab", KeyEvent{Code: "Tab", Key: "Tab"}, CmdIndent},
		{"shift tab", KeyEvent{Code: "Tab", Key: "Tab", Shift: true}, CmdOutdent},
		{"space", KeyEvent{Code: "Space", Key: " "}, CmdInsertChar},
		{"ctrl a", KeyEvent{Code: "KeyA", Key: "a", Ctrl: true}, CmdSelectAll},
		{"meta a", KeyEvent{Code: "KeyA", Key: "a", Meta: true}, CmdSelectAll},
		{"ctrl shift a", KeyEvent{Code: "KeyA", Key: "A", Ctrl: true, Shift: true}, CmdSelectAll},
		{"ctrl c", KeyEvent{Code: "KeyC", Key: "c", Ctrl: true}, CmdCopy},
		{"ctrl x ignored", KeyEvent{Code: "KeyX", Key: "x", Ctrl: true}, CmdNone},
		{"alt letter ignored", KeyEvent{Key: "x", Alt: true}, CmdNone},
		{"plain char", KeyEvent{Code: "KeyQ", Key: "q"}, CmdInsertChar},
		{"shifted char", KeyEvent{Code: "KeyQ", Key: "Q", Shift: true}, CmdInsertChar},
		{"punctuation", KeyEvent{Code: "BracketLeft", Key: "("}, CmdInsertChar},
		{"left", KeyEvent{Code: "ArrowLeft", Key: "ArrowLeft"}, CmdMoveLeft},
		{"right", KeyEvent{Code: "ArrowRight", Key: "ArrowRight"}, CmdMoveRight},
		{"up", KeyEvent{Code: "ArrowUp", Key: "ArrowUp"}, CmdMoveUp},
		{"down", KeyEvent{Code: "ArrowDown", Key: "ArrowDown"}, CmdMoveDown},
		{"home", KeyEvent{Code: "Home", Key: "Home"}, CmdHome},
		{"end", KeyEvent{Code: "End", Key: "End"}, CmdEnd},
		{"ctrl left", KeyEvent{Code: "ArrowLeft", Key: "ArrowLeft", Ctrl: true}, CmdWordLeft},
		{"meta right", KeyEvent{Code: "ArrowRight", Key: "ArrowRight", Meta: true}, CmdWordRight},
		{"ctrl home", KeyEvent{Code: "Home", Key: "Home", Ctrl: true}, CmdDocStart},
		{"ctrl end", KeyEvent{Code: "End", Key: "End", Ctrl: true}, CmdDocEnd},
		{"alt left ignored", KeyEvent{Code: "ArrowLeft", Key: "ArrowLeft", Alt: true}, CmdNone},
		{"escape", KeyEvent{Code: "Escape", Key: "Escape"}, CmdNone},
		{"shift alone", KeyEvent{Code: "ShiftLeft", Key: "Shift", Shift: true}, CmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(Normalize(tt.ev)); got != tt.want {
				t.Fatalf("Resolve(%+v): got %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func typeKeys(d Dispatcher, b *buffer.Buffer, keys ...string) {
	for _, k := range keys {
		d.Dispatch(b, KeyEvent{Key: k})
	}
}

func TestDispatch_TypingAcrossEnter(t *testing.T) {
	var d Dispatcher
	b := buffer.New(buffer.Options{})

	typeKeys(d, b, "a", "b")
	d.Dispatch(b, KeyEvent{Code: "Enter", Key: "Enter"})
	typeKeys(d, b, "c")

	if got := b.Lines(); !reflect.DeepEqual(got, []string{"ab", "c"}) {
		t.Fatalf("lines=%q, want [ab c]", got)
	}
	if got := b.Cursor(); got != (buffer.Pos{Row: 1, Col: 1}) {
		t.Fatalf("cursor=%v, want (1,1)", got)
	}
}

func TestDispatch_EnterMidLineKeepsRow(t *testing.T) {
	var d Dispatcher
	b := buffer.NewFromText("abcd", buffer.Options{})
	b.SetCursor(buffer.Pos{Row: 0, Col: 2})

	res := d.Dispatch(b, KeyEvent{Code: "Enter", Key: "Enter"})
	if res.Command != CmdInsertLine {
		t.Fatalf("command=%v, want insert-line", res.Command)
	}
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"abcd", ""}) {
		t.Fatalf("lines=%q, want [abcd \"\"]", got)
	}
	if got := b.Cursor(); got != (buffer.Pos{Row: 1, Col: 0}) {
		t.Fatalf("cursor=%v, want (1,0)", got)
	}
	want := []buffer.RowUpdate{{Row: 1, Text: ""}}
	if !reflect.DeepEqual(res.Change.Rows, want) {
		t.Fatalf("rows=%v, want %v", res.Change.Rows, want)
	}
}

func TestDispatch_WordAndCellMovement(t *testing.T) {
	var d Dispatcher
	b := buffer.NewFromText("foo bar\nbaz", buffer.Options{})
	b.SetCursor(buffer.Pos{})
	v := b.Version()

	d.Dispatch(b, KeyEvent{Code: "ArrowRight", Key: "ArrowRight", Ctrl: true})
	if got := b.Cursor(); got != (buffer.Pos{Row: 0, Col: 3}) {
		t.Fatalf("word right: cursor=%v, want (0,3)", got)
	}
	d.Dispatch(b, KeyEvent{Code: "End", Key: "End", Ctrl: true})
	if got := b.Cursor(); got != (buffer.Pos{Row: 1, Col: 3}) {
		t.Fatalf("cell end: cursor=%v, want (1,3)", got)
	}
	d.Dispatch(b, KeyEvent{Code: "ArrowLeft", Key: "ArrowLeft", Meta: true})
	if got := b.Cursor(); got != (buffer.Pos{Row: 1, Col: 0}) {
		t.Fatalf("word left: cursor=%v, want (1,0)", got)
	}
	d.Dispatch(b, KeyEvent{Code: "Home", Key: "Home", Ctrl: true})
	if got := b.Cursor(); got != (buffer.Pos{}) {
		t.Fatalf("cell start: cursor=%v, want (0,0)", got)
	}
	if got := b.ExportText(); got != "foo bar\nbaz" {
		t.Fatalf("movement changed text: %q", got)
	}
	if b.Version() == v {
		t.Fatalf("cursor moves should bump the version")
	}
}

func TestDispatch_ReportsChangedRows(t *testing.T) {
	var d Dispatcher
	b := buffer.NewFromText("ab\nc", buffer.Options{})

	res := d.Dispatch(b, KeyEvent{Code: "Backspace", Key: "Backspace"})
	if !res.Changed {
		t.Fatalf("expected a change")
	}
	want := []buffer.RowUpdate{{Row: 0, Text: "abc"}}
	if !reflect.DeepEqual(res.Change.Rows, want) {
		t.Fatalf("rows=%v, want %v", res.Change.Rows, want)
	}
	if !reflect.DeepEqual(res.Change.Removed, []int{1}) {
		t.Fatalf("removed=%v, want [1]", res.Change.Removed)
	}
	if res.Change.CursorAfter != (buffer.Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor after=%v, want (0,2)", res.Change.CursorAfter)
	}
}

func TestDispatch_BoundaryNoopIsSwallowedAndLogged(t *testing.T) {
	var logged []Command
	d := Dispatcher{Logger: func(cmd Command, _ KeyEvent, err error) {
		logged = append(logged, cmd)
	}}
	b := buffer.New(buffer.Options{})

	res := d.Dispatch(b, KeyEvent{Code: "Backspace", Key: "Backspace"})
	if !errors.Is(res.Err, buffer.ErrOutOfBounds) {
		t.Fatalf("err=%v, want ErrOutOfBounds", res.Err)
	}
	if res.Changed {
		t.Fatalf("boundary no-op reported a change")
	}
	if b.ExportText() != "" || b.Cursor() != (buffer.Pos{}) {
		t.Fatalf("buffer changed: %q at %v", b.ExportText(), b.Cursor())
	}
	if !reflect.DeepEqual(logged, []Command{CmdDeleteBefore}) {
		t.Fatalf("logged=%v, want [delete-before]", logged)
	}
}

func TestDispatch_SubmitExportsWithoutMutation(t *testing.T) {
	var d Dispatcher
	b := buffer.NewFromText("print(1)\nprint(2)", buffer.Options{})
	v := b.Version()

	res := d.Dispatch(b, KeyEvent{Code: "Enter", Key: "Enter", Shift: true})
	if res.Command != CmdSubmit {
		t.Fatalf("command=%v, want submit", res.Command)
	}
	if res.Submit != "print(1)\nprint(2)" {
		t.Fatalf("submit=%q", res.Submit)
	}
	if res.Changed || b.Version() != v {
		t.Fatalf("submit mutated the buffer")
	}
}

func TestDispatch_SelectAllCopyAndClear(t *testing.T) {
	var d Dispatcher
	b := buffer.NewFromText("x = 1\ny = 2", buffer.Options{})

	if res := d.Dispatch(b, KeyEvent{Code: "KeyC", Key: "c", Ctrl: true}); res.Copy != "" {
		t.Fatalf("copy without select-all: got %q, want empty", res.Copy)
	}

	d.Dispatch(b, KeyEvent{Code: "KeyA", Key: "a", Meta: true})
	if !b.SelectAll() {
		t.Fatalf("expected select-all")
	}

	res := d.Dispatch(b, KeyEvent{Code: "KeyC", Key: "c", Meta: true})
	if res.Copy != "x = 1\ny = 2" {
		t.Fatalf("copy=%q", res.Copy)
	}
	if !b.SelectAll() {
		t.Fatalf("copy cleared select-all")
	}

	d.Dispatch(b, KeyEvent{Code: "Delete", Key: "Delete"})
	if got := b.Lines(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("lines=%q, want one empty row", got)
	}
	if b.SelectAll() {
		t.Fatalf("expected select-all cleared")
	}
}

func TestDispatch_IndentOutdentAndSpace(t *testing.T) {
	var d Dispatcher
	b := buffer.New(buffer.Options{})

	d.Dispatch(b, KeyEvent{Code: "Tab", Key: "Tab"})
	typeKeys(d, b, "i", "f")
	d.Dispatch(b, KeyEvent{Code: "Space", Key: " "})
	if got := b.ExportText(); got != "    if " {
		t.Fatalf("export=%q, want %q", got, "    if ")
	}

	d.Dispatch(b, KeyEvent{Code: "Home", Key: "Home"})
	d.Dispatch(b, KeyEvent{Code: "ArrowRight", Key: "ArrowRight"})
	d.Dispatch(b, KeyEvent{Code: "ArrowRight", Key: "ArrowRight"})
	d.Dispatch(b, KeyEvent{Code: "Tab", Key: "Tab", Shift: true})
	if got := b.ExportText(); got != "  if " {
		t.Fatalf("export=%q, want %q", got, "  if ")
	}
	if got := b.Cursor(); got != (buffer.Pos{Row: 0, Col: 0}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}
}

func TestDispatch_IgnoredKeysLeaveBufferAlone(t *testing.T) {
	var d Dispatcher
	b := buffer.NewFromText("abc", buffer.Options{})
	v := b.Version()

	for _, ev := range []KeyEvent{
		{Code: "KeyV", Key: "v", Ctrl: true},
		{Code: "F1", Key: "F1"},
		{Code: "Escape", Key: "Escape"},
		{Key: "x", Alt: true},
		{Code: "ShiftLeft", Key: "Shift", Shift: true},
	} {
		if res := d.Dispatch(b, ev); res.Command != CmdNone || res.Changed {
			t.Fatalf("%+v: got %+v, want ignored", ev, res)
		}
	}
	if b.Version() != v {
		t.Fatalf("ignored keys changed the buffer")
	}
}
