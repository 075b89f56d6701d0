package editor

import (
	"github.com/iw2rmb/codecell/buffer"
)

// Command is the single buffer operation a keystroke resolves to.
type Command int

const (
	CmdNone Command = iota
	CmdInsertChar
	CmdInsertLine
	CmdSubmit
	CmdDeleteBefore
	CmdIndent
	CmdOutdent
	CmdSelectAll
	CmdCopy
	CmdMoveLeft
	CmdMoveRight
	CmdMoveUp
	CmdMoveDown
	CmdHome
	CmdEnd
	CmdWordLeft
	CmdWordRight
	CmdDocStart
	CmdDocEnd
)

func (c Command) String() string {
	switch c {
	case CmdInsertChar:
		return "insert-char"
	case CmdInsertLine:
		return "insert-line"
	case CmdSubmit:
		return "submit"
	case CmdDeleteBefore:
		return "delete-before"
	case CmdIndent:
		return "indent"
	case CmdOutdent:
		return "outdent"
	case CmdSelectAll:
		return "select-all"
	case CmdCopy:
		return "copy"
	case CmdMoveLeft:
		return "move-left"
	case CmdMoveRight:
		return "move-right"
	case CmdMoveUp:
		return "move-up"
	case CmdMoveDown:
		return "move-down"
	case CmdHome:
		return "home"
	case CmdEnd:
		return "end"
	case CmdWordLeft:
		return "word-left"
	case CmdWordRight:
		return "word-right"
	case CmdDocStart:
		return "doc-start"
	case CmdDocEnd:
		return "doc-end"
	default:
		return "none"
	}
}

type rule struct {
	match func(Input) bool
	cmd   Command
}

func named(n KeyName) func(Input) bool {
	return func(in Input) bool { return in.Name == n }
}

func chord(letter string) func(Input) bool {
	return func(in Input) bool { return in.CtrlOrMeta && in.Letter == letter }
}

func modified(n KeyName) func(Input) bool {
	return func(in Input) bool { return in.CtrlOrMeta && in.Name == n }
}

// rules is evaluated top to bottom; the first match wins. Modified keys are
// listed before the plain keys they share a name with.
var rules = []rule{
	{func(in Input) bool { return in.Name == KeyEnter && in.Shift }, CmdSubmit},
	{named(KeyEnter), CmdInsertLine},
	{func(in Input) bool { return in.Name == KeyTab && in.Shift }, CmdOutdent},
	{named(KeyTab), CmdIndent},
	{named(KeyBackspace), CmdDeleteBefore},
	{named(KeyDelete), CmdDeleteBefore},
	{named(KeySpace), CmdInsertChar},
	{chord("a"), CmdSelectAll},
	{chord("c"), CmdCopy},
	{modified(KeyLeft), CmdWordLeft},
	{modified(KeyRight), CmdWordRight},
	{modified(KeyHome), CmdDocStart},
	{modified(KeyEnd), CmdDocEnd},
	{func(in Input) bool { return in.CtrlOrMeta || in.Alt }, CmdNone},
	{named(KeyLeft), CmdMoveLeft},
	{named(KeyRight), CmdMoveRight},
	{named(KeyUp), CmdMoveUp},
	{named(KeyDown), CmdMoveDown},
	{named(KeyHome), CmdHome},
	{named(KeyEnd), CmdEnd},
	{named(KeyChar), CmdInsertChar},
}

// Resolve maps a normalized input to its command.
func Resolve(in Input) Command {
	for _, r := range rules {
		if r.match(in) {
			return r.cmd
		}
	}
	return CmdNone
}

// Result reports what one Dispatch call did.
type Result struct {
	Command Command

	// Change is the buffer's LastChange when Changed is true.
	Change  buffer.Change
	Changed bool

	// Submit holds the exported text for CmdSubmit.
	Submit string
	// Copy holds the exported text for CmdCopy while select-all is set.
	Copy string

	// Err is a swallowed boundary or input error. The buffer is unchanged.
	Err error
}

// Dispatcher routes key events to buffer operations. It keeps no state
// between calls.
type Dispatcher struct {
	// Logger, if set, receives errors the dispatcher swallows.
	Logger func(cmd Command, ev KeyEvent, err error)
}

// Dispatch normalizes ev, resolves it and applies the command to b.
func (d Dispatcher) Dispatch(b *buffer.Buffer, ev KeyEvent) Result {
	in := Normalize(ev)
	res := Result{Command: Resolve(in)}
	if b == nil {
		return res
	}

	before := b.Version()
	var err error
	switch res.Command {
	case CmdInsertChar:
		err = b.InsertChar(in.Char)
	case CmdInsertLine:
		err = b.InsertLineAfter(b.Cursor().Row)
	case CmdSubmit:
		res.Submit = b.ExportText()
	case CmdDeleteBefore:
		err = b.DeleteCharBefore()
	case CmdIndent:
		err = b.Indent()
	case CmdOutdent:
		err = b.Outdent()
	case CmdSelectAll:
		b.SelectAllLines()
	case CmdCopy:
		if b.SelectAll() {
			res.Copy = b.ExportText()
		}
	case CmdMoveLeft:
		b.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case CmdMoveRight:
		b.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case CmdMoveUp:
		b.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp})
	case CmdMoveDown:
		b.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown})
	case CmdHome:
		b.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case CmdEnd:
		b.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case CmdWordLeft:
		b.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case CmdWordRight:
		b.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})
	case CmdDocStart:
		b.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case CmdDocEnd:
		b.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})
	}

	if err != nil {
		res.Err = err
		if d.Logger != nil {
			d.Logger(res.Command, ev, err)
		}
	}
	if b.Version() != before {
		res.Change, res.Changed = b.LastChange()
	}
	return res
}
