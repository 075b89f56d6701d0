// Package notebook keeps the ordered list of code cells, each owning one
// text buffer, plus the per-cell execution state shown next to it.
package notebook

import (
	"errors"
	"fmt"

	"github.com/iw2rmb/codecell/buffer"
)

// CellID identifies a cell for its whole lifetime. IDs start at 1; 0 means
// "unknown cell".
type CellID int

var (
	ErrNoCell    = errors.New("notebook: no such cell")
	ErrLastCell  = errors.New("notebook: cannot remove the last cell")
	ErrNoPending = errors.New("notebook: no cell awaiting output")
)

// Cell is one code cell.
type Cell struct {
	ID     CellID
	Buffer *buffer.Buffer

	// ExecCount is the "[n]" label: the notebook-wide run counter value at
	// the cell's last submission. 0 means never run.
	ExecCount int
	Output    string
	Running   bool
}

// Notebook is an ordered set of cells. It is not safe for concurrent use;
// the UI goroutine owns it.
type Notebook struct {
	opt    buffer.Options
	cells  []*Cell
	nextID CellID
	runs   int

	// pending holds submitted cells in submission order. Backends that do
	// not echo a cell id answer in this order.
	pending []CellID
}

// New returns a notebook with no cells.
func New(opt buffer.Options) *Notebook {
	return &Notebook{opt: opt, nextID: 1}
}

// AddCell appends a cell seeded with text.
func (n *Notebook) AddCell(text string) *Cell {
	c := n.newCell(text)
	n.cells = append(n.cells, c)
	return c
}

// InsertAfter places a new cell seeded with text directly after id.
func (n *Notebook) InsertAfter(id CellID, text string) (*Cell, error) {
	i := n.Index(id)
	if i < 0 {
		return nil, fmt.Errorf("insert after %d: %w", id, ErrNoCell)
	}
	c := n.newCell(text)
	n.cells = append(n.cells, nil)
	copy(n.cells[i+2:], n.cells[i+1:])
	n.cells[i+1] = c
	return c, nil
}

func (n *Notebook) newCell(text string) *Cell {
	c := &Cell{ID: n.nextID, Buffer: buffer.NewFromText(text, n.opt)}
	n.nextID++
	return c
}

func (n *Notebook) Len() int { return len(n.cells) }

// Cells returns the cells in display order. The slice is a copy; the cells
// are shared.
func (n *Notebook) Cells() []*Cell {
	out := make([]*Cell, len(n.cells))
	copy(out, n.cells)
	return out
}

// Cell looks a cell up by id.
func (n *Notebook) Cell(id CellID) (*Cell, bool) {
	if i := n.Index(id); i >= 0 {
		return n.cells[i], true
	}
	return nil, false
}

// At returns the cell at display position i.
func (n *Notebook) At(i int) (*Cell, bool) {
	if i < 0 || i >= len(n.cells) {
		return nil, false
	}
	return n.cells[i], true
}

// Index returns the display position of id, or -1.
func (n *Notebook) Index(id CellID) int {
	for i, c := range n.cells {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Remove deletes the cell. The last remaining cell cannot be removed.
func (n *Notebook) Remove(id CellID) error {
	i := n.Index(id)
	if i < 0 {
		return fmt.Errorf("remove %d: %w", id, ErrNoCell)
	}
	if len(n.cells) == 1 {
		return ErrLastCell
	}
	copy(n.cells[i:], n.cells[i+1:])
	n.cells[len(n.cells)-1] = nil
	n.cells = n.cells[:len(n.cells)-1]
	n.dropPending(id)
	return nil
}

// MarkSubmitted records that id was sent for execution and returns its new
// execution count. Previous output is cleared.
func (n *Notebook) MarkSubmitted(id CellID) (int, error) {
	c, ok := n.Cell(id)
	if !ok {
		return 0, fmt.Errorf("submit %d: %w", id, ErrNoCell)
	}
	n.runs++
	c.ExecCount = n.runs
	c.Output = ""
	c.Running = true
	n.pending = append(n.pending, id)
	return c.ExecCount, nil
}

// Complete stores output for the cell it belongs to and returns that cell.
// A zero id is attributed to the oldest cell still awaiting output. Output
// for an id that is no longer in the notebook is dropped with ErrNoCell.
func (n *Notebook) Complete(id CellID, output string) (CellID, error) {
	if id != 0 {
		c, ok := n.Cell(id)
		if !ok {
			n.dropPending(id)
			return 0, fmt.Errorf("complete %d: %w", id, ErrNoCell)
		}
		n.dropPending(id)
		c.Output = output
		c.Running = false
		return id, nil
	}
	for len(n.pending) > 0 {
		next := n.pending[0]
		n.pending = n.pending[1:]
		if c, ok := n.Cell(next); ok {
			c.Output = output
			c.Running = false
			return next, nil
		}
	}
	return 0, ErrNoPending
}

// Pending is the number of submitted cells still awaiting output.
func (n *Notebook) Pending() int { return len(n.pending) }

func (n *Notebook) dropPending(id CellID) {
	for i, p := range n.pending {
		if p == id {
			n.pending = append(n.pending[:i], n.pending[i+1:]...)
			return
		}
	}
}
