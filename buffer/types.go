package buffer

import "errors"

var (
	// ErrOutOfBounds reports an operation addressed outside the current
	// buffer shape, such as deleting before the start of the buffer.
	ErrOutOfBounds = errors.New("buffer: position out of bounds")
	// ErrInvalidInput reports a token that is not a single displayable
	// character, or line text containing a line break.
	ErrInvalidInput = errors.New("buffer: invalid input")
)

// Pos points into the buffer by (row, col) in grapheme clusters.
// Row and Col are 0-based.
type Pos struct {
	Row int
	Col int
}

// RowUpdate is the rendered text of one row after a mutation.
type RowUpdate struct {
	Row  int
	Text string
}
