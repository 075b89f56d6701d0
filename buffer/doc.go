// Package buffer implements the pure text model behind a code cell.
//
// A Buffer is a contiguous, zero-based sequence of rows. Each row is a Line of
// grapheme clusters, and the cursor is a (Row, Col) pair counted in clusters.
// Every operation is synchronous and either completes or leaves the buffer
// untouched; boundary conditions surface as ErrOutOfBounds or ErrInvalidInput.
package buffer
