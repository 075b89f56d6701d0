package buffer

import (
	"strings"

	"github.com/iw2rmb/codecell/internal/grapheme"
)

// Line is one logical row: grapheme clusters in column order.
// An empty Line is a valid row.
type Line []string

func lineFromText(text string) Line {
	clusters := grapheme.Split(text)
	if clusters == nil {
		return Line{}
	}
	return Line(clusters)
}

func (l Line) Len() int { return len(l) }

func (l Line) String() string { return grapheme.Join(l) }

func (l Line) clone() Line {
	if len(l) == 0 {
		return Line{}
	}
	out := make(Line, len(l))
	copy(out, l)
	return out
}

// insertAt returns l with clusters inserted before col.
func (l Line) insertAt(col int, clusters ...string) Line {
	out := make(Line, 0, len(l)+len(clusters))
	out = append(out, l[:col]...)
	out = append(out, clusters...)
	out = append(out, l[col:]...)
	return out
}

// removeRange returns l without the clusters in [start, end).
func (l Line) removeRange(start, end int) Line {
	out := make(Line, 0, len(l)-(end-start))
	out = append(out, l[:start]...)
	out = append(out, l[end:]...)
	return out
}

// spacesBefore counts consecutive ' ' clusters ending at col.
func (l Line) spacesBefore(col int) int {
	n := 0
	for i := col - 1; i >= 0 && l[i] == " "; i-- {
		n++
	}
	return n
}

func spaces(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = " "
	}
	return out
}

func validLineText(text string) bool {
	return !strings.ContainsAny(text, "\n\r")
}
