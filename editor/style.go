package editor

import "github.com/charmbracelet/lipgloss"

// gutterSep separates row numbers from code. It is one terminal cell wide,
// which LineNumberWidth relies on.
const gutterSep = "│"

// Style is the look of one code cell.
//
// SelectAll is applied to every row while the whole cell is selected, so it
// must stand apart from Code on any background. The cursor keeps its own
// style on top of it.
type Style struct {
	LineNum        lipgloss.Style
	LineNumCurrent lipgloss.Style // cursor row, focused cells only
	GutterSep      lipgloss.Style

	Code      lipgloss.Style
	SelectAll lipgloss.Style
	Cursor    lipgloss.Style
}

func DefaultStyle() Style {
	dim := lipgloss.Color("241")
	return Style{
		LineNum:        lipgloss.NewStyle().Foreground(dim),
		LineNumCurrent: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		GutterSep:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Code:           lipgloss.NewStyle(),
		SelectAll:      lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("231")),
		Cursor:         lipgloss.NewStyle().Reverse(true),
	}
}
