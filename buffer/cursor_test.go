package buffer

import "testing"

func TestIndentStop(t *testing.T) {
	tests := []struct{ col, want int }{
		{0, 4}, {1, 4}, {3, 4}, {4, 8}, {7, 8}, {-2, 4},
	}
	for _, tt := range tests {
		if got := IndentStop(tt.col, 4); got != tt.want {
			t.Fatalf("IndentStop(%d): got %d, want %d", tt.col, got, tt.want)
		}
	}
}

func TestOutdentStop(t *testing.T) {
	tests := []struct{ col, want int }{
		{0, 0}, {1, 0}, {4, 0}, {5, 4}, {8, 4}, {9, 8},
	}
	for _, tt := range tests {
		if got := OutdentStop(tt.col, 4); got != tt.want {
			t.Fatalf("OutdentStop(%d): got %d, want %d", tt.col, got, tt.want)
		}
	}
}

func TestClampPos(t *testing.T) {
	lens := []int{3, 0, 5}
	lineLen := func(row int) int { return lens[row] }

	tests := []struct {
		in, want Pos
	}{
		{Pos{Row: -1, Col: -1}, Pos{}},
		{Pos{Row: 0, Col: 9}, Pos{Row: 0, Col: 3}},
		{Pos{Row: 1, Col: 2}, Pos{Row: 1, Col: 0}},
		{Pos{Row: 7, Col: 4}, Pos{Row: 2, Col: 4}},
	}
	for _, tt := range tests {
		if got := ClampPos(tt.in, len(lens), lineLen); got != tt.want {
			t.Fatalf("ClampPos(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := ClampPos(Pos{Row: 3, Col: 3}, 0, nil); got != (Pos{}) {
		t.Fatalf("ClampPos on empty shape: got %v, want (0,0)", got)
	}
}

func TestCursorAfterEdits(t *testing.T) {
	if got := CursorAfterMerge(3, 7); got != (Pos{Row: 2, Col: 7}) {
		t.Fatalf("merge: got %v", got)
	}
	if got := CursorAfterMerge(0, 7); got != (Pos{}) {
		t.Fatalf("merge row 0: got %v", got)
	}
	if got := CursorAfterSplit(-1); got != (Pos{Row: 0, Col: 0}) {
		t.Fatalf("split -1: got %v", got)
	}
	if got := CursorAfterSplit(2); got != (Pos{Row: 3, Col: 0}) {
		t.Fatalf("split 2: got %v", got)
	}
	if got := CursorAfterRemove(0, 9); got != (Pos{}) {
		t.Fatalf("remove 0: got %v", got)
	}
	if got := CursorAfterRemove(2, 5); got != (Pos{Row: 1, Col: 5}) {
		t.Fatalf("remove 2: got %v", got)
	}
}
