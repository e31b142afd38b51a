package domain

// Axis is one of the four directions a connection can run along.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
	DiagonalDown // top-left to bottom-right
	DiagonalUp   // bottom-left to top-right
)

// Axes lists every axis with its (row, col) step.
var Axes = [4]struct {
	Axis       Axis
	DRow, DCol int
}{
	{Horizontal, 0, 1},
	{Vertical, 1, 0},
	{DiagonalDown, 1, 1},
	{DiagonalUp, -1, 1},
}

type cellPos struct {
	row, col int
}

// lineCoords holds the coordinates of every line long enough to hold a
// connection. Built once, the board shape never changes.
var lineCoords = buildLines()

func buildLines() [][]cellPos {
	lines := make([][]cellPos, 0, Rows+Columns+12)

	for r := 0; r < Rows; r++ {
		line := make([]cellPos, 0, Columns)
		for c := 0; c < Columns; c++ {
			line = append(line, cellPos{r, c})
		}
		lines = append(lines, line)
	}

	for c := 0; c < Columns; c++ {
		line := make([]cellPos, 0, Rows)
		for r := 0; r < Rows; r++ {
			line = append(line, cellPos{r, c})
		}
		lines = append(lines, line)
	}

	// a diagonal is identified by the first cell on the top or left edge
	// (for ↘) and on the bottom or left edge (for ↗)
	for _, start := range diagonalStarts(DiagonalDown) {
		lines = appendIfLong(lines, walk(start, 1, 1))
	}
	for _, start := range diagonalStarts(DiagonalUp) {
		lines = appendIfLong(lines, walk(start, -1, 1))
	}

	return lines
}

func diagonalStarts(axis Axis) []cellPos {
	starts := make([]cellPos, 0, Rows+Columns-1)
	edgeRow := 0
	if axis == DiagonalUp {
		edgeRow = Rows - 1
	}
	for c := 0; c < Columns; c++ {
		starts = append(starts, cellPos{edgeRow, c})
	}
	for r := 0; r < Rows; r++ {
		if r == edgeRow {
			continue
		}
		starts = append(starts, cellPos{r, 0})
	}
	return starts
}

func walk(start cellPos, dRow, dCol int) []cellPos {
	var line []cellPos
	for r, c := start.row, start.col; inBounds(r, c); r, c = r+dRow, c+dCol {
		line = append(line, cellPos{r, c})
	}
	return line
}

func appendIfLong(lines [][]cellPos, line []cellPos) [][]cellPos {
	if len(line) < ToWin {
		return lines
	}
	return append(lines, line)
}

// Lines extracts every row, column and diagonal of length >= 4.
func Lines(b *Board) [][]PlayerID {
	out := make([][]PlayerID, 0, len(lineCoords))
	b.EachLine(func(line []PlayerID) bool {
		out = append(out, append([]PlayerID(nil), line...))
		return true
	})
	return out
}

// EachLine calls fn with the cells of every line Lines would return,
// stopping early when fn returns false. The slice is reused between calls
// and must not be retained.
func (b *Board) EachLine(fn func(line []PlayerID) bool) {
	var buf [Columns]PlayerID
	for _, coords := range lineCoords {
		line := buf[:len(coords)]
		for j, p := range coords {
			line[j] = b[p.row][p.col]
		}
		if !fn(line) {
			return
		}
	}
}
