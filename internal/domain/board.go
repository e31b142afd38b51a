package domain

import (
	"strings"

	"github.com/pkg/errors"
)

// Board is the 6x7 grid. Row 0 is the top row and row 5 the bottom one.
// It is a plain array so assignment produces an independent copy.
type Board [Rows][Columns]PlayerID

func NewBoard() Board {
	return Board{}
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

// IsColumnFull reports whether the top cell of col is taken.
// Columns outside the board are treated as full.
func (b *Board) IsColumnFull(col int) bool {
	if col < 0 || col >= Columns {
		return true
	}
	return b[0][col] != Empty
}

// Place drops a piece for player into col and returns where it landed.
func (b *Board) Place(col int, player PlayerID) (int, int, error) {
	if col < 0 || col >= Columns {
		return -1, col, errors.Wrapf(ErrInvalidColumn, "column %d", col)
	}
	if player != Player1 && player != Player2 {
		return -1, col, errors.Wrapf(ErrInvalidPlayer, "player %d", player)
	}

	// shifting the disk from the bottom up till it finds an empty slot
	for row := Rows - 1; row >= 0; row-- {
		if b[row][col] == Empty {
			b[row][col] = player
			return row, col, nil
		}
	}

	return -1, col, errors.Wrapf(ErrIllegalMove, "column %d", col)
}

// Copy returns an independent copy of the board.
func (b Board) Copy() Board {
	return b
}

func (b *Board) Cell(row, col int) PlayerID {
	if !inBounds(row, col) {
		return Empty
	}
	return b[row][col]
}

// ValidMoves lists the playable columns in ascending order.
func (b *Board) ValidMoves() []int {
	validMoves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if !b.IsColumnFull(col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b[0][c] == Empty {
			return false
		}
	}
	return true
}

func (b *Board) Pieces() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// Key encodes the board row by row as 42 digits, used for cache keys.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Rows * Columns)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			sb.WriteByte(byte('0' + b[r][c]))
		}
	}
	return sb.String()
}

// Ints converts the board to a plain int grid for JSON payloads
func (b *Board) Ints() [][]int {
	grid := make([][]int, Rows)
	for r := range grid {
		grid[r] = make([]int, Columns)
		for c := range grid[r] {
			grid[r][c] = int(b[r][c])
		}
	}
	return grid
}

// ParseBoard builds a board from rows of symbols ('.' or '*' empty, 'O'
// for Player1, 'X' for Player2), top row first. It does not check gravity.
func ParseBoard(rows ...string) (Board, error) {
	var b Board
	if len(rows) != Rows {
		return b, errors.Errorf("expected %d rows, got %d", Rows, len(rows))
	}
	for r, line := range rows {
		if len(line) != Columns {
			return b, errors.Errorf("row %d: expected %d cells, got %d", r, Columns, len(line))
		}
		for c := 0; c < Columns; c++ {
			switch line[c] {
			case '.', '*':
				b[r][c] = Empty
			case 'O', 'o':
				b[r][c] = Player1
			case 'X', 'x':
				b[r][c] = Player2
			default:
				return b, errors.Errorf("row %d col %d: unknown cell %q", r, c, line[c])
			}
		}
	}
	return b, nil
}
