package domain

// HasConnection reports whether the piece at (row, column) is part of a
// run of at least ToWin same-colored pieces. Only lines through the last
// placed piece can have changed, so that is all it looks at.
func HasConnection(board *Board, row, column int) bool {
	if !inBounds(row, column) {
		return false
	}
	player := board[row][column]
	if player == Empty {
		return false
	}

	for _, axis := range Axes {
		count := 1 + CountDiskInDirection(board, row, column, axis.DRow, axis.DCol, player) +
			CountDiskInDirection(board, row, column, -axis.DRow, -axis.DCol, player)
		if count >= ToWin {
			return true
		}
	}

	return false
}

// this counts the number of disks in a specific direction
func CountDiskInDirection(board *Board, row, column int, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for inBounds(r, c) && board[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
