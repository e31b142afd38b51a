// Package console is the terminal front end: it draws the board and reads
// the human's column choice.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect4-cpu/internal/domain"
	"github.com/iamasit07/connect4-cpu/internal/service/bot"
)

// Render prints the board with 1-based row and column labels, followed by
// each side's positional score.
func Render(w io.Writer, board *domain.Board) {
	fmt.Fprintln(w, "  1 2 3 4 5 6 7")
	for r := 0; r < domain.Rows; r++ {
		cells := make([]string, domain.Columns)
		for c := 0; c < domain.Columns; c++ {
			cells[c] = board[r][c].Symbol()
		}
		fmt.Fprintf(w, "%d %s\n", r+1, strings.Join(cells, " "))
	}
	fmt.Fprintf(w, "o%d\n", bot.Score(board, domain.Player1))
	fmt.Fprintf(w, "x%d\n", bot.Score(board, domain.Player2))
}

// ParseColumn turns the human's answer into a 0-based column, or explains
// what is wrong with it.
func ParseColumn(input string, board *domain.Board) (int, string) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return -1, "Input must be a single integer!"
	}
	col := n - 1
	if col < 0 || col >= domain.Columns {
		return -1, "Column must be between 1 and 7!"
	}
	if board.IsColumnFull(col) {
		return -1, "The column you chose is full!"
	}
	return col, ""
}

// ReadColumn keeps prompting until a playable column is entered.
func ReadColumn(in *bufio.Scanner, w io.Writer, board *domain.Board) (int, error) {
	for {
		fmt.Fprint(w, "Select a column to place your piece in (1-7): ")
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return -1, err
			}
			return -1, io.EOF
		}
		col, problem := ParseColumn(in.Text(), board)
		if problem == "" {
			return col, nil
		}
		fmt.Fprintln(w, problem)
	}
}
