package bot

import (
	"github.com/iamasit07/connect4-cpu/internal/domain"
)

const (
	WinScore     = 10000 // a completed connection for the scored player
	DepthPenalty = 1000  // per ply, so quicker wins outrank slower ones
	WindowSize   = domain.ToWin
)

// scan slides a 4-cell window over every line. A window holding any
// opposing piece is worth nothing; otherwise it adds n*n for the n pieces
// player has in it. won is set as soon as a full window is found.
func scan(board *domain.Board, player domain.PlayerID) (total int, won bool) {
	opponent := player.Opponent()
	board.EachLine(func(line []domain.PlayerID) bool {
		for start := 0; start+WindowSize <= len(line); start++ {
			n := 0
			blocked := false
			for _, cell := range line[start : start+WindowSize] {
				if cell == player {
					n++
				} else if cell == opponent {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}
			if n == WindowSize {
				won = true
				return false
			}
			total += n * n
		}
		return true
	})
	if won {
		return WinScore, true
	}
	return total, false
}

// Score returns WinScore when player already has four in a row, and the
// sum of squared window counts otherwise.
func Score(board *domain.Board, player domain.PlayerID) int {
	total, _ := scan(board, player)
	return total
}

// Evaluation keeps "someone has won" apart from the numeric heuristic.
type Evaluation struct {
	Winner domain.PlayerID // Empty if nobody has four in a row
	Value  int             // Max's score minus Min's score
}

func (e Evaluation) Decided() bool {
	return e.Winner != domain.Empty
}

type Evaluator struct {
	Max domain.PlayerID
	Min domain.PlayerID
}

func NewEvaluator(maxPlayer domain.PlayerID) Evaluator {
	return Evaluator{Max: maxPlayer, Min: maxPlayer.Opponent()}
}

// Heuristic is positive when the position favors Max.
func (e Evaluator) Heuristic(board *domain.Board) int {
	return Score(board, e.Max) - Score(board, e.Min)
}

func (e Evaluator) Evaluate(board *domain.Board) Evaluation {
	maxScore, maxWon := scan(board, e.Max)
	minScore, minWon := scan(board, e.Min)

	eval := Evaluation{Value: maxScore - minScore}
	switch {
	case maxWon:
		eval.Winner = e.Max
	case minWon:
		eval.Winner = e.Min
	}
	return eval
}
