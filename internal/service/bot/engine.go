package bot

import (
	"github.com/iamasit07/connect4-cpu/internal/domain"
	"github.com/pkg/errors"
)

const (
	MinDepth = 1
	// MaxDepth keeps WinScore - MaxDepth*DepthPenalty above any score a
	// position without a connection can reach.
	MaxDepth = 8
)

// SearchStats describes the work done by the last decision.
type SearchStats struct {
	Nodes   int
	Cutoffs int
}

// Engine picks moves for Max with a depth-limited minimax search.
// An Engine is not safe for concurrent use; Stats is overwritten by every
// call to Decide.
type Engine struct {
	Depth   int
	Pruning bool
	Eval    Evaluator
	Stats   SearchStats
}

func ClampDepth(depth int) int {
	if depth < MinDepth {
		return MinDepth
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}

// NewEngine returns a pruning engine playing maxPlayer.
func NewEngine(depth int, maxPlayer domain.PlayerID) *Engine {
	return &Engine{
		Depth:   ClampDepth(depth),
		Pruning: true,
		Eval:    NewEvaluator(maxPlayer),
	}
}

// Decide returns the column Max should play. The board is not modified.
func (e *Engine) Decide(board domain.Board) (int, error) {
	e.Stats = SearchStats{}

	if board.IsFull() {
		return -1, errors.Wrap(domain.ErrPreconditionViolated, "board is full")
	}
	if eval := e.Eval.Evaluate(&board); eval.Decided() {
		return -1, errors.Wrapf(domain.ErrPreconditionViolated, "player %d already connected four", eval.Winner)
	}

	col, _ := e.root(board)
	return col, nil
}

// root is explore at depth 0, additionally tracking which column produced
// the best score. Ties keep the lowest column.
func (e *Engine) root(board domain.Board) (int, int) {
	e.Stats.Nodes++
	bestCol := -1
	var best int

	for col := 0; col < domain.Columns; col++ {
		if board.IsColumnFull(col) {
			continue
		}
		child := board.Copy()
		child.Place(col, e.Eval.Max)

		var bound *int
		if bestCol != -1 {
			bound = &best
		}
		score := e.explore(&child, 1, e.Eval.Min, bound)

		if bestCol == -1 || score > best {
			best = score
			bestCol = col
		}
	}

	return bestCol, best
}

// explore scores the position with side to move. bound is the parent's
// best score so far (nil when the parent has none yet); once this node's
// result can only be worse for the parent than bound, the rest of the
// columns are skipped.
func (e *Engine) explore(board *domain.Board, depth int, side domain.PlayerID, bound *int) int {
	e.Stats.Nodes++

	eval := e.Eval.Evaluate(board)
	switch eval.Winner {
	case e.Eval.Max:
		return eval.Value - depth*DepthPenalty
	case e.Eval.Min:
		return eval.Value + depth*DepthPenalty
	}

	if depth >= e.Depth {
		return eval.Value
	}

	maximizing := side == e.Eval.Max
	found := false
	var best int

	for col := 0; col < domain.Columns; col++ {
		if board.IsColumnFull(col) {
			continue
		}
		child := board.Copy()
		child.Place(col, side)

		var childBound *int
		if found {
			childBound = &best
		}
		score := e.explore(&child, depth+1, side.Opponent(), childBound)

		if !found || (maximizing && score > best) || (!maximizing && score < best) {
			best = score
			found = true
		}

		if e.Pruning && bound != nil {
			if (maximizing && best > *bound) || (!maximizing && best < *bound) {
				e.Stats.Cutoffs++
				return best
			}
		}
	}

	// a full board without a connection is a draw
	if !found {
		return eval.Value
	}
	return best
}
