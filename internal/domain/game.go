package domain

import "github.com/pkg/errors"

type Game struct {
	Board         Board
	FirstPlayer   PlayerID
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	Moves         []int // every column played, in order
}

func NewGame(first PlayerID) *Game {
	if first != Player2 {
		first = Player1
	}
	return &Game{
		Board:         NewBoard(),
		FirstPlayer:   first,
		CurrentPlayer: first,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameFinished
	}

	if g.CurrentPlayer != player {
		return -1, ErrNotYourTurn
	}

	row, _, err := g.Board.Place(column, player)
	if err != nil {
		return -1, err
	}

	g.Moves = append(g.Moves, column)

	if HasConnection(&g.Board, row, column) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

func (g *Game) MoveCount() int {
	return len(g.Moves)
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// Replay rebuilds a game from its move log, alternating turns from first.
func Replay(first PlayerID, moves []int) (*Game, error) {
	g := NewGame(first)
	for i, col := range moves {
		if _, err := g.MakeMove(g.CurrentPlayer, col); err != nil {
			return g, errors.Wrapf(err, "replay move %d (column %d)", i+1, col)
		}
	}
	return g, nil
}

// Frames returns the board after each move of the log, for step-by-step replay.
func Frames(first PlayerID, moves []int) ([]Board, error) {
	g := NewGame(first)
	frames := make([]Board, 0, len(moves))
	for i, col := range moves {
		if _, err := g.MakeMove(g.CurrentPlayer, col); err != nil {
			return frames, errors.Wrapf(err, "replay move %d (column %d)", i+1, col)
		}
		frames = append(frames, g.Board)
	}
	return frames, nil
}
