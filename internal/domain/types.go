package domain

var BotNames = map[string]string{
	"easy":   "Alice",
	"medium": "Bob",
	"hard":   "Charles",
}

func GetBotName(difficulty string) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1 // the human, "O"
	Player2 PlayerID = 2 // the computer, "X"
)

// Opponent returns the other side. Empty maps to Empty.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) Symbol() string {
	switch p {
	case Player1:
		return "O"
	case Player2:
		return "X"
	}
	return "*"
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn        Error = "column out of range"
	ErrInvalidPlayer        Error = "invalid player"
	ErrIllegalMove          Error = "column is full"
	ErrNotYourTurn          Error = "not your turn"
	ErrGameFinished         Error = "game is already finished"
	ErrPreconditionViolated Error = "no legal move available"
)
