package domain

type ClientMessage struct {
	Type   string `json:"type"`
	Column int    `json:"column"`
}

type ServerMessage struct {
	Type        string  `json:"type"`
	Message     string  `json:"message,omitempty"`
	GameID      string  `json:"gameId,omitempty"`
	Opponent    string  `json:"opponent,omitempty"`
	YourPlayer  int     `json:"yourPlayer,omitempty"`
	CurrentTurn int     `json:"currentTurn,omitempty"`
	Column      *int    `json:"column,omitempty"` // only set on move_made
	Row         *int    `json:"row,omitempty"`
	Player      int     `json:"player,omitempty"`
	Board       [][]int `json:"board,omitempty"`
	NextTurn    int     `json:"nextTurn,omitempty"`
	Winner      string  `json:"winner,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
