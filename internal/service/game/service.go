package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-cpu/internal/domain"
	"github.com/iamasit07/connect4-cpu/internal/service/bot"
	"github.com/iamasit07/connect4-cpu/pkg/uid"
	"github.com/pkg/errors"
)

const (
	HumanPlayer = domain.Player1
	BotPlayer   = domain.Player2

	HumanName = "You"
)

var ErrSessionNotFound = errors.New("game not found")

// MoveDecider picks the bot's column; bot.Service satisfies it.
type MoveDecider interface {
	Decide(ctx context.Context, board domain.Board, depth int) (int, error)
}

type GameSession struct {
	GameID       string
	Difficulty   string
	Depth        int
	BotUsername  string
	Game         *domain.Game
	Reason       string
	CreatedAt    time.Time
	FinishedAt   time.Time
	LastActivity time.Time
	mu           sync.Mutex
	bot          MoveDecider
}

// GameView is a read-only copy of a session, safe to hand to transports.
type GameView struct {
	GameID      string            `json:"gameId"`
	Difficulty  string            `json:"difficulty"`
	Depth       int               `json:"depth"`
	Opponent    string            `json:"opponent"`
	Status      domain.GameStatus `json:"status"`
	Winner      string            `json:"winner,omitempty"`
	Reason      string            `json:"reason,omitempty"`
	FirstPlayer int               `json:"firstPlayer"`
	CurrentTurn int               `json:"currentTurn"`
	Board       [][]int           `json:"board"`
	Moves       []int             `json:"moves"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session map[string]*GameSession // gameID → GameSession
	// MaxDepth caps the search depth a new game may ask for. Zero leaves
	// only the engine's own limit.
	MaxDepth int
	mu       sync.RWMutex
	bot      MoveDecider
}

func NewSessionManager(decider MoveDecider) *SessionManager {
	return &SessionManager{
		Session: make(map[string]*GameSession),
		bot:     decider,
	}
}

// CreateSession starts a new game against the bot. depth overrides the
// difficulty's horizon when positive; either is capped at MaxDepth. When
// botFirst is set the bot's opening move is already on the board when
// this returns.
func (sm *SessionManager) CreateSession(ctx context.Context, difficulty string, depth int, botFirst bool) (*GameSession, []domain.ServerMessage, error) {
	if _, ok := bot.DifficultyDepths[difficulty]; !ok {
		difficulty = bot.DefaultDifficulty
	}
	if depth <= 0 {
		depth = bot.DepthForDifficulty(difficulty)
	}
	if sm.MaxDepth > 0 {
		depth = min(depth, sm.MaxDepth)
	}

	first := HumanPlayer
	if botFirst {
		first = BotPlayer
	}

	now := time.Now()
	gs := &GameSession{
		GameID:       uid.GenerateGameID(),
		Difficulty:   difficulty,
		Depth:        bot.ClampDepth(depth),
		BotUsername:  domain.GetBotName(difficulty),
		Game:         domain.NewGame(first),
		CreatedAt:    now,
		LastActivity: now,
		bot:          sm.bot,
	}

	events := []domain.ServerMessage{gs.startMessage()}
	if botFirst {
		botEvents, err := gs.HandleBotMove(ctx)
		if err != nil {
			return nil, nil, err
		}
		events = append(events, botEvents...)
	}

	sm.mu.Lock()
	sm.Session[gs.GameID] = gs
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: difficulty=%s depth=%d botFirst=%v",
		gs.GameID, gs.Difficulty, gs.Depth, botFirst)
	return gs, events, nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return ErrSessionNotFound
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.Session, gameID)
	return nil
}

func (sm *SessionManager) Snapshots() []GameView {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	views := make([]GameView, 0, len(sm.Session))
	for _, session := range sm.Session {
		views = append(views, session.Snapshot())
	}
	return views
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// CleanupOldSessions drops every session idle for longer than ttl and
// returns how many were removed.
func (sm *SessionManager) CleanupOldSessions(ttl time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()

	for gameID, session := range sm.Session {
		session.mu.Lock()
		idle := now.Sub(session.LastActivity)
		session.mu.Unlock()

		if idle > ttl {
			delete(sm.Session, gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}

func (gs *GameSession) startMessage() domain.ServerMessage {
	return domain.ServerMessage{
		Type:        "game_start",
		GameID:      gs.GameID,
		Opponent:    gs.BotUsername,
		YourPlayer:  int(HumanPlayer),
		CurrentTurn: int(gs.Game.CurrentPlayer),
		Board:       gs.Game.Board.Ints(),
	}
}

func (gs *GameSession) usernameOf(player domain.PlayerID) string {
	if player == BotPlayer {
		return gs.BotUsername
	}
	return HumanName
}

// HandleMove plays the human's column. It does not trigger the bot reply;
// callers follow up with HandleBotMove.
func (gs *GameSession) HandleMove(column int) ([]domain.ServerMessage, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Game.IsFinished() {
		return nil, domain.ErrGameFinished
	}
	if gs.Game.CurrentPlayer != HumanPlayer {
		return nil, domain.ErrNotYourTurn
	}
	if column < 0 || column >= domain.Columns {
		return nil, domain.ErrInvalidColumn
	}
	if gs.Game.Board.IsColumnFull(column) {
		return nil, domain.ErrIllegalMove
	}

	return gs.applyLocked(HumanPlayer, column)
}

// HandleBotMove lets the bot reply if it is its turn; otherwise it is a no-op.
func (gs *GameSession) HandleBotMove(ctx context.Context) ([]domain.ServerMessage, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	// Verify it's actually bot's turn (race condition check)
	if gs.Game.IsFinished() || gs.Game.CurrentPlayer != BotPlayer {
		return nil, nil
	}

	column, err := gs.bot.Decide(ctx, gs.Game.Board, gs.Depth)
	if err != nil {
		return nil, errors.Wrapf(err, "game %s", gs.GameID)
	}

	return gs.applyLocked(BotPlayer, column)
}

// applyLocked makes the move and builds the resulting events. Caller holds gs.mu.
func (gs *GameSession) applyLocked(player domain.PlayerID, column int) ([]domain.ServerMessage, error) {
	row, err := gs.Game.MakeMove(player, column)
	if err != nil {
		return nil, err
	}
	gs.LastActivity = time.Now()

	events := []domain.ServerMessage{{
		Type:     "move_made",
		GameID:   gs.GameID,
		Column:   &column,
		Row:      &row,
		Player:   int(player),
		Board:    gs.Game.Board.Ints(),
		NextTurn: int(gs.Game.CurrentPlayer),
	}}

	if !gs.Game.IsFinished() {
		return events, nil
	}

	gs.FinishedAt = gs.LastActivity
	gameOver := domain.ServerMessage{
		Type:   "game_over",
		GameID: gs.GameID,
		Board:  gs.Game.Board.Ints(),
	}
	if gs.Game.Status == domain.StatusWon {
		gs.Reason = "connect_four"
		gameOver.Winner = gs.usernameOf(gs.Game.Winner)
	} else {
		gs.Reason = "draw"
		gameOver.Winner = "draw"
	}
	gameOver.Reason = gs.Reason

	log.Printf("[GAME] Game %s finished: %s (winner=%s, moves=%d)",
		gs.GameID, gs.Reason, gameOver.Winner, gs.Game.MoveCount())

	return append(events, gameOver), nil
}

func (gs *GameSession) Snapshot() GameView {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	view := GameView{
		GameID:      gs.GameID,
		Difficulty:  gs.Difficulty,
		Depth:       gs.Depth,
		Opponent:    gs.BotUsername,
		Status:      gs.Game.Status,
		Reason:      gs.Reason,
		FirstPlayer: int(gs.Game.FirstPlayer),
		CurrentTurn: int(gs.Game.CurrentPlayer),
		Board:       gs.Game.Board.Ints(),
		Moves:       append([]int(nil), gs.Game.Moves...),
		CreatedAt:   gs.CreatedAt,
	}
	switch gs.Game.Status {
	case domain.StatusWon:
		view.Winner = gs.usernameOf(gs.Game.Winner)
	case domain.StatusDraw:
		view.Winner = "draw"
	}
	return view
}

// Replay rebuilds the board after every move of the session's log.
func (gs *GameSession) Replay() ([][][]int, error) {
	gs.mu.Lock()
	first := gs.Game.FirstPlayer
	moves := append([]int(nil), gs.Game.Moves...)
	gs.mu.Unlock()

	frames, err := domain.Frames(first, moves)
	if err != nil {
		return nil, errors.Wrapf(err, "replay of %s failed", gs.GameID)
	}

	out := make([][][]int, len(frames))
	for i := range frames {
		out[i] = frames[i].Ints()
	}
	return out, nil
}
