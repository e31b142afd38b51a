package game

import (
	"context"

	"github.com/iamasit07/connect4-cpu/internal/domain"
)

// Service is the entry point for game logic (facade)
type Service struct {
	Sessions *SessionManager
}

func NewService(sessions *SessionManager) *Service {
	return &Service{
		Sessions: sessions,
	}
}

// PlayTurn applies the human move and, if the game goes on, the bot's reply.
func (s *Service) PlayTurn(ctx context.Context, gameID string, column int) ([]domain.ServerMessage, error) {
	session, ok := s.Sessions.GetSessionByGameID(gameID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	events, err := session.HandleMove(column)
	if err != nil {
		return nil, err
	}

	botEvents, err := session.HandleBotMove(ctx)
	if err != nil {
		return events, err
	}
	return append(events, botEvents...), nil
}
