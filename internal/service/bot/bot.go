package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/iamasit07/connect4-cpu/internal/domain"
	"github.com/iamasit07/connect4-cpu/internal/repository/memory"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// DifficultyDepths maps a difficulty name to a search horizon in plies.
var DifficultyDepths = map[string]int{
	"easy":   2,
	"medium": 4,
	"hard":   6,
}

const DefaultDifficulty = "medium"

func DepthForDifficulty(difficulty string) int {
	if depth, ok := DifficultyDepths[difficulty]; ok {
		return depth
	}
	return DifficultyDepths[DefaultDifficulty]
}

// CalculateBestMove selects the bot's column for the given difficulty
func CalculateBestMove(board domain.Board, botPlayer domain.PlayerID, difficulty string) (int, error) {
	return NewEngine(DepthForDifficulty(difficulty), botPlayer).Decide(board)
}

// DecisionCache stores decided columns keyed by position and depth.
type DecisionCache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// Service is the entry point the game layer uses to ask for bot moves.
// The search is deterministic, so a cached column is exactly what a fresh
// search would return.
type Service struct {
	Player   domain.PlayerID
	Cache    DecisionCache // optional
	CacheTTL time.Duration
}

func NewService(player domain.PlayerID, cache DecisionCache, cacheTTL time.Duration) *Service {
	return &Service{
		Player:   player,
		Cache:    cache,
		CacheTTL: cacheTTL,
	}
}

// isCacheMiss reports whether err only means the key is absent, for either
// cache backend.
func isCacheMiss(err error) bool {
	return errors.Is(err, redis.Nil) || errors.Is(err, memory.ErrMiss)
}

func decisionKey(board *domain.Board, player domain.PlayerID, depth int) string {
	return fmt.Sprintf("decision:%d:%d:%s", player, depth, board.Key())
}

// Decide returns the bot's column at the given search depth.
func (s *Service) Decide(ctx context.Context, board domain.Board, depth int) (int, error) {
	depth = ClampDepth(depth)
	key := decisionKey(&board, s.Player, depth)

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key); err == nil {
			col, convErr := strconv.Atoi(cached)
			if convErr == nil && !board.IsColumnFull(col) {
				return col, nil
			}
			log.Printf("[BOT] Ignoring bad cache entry %q for %s", cached, key)
		} else if !isCacheMiss(err) {
			log.Printf("[BOT] Cache lookup failed for %s: %v", key, err)
		}
	}

	engine := NewEngine(depth, s.Player)
	start := time.Now()
	col, err := engine.Decide(board)
	if err != nil {
		return -1, errors.Wrap(err, "bot decision")
	}
	log.Printf("[BOT] depth=%d pieces=%d column=%d nodes=%d cutoffs=%d took=%s",
		depth, board.Pieces(), col, engine.Stats.Nodes, engine.Stats.Cutoffs, time.Since(start))

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, col, s.CacheTTL); err != nil {
			log.Printf("[BOT] Failed to cache decision: %v", err)
		}
	}

	return col, nil
}
