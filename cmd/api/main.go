package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-cpu/internal/config"
	"github.com/iamasit07/connect4-cpu/internal/repository/memory"
	"github.com/iamasit07/connect4-cpu/internal/repository/redis"
	"github.com/iamasit07/connect4-cpu/internal/service/bot"
	"github.com/iamasit07/connect4-cpu/internal/service/cleanup"
	"github.com/iamasit07/connect4-cpu/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-cpu/internal/transport/http"
	"github.com/iamasit07/connect4-cpu/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()

	// 1. Decision cache: Redis when reachable, in-process otherwise
	if err := redis.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer redis.CloseRedis()

	var cache bot.DecisionCache = memory.NewCache()
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		cache = redis.NewRedisCache(redis.RedisClient)
	}

	// 2. Services
	botService := bot.NewService(game.BotPlayer, cache, cfg.DecisionCacheTTL)
	sessionManager := game.NewSessionManager(botService)
	sessionManager.MaxDepth = cfg.SearchDepth
	gameService := game.NewService(sessionManager)

	// 3. Background workers
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionTTL)
	go cleanupWorker.Start(ctx)

	// 4. Handlers
	gameHandler := transportHttp.NewGameHandler(gameService, cfg.DefaultLevel)
	wsHandler := websocket.NewHandler(sessionManager, cfg.BotMoveDelay)
	router := transportHttp.NewRouter(gameHandler, wsHandler.HandleWebSocket, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
