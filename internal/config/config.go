package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port             string
	AllowedOrigins   []string
	FrontendURL      string
	JWTSecret        string
	GameTokenTTL     time.Duration
	SearchDepth      int
	DefaultLevel     string
	BotMoveDelay     time.Duration
	SessionTTL       time.Duration
	RedisURL         string
	RedisPassword    string
	DecisionCacheTTL time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	gameTokenTTLMin := GetEnvAsInt("GAME_TOKEN_TTL_MINUTES", 24*60)

	// Engine
	searchDepth := GetEnvAsInt("SEARCH_DEPTH", 6)
	defaultLevel := GetEnv("DEFAULT_DIFFICULTY", "medium")
	botMoveDelayMs := GetEnvAsInt("BOT_MOVE_DELAY_MS", 0)
	sessionTTLMin := GetEnvAsInt("SESSION_TTL_MINUTES", 60)

	// Cache
	redisURL := GetEnv("REDIS_URL", "localhost:6379")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	decisionCacheTTLMin := GetEnvAsInt("DECISION_CACHE_TTL_MINUTES", 24*60)

	AppConfig = &Config{
		Port:             port,
		AllowedOrigins:   allowedOrigins,
		FrontendURL:      frontendURL,
		JWTSecret:        jwtSecret,
		GameTokenTTL:     time.Duration(gameTokenTTLMin) * time.Minute,
		SearchDepth:      searchDepth,
		DefaultLevel:     defaultLevel,
		BotMoveDelay:     time.Duration(botMoveDelayMs) * time.Millisecond,
		SessionTTL:       time.Duration(sessionTTLMin) * time.Minute,
		RedisURL:         redisURL,
		RedisPassword:    redisPassword,
		DecisionCacheTTL: time.Duration(decisionCacheTTLMin) * time.Minute,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
