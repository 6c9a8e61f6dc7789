package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API         APIConfig
	Session     SessionConfig
	Matchmaking MatchmakingConfig
}

type APIConfig struct {
	BaseURL      string
	WebSocketURL string
	Timeout      time.Duration
}

type SessionConfig struct {
	// ConnectTimeout bounds the websocket handshake. Zero means the
	// transport's own timeout behavior applies.
	ConnectTimeout time.Duration
	// DialMaxRetries caps extra dial attempts before giving up. Zero means a
	// single attempt. A closed connection is never redialed automatically.
	DialMaxRetries int
	DialBackoff    time.Duration
	// ChatLogCap caps the in-memory chat log. Zero keeps the full session log.
	ChatLogCap       int
	ReactionLifetime time.Duration
}

type MatchmakingConfig struct {
	PollInterval time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env file: %v", err)
	}

	return &Config{
		API: APIConfig{
			BaseURL:      getEnvOrDefault("ARGUEHUB_API_URL", "http://localhost:1313"),
			WebSocketURL: getEnvOrDefault("ARGUEHUB_WS_URL", "ws://localhost:1313"),
			Timeout:      getDurationOrDefault("HTTP_TIMEOUT", "15s"),
		},
		Session: SessionConfig{
			ConnectTimeout:   getDurationOrDefault("CONNECT_TIMEOUT", "0s"),
			DialMaxRetries:   getIntOrDefault("DIAL_MAX_RETRIES", 0),
			DialBackoff:      getDurationOrDefault("DIAL_BACKOFF", "500ms"),
			ChatLogCap:       getIntOrDefault("CHAT_LOG_CAP", 0),
			ReactionLifetime: getDurationOrDefault("REACTION_LIFETIME", "2s"),
		},
		Matchmaking: MatchmakingConfig{
			PollInterval: getDurationOrDefault("MATCHMAKING_POLL_INTERVAL", "5s"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key, defaultValue string) time.Duration {
	value := getEnvOrDefault(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %v", key, err)
	}
	return duration
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %v", key, err)
	}
	return intValue
}
