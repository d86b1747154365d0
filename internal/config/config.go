package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/kiliankoe/wordquest/internal/game"
)

type Config struct {
	Port          string
	LogLevel      string
	LogFormat     string
	CatalogFile   string
	WordCount     int
	EvalDelay     time.Duration
	FeedbackDelay time.Duration
	UnlockAll     bool
	SingleSession bool
	ExportEnabled bool
	ExportFile    string
}

// FromEnv reads the process environment, after loading a .env file when one is present.
func FromEnv() Config {
	_ = godotenv.Load()

	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.LogFormat = getenv("LOG_FORMAT", "console")
	c.CatalogFile = os.Getenv("CATALOG_FILE")
	c.WordCount = getenvInt("WORD_COUNT", game.DefaultWordCount)
	c.EvalDelay = getenvDuration("EVAL_DELAY", game.DefaultEvalDelay)
	c.FeedbackDelay = getenvDuration("FEEDBACK_DELAY", game.DefaultFeedbackDelay)
	c.UnlockAll = getenv("UNLOCK_ALL_LEVELS", "false") == "true"
	c.SingleSession = getenv("SINGLE_SESSION", "true") == "true"
	c.ExportEnabled = getenv("EXPORT_ENABLED", "false") == "true"
	c.ExportFile = getenv("EXPORT_FILE", "./wordquest-results.txt")
	return c
}

// SessionDefaults is the server-side part of every new session's configuration.
func (c Config) SessionDefaults() game.SessionConfig {
	return game.SessionConfig{
		Mode:          game.ModeSolo,
		WordCount:     c.WordCount,
		EvalDelay:     c.EvalDelay,
		FeedbackDelay: c.FeedbackDelay,
		UnlockAll:     c.UnlockAll,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getenvDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d < 0 {
		return def
	}
	return d
}
