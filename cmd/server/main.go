package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"github.com/kiliankoe/wordquest/internal/api"
	"github.com/kiliankoe/wordquest/internal/catalog"
	"github.com/kiliankoe/wordquest/internal/config"
	"github.com/kiliankoe/wordquest/internal/game"
	"github.com/kiliankoe/wordquest/internal/ws"
	staticserver "github.com/kiliankoe/wordquest/static"
)

const version = "v0.1.0-dev"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`Word Quest - vocabulary memory game server

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                Port to listen on (default: 8080)
  LOG_LEVEL           trace, debug, info, warn, error (default: info)
  LOG_FORMAT          "console" or "json" (default: console)
  CATALOG_FILE        YAML word catalog (default: embedded catalog)
  WORD_COUNT          Words per game (default: 6)
  EVAL_DELAY          Pause before a face-up group is judged (default: 3.2s)
  FEEDBACK_DELAY      How long sentence/crossword feedback stays visible (default: 1s)
  UNLOCK_ALL_LEVELS   Start every game with all levels unlocked (default: false)
  SINGLE_SESSION      Allow only one active session (default: true)
  EXPORT_ENABLED      Append level results to a file (default: false)
  EXPORT_FILE         Path to export results (default: ./wordquest-results.txt)

Examples:
  %s                  Start server with default settings
  %s --port 3000      Start server on port 3000

Visit http://localhost:8080 after starting the server.
`, os.Args[0], os.Args[0], os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("Word Quest %s\n", version)
		return
	}

	cfg := config.FromEnv()
	if *portFlag != "" {
		cfg.Port = *portFlag
	}

	// zerolog setup (human-friendly console unless LOG_FORMAT=json)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogFormat != "json" {
		cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		zerologlog.Logger = zerologlog.Output(cw)
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	words, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		zerologlog.Fatal().Err(err).Str("file", cfg.CatalogFile).Msg("failed to load catalog")
	}
	if len(words) < cfg.WordCount {
		zerologlog.Warn().Int("words", len(words)).Int("wordCount", cfg.WordCount).Msg("catalog smaller than WORD_COUNT, using all words")
	}

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	// Game manager, socket server and JSON API
	rm := game.NewRoomManager(words, cfg.SessionDefaults(), game.WithLogger(zerologlog.Logger))
	defer rm.Close()
	sock := ws.New(rm, cfg)
	io := sock.Mount(r)
	defer io.Close()
	api.New(rm, cfg.SingleSession).Register(r)

	// Serve frontend (if embedded build is present) for all other routes
	r.NoRoute(func(c *gin.Context) {
		staticserver.Handler().ServeHTTP(c.Writer, c.Request)
	})

	zerologlog.Info().Str("port", cfg.Port).Int("words", len(words)).Msg("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		zerologlog.Fatal().Err(err).Msg("server stopped")
	}
}
