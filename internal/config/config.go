// Package config reads server settings from flags with environment fallbacks.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr             string
	AllowOrigins     string
	ReadBufferSize   int
	WriteBufferSize  int
	MatchInterval    time.Duration
	LogLevel         log.Level
	WebSocketOrigins []string
}

func Default() Config {
	return Config{
		Addr:             ":3000",
		AllowOrigins:     "http://localhost:5173",
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		MatchInterval:    time.Second,
		LogLevel:         log.LevelInfo,
		WebSocketOrigins: []string{"http://localhost:5173"},
	}
}

// Load parses args (without the program name). Each flag defaults to the
// matching KCHESS_* environment variable when set.
func Load(args []string) (Config, error) {
	def := Default()
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("addr", getenv("KCHESS_ADDR", def.Addr), "listen address")
	origins := fs.String("allow-origins", getenv("KCHESS_ALLOW_ORIGINS", def.AllowOrigins), "comma-separated CORS and websocket origins")
	readBuf := fs.Int("ws-read-buffer", getenvInt("KCHESS_WS_READ_BUFFER", def.ReadBufferSize), "websocket read buffer size")
	writeBuf := fs.Int("ws-write-buffer", getenvInt("KCHESS_WS_WRITE_BUFFER", def.WriteBufferSize), "websocket write buffer size")
	interval := fs.String("match-interval", getenv("KCHESS_MATCH_INTERVAL", def.MatchInterval.String()), "matchmaking tick interval")
	level := fs.String("log-level", getenv("KCHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:            *addr,
		AllowOrigins:    *origins,
		ReadBufferSize:  *readBuf,
		WriteBufferSize: *writeBuf,
	}
	for _, o := range strings.Split(*origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.WebSocketOrigins = append(cfg.WebSocketOrigins, o)
		}
	}

	d, err := time.ParseDuration(*interval)
	if err != nil {
		return Config{}, fmt.Errorf("match interval: %w", err)
	}
	if d <= 0 {
		return Config{}, fmt.Errorf("match interval must be positive, got %s", d)
	}
	cfg.MatchInterval = d

	cfg.LogLevel, err = ParseLevel(*level)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
