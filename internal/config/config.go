// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"geofighter/internal/game"
)

// Environment variables.
const (
	EnvSeed          = "GEOFIGHTER_SEED"
	EnvLives         = "GEOFIGHTER_LIVES"
	EnvBadChance     = "GEOFIGHTER_BAD_CHANCE"
	EnvGameOverDelay = "GEOFIGHTER_GAMEOVER_DELAY"
	EnvDB            = "GEOFIGHTER_DB"
	EnvLogLevel      = "GEOFIGHTER_LOG_LEVEL"
	EnvMute          = "GEOFIGHTER_MUTE"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Rules    game.Rules
	Seed     uint64
	DBPath   string
	LogLevel zerolog.Level
	Mute     bool
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then parses it. Missing files are not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a getenv-style lookup.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Rules:    game.DefaultRules(),
		Seed:     uint64(time.Now().UnixNano()),
		DBPath:   defaultDBPath(),
		LogLevel: zerolog.InfoLevel,
	}

	if s := getenv(EnvSeed); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvSeed, s, err)
		}
		cfg.Seed = v
	}
	if s := getenv(EnvLives); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvLives, s, err)
		}
		cfg.Rules.StartingLives = v
	}
	if s := getenv(EnvBadChance); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvBadChance, s, err)
		}
		cfg.Rules.BadChance = v
	}
	if s := getenv(EnvGameOverDelay); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvGameOverDelay, s, err)
		}
		cfg.Rules.GameOverDelay = v
	}
	if s := getenv(EnvDB); s != "" {
		cfg.DBPath = s
	}
	if s := getenv(EnvLogLevel); s != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(s))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvLogLevel, s, err)
		}
		cfg.LogLevel = lvl
	}
	if s := getenv(EnvMute); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvMute, s, err)
		}
		cfg.Mute = v
	}

	if err := cfg.Rules.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// NewLogger returns a human-readable console logger at the configured level.
func (c Config) NewLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(c.LogLevel).
		With().Timestamp().Logger()
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "geofighter.db"
	}
	return filepath.Join(dir, "geofighter", "scores.db")
}
