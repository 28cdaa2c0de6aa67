package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Port            int
	Backend         string
	SeedFile        string // empty uses the embedded roster
	LogLevel        string
	LogFilePath     string
	PageSize        int
	ShutdownTimeout time.Duration
}

// Load reads .env (when present) and the process environment. A missing
// .env is reported through envErr so the caller can log it; it is not fatal.
func Load() (cfg *Config, envErr error) {
	envErr = godotenv.Load()
	return FromEnv(), envErr
}

// FromEnv builds a Config from the environment, applying defaults.
func FromEnv() *Config {
	return &Config{
		Port:            getEnvInt("PORT", 8080),
		Backend:         strings.ToLower(getEnvString("ROSTER_BACKEND", BackendMemory)),
		SeedFile:        getEnvString("ROSTER_SEED_FILE", ""),
		LogLevel:        getEnvString("LOG_LEVEL", "info"),
		LogFilePath:     getEnvString("LOG_FILE_PATH", ""),
		PageSize:        getEnvInt("PAGE_SIZE", 10),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	switch c.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown backend %q (want %s or %s)", ErrInvalidConfig, c.Backend, BackendMemory, BackendSQLite)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("%w: page size must be at least 1", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
