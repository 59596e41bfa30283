package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver        string
	DatabaseURL     string
	MigrationsPath  string
	ServerPort      int
	ByeAutoAdvance  bool
	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment. A .env file is picked up
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	driver := getEnv("DB_DRIVER", "sqlite3")
	if driver != "sqlite3" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		if driver != "sqlite3" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		dbURL = "op_brackets.db?_journal_mode=WAL"
	}

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	autoByes, err := strconv.ParseBool(getEnv("BYE_AUTO_ADVANCE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid BYE_AUTO_ADVANCE environment variable: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT environment variable: %w", err)
	}

	return &Config{
		DBDriver:        driver,
		DatabaseURL:     dbURL,
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "file://migrations"),
		ServerPort:      port,
		ByeAutoAdvance:  autoByes,
		ShutdownTimeout: timeout,
	}, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
