package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	ServerPort      string
	Store           string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	LogLevel        string
	LogFormat       string
	SeedDemo        bool
	CORSOrigin      string
	DisplayTimezone string
}

// Load reads configuration from the environment. Values in a .env file in the
// working directory are loaded first but never override real variables.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Store:           getEnv("STORE", StorePostgres),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "replydesk"),
		DBPassword:      getEnv("DB_PASSWORD", "replydesk_dev_password"),
		DBName:          getEnv("DB_NAME", "replydesk"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		SeedDemo:        getEnvBool("SEED_DEMO", true),
		CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "UTC"),
	}
}

// DSN is the Postgres connection string for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// Location resolves DisplayTimezone, the zone message timestamps are shown in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	return loc, nil
}

func (c *Config) Validate() error {
	if c.Store != StorePostgres && c.Store != StoreMemory {
		return fmt.Errorf("invalid STORE %q: must be %s or %s", c.Store, StorePostgres, StoreMemory)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
