package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	LUIS       LUISConfig
}

// PostgreSQLConfig holds the utterance-log database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	Enabled            bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// LUISConfig holds the published model configuration plus the optional
// request defaults applied through the request-modification hook.
type LUISConfig struct {
	AppID           string
	SubscriptionKey string
	Endpoint        string
	APIVersion      string
	ScoreThreshold  float64
	TimeoutSeconds  int

	// Tri-state defaults: nil means the parameter is left unset unless a
	// caller asks for it explicitly.
	Staging    *bool
	Verbose    *bool
	SpellCheck *bool
	LogQueries *bool

	BingSpellCheckKey string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "recognizer"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
			Enabled:            getEnvAsBool("UTTERANCE_LOG_ENABLED", true),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		LUIS: LUISConfig{
			AppID:             getEnv("LUIS_APP_ID", ""),
			SubscriptionKey:   getEnv("LUIS_SUBSCRIPTION_KEY", ""),
			Endpoint:          getEnv("LUIS_ENDPOINT", "https://westus.api.cognitive.microsoft.com/luis/v2.0/apps/"),
			APIVersion:        getEnv("LUIS_API_VERSION", "v2"),
			ScoreThreshold:    getEnvAsFloat("LUIS_SCORE_THRESHOLD", 0.0),
			TimeoutSeconds:    getEnvAsInt("LUIS_TIMEOUT", 20),
			Staging:           getEnvAsOptionalBool("LUIS_STAGING"),
			Verbose:           getEnvAsOptionalBool("LUIS_VERBOSE"),
			SpellCheck:        getEnvAsOptionalBool("LUIS_SPELL_CHECK"),
			LogQueries:        getEnvAsOptionalBool("LUIS_LOG_QUERIES"),
			BingSpellCheckKey: getEnv("LUIS_BING_SPELL_CHECK_KEY", ""),
		},
	}

	if cfg.LUIS.AppID == "" || cfg.LUIS.SubscriptionKey == "" {
		return nil, fmt.Errorf("LUIS_APP_ID and LUIS_SUBSCRIPTION_KEY are required")
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns the PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsOptionalBool keeps the unset/true/false distinction: an absent or
// unparseable variable yields nil rather than false.
func getEnvAsOptionalBool(key string) *bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return nil
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &boolVal
}
