package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Content  ContentConfig
	Admin    AdminConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds MongoDB connection settings
type DatabaseConfig struct {
	URI                    string
	Name                   string
	MaxPoolSize            uint64
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	ConnectAttempts        int
	ConnectRetryDelay      time.Duration
}

// RedisConfig holds the optional read-cache settings
type RedisConfig struct {
	URL string
}

// ContentConfig holds flat-file content store settings
type ContentConfig struct {
	DataDir   string
	UploadDir string
}

// AdminConfig holds admin session settings
type AdminConfig struct {
	PIN       string
	JWTSecret string
	TokenTTL  time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			URI:                    os.Getenv("MONGODB_URI"),
			Name:                   getEnv("MONGODB_DB", "portfolio"),
			MaxPoolSize:            uint64(getIntEnv("MONGODB_MAX_POOL_SIZE", 10)),
			ServerSelectionTimeout: getDurationEnv("MONGODB_SERVER_SELECTION_TIMEOUT", 5*time.Second),
			SocketTimeout:          getDurationEnv("MONGODB_SOCKET_TIMEOUT", 45*time.Second),
			ConnectAttempts:        getIntEnv("MONGODB_CONNECT_ATTEMPTS", 3),
			ConnectRetryDelay:      getDurationEnv("MONGODB_CONNECT_RETRY_DELAY", 2*time.Second),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Content: ContentConfig{
			DataDir:   getEnv("DATA_DIR", "./data"),
			UploadDir: getEnv("UPLOAD_DIR", "./public/uploads"),
		},
		Admin: AdminConfig{
			PIN:       os.Getenv("ADMIN_PIN"),
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  getDurationEnv("ADMIN_TOKEN_TTL", 12*time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid. The Mongo URI is allowed to
// be empty here: the flat-file endpoints work without a database, and the
// connection manager reports the missing URI to the endpoints that need it.
func (c *Config) Validate() error {
	if c.Database.Name == "" {
		return fmt.Errorf("MONGODB_DB is required")
	}
	if c.Content.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if c.Database.ConnectAttempts < 1 {
		return fmt.Errorf("MONGODB_CONNECT_ATTEMPTS must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
