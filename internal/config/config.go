package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the client.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	Keystore    KeystoreConfig
	Session     SessionConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	UserAgent      string
	MaxConns       int
}

type KeystoreConfig struct {
	Path string
}

type SessionConfig struct {
	RefreshEnabled  bool
	RefreshInterval time.Duration
}

type ContextConfig struct {
	ShutdownTimeout time.Duration
	MonitorInterval time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the client can run in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "careerconnect"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:        getString("API_BASE_URL", "http://localhost:5000/api"),
			RequestTimeout: getDuration("API_REQUEST_TIMEOUT", 10*time.Second),
			UserAgent:      getString("API_USER_AGENT", "careerconnect-client"),
			MaxConns:       getInt("API_MAX_CONNS", 8),
		},
		Keystore: KeystoreConfig{
			Path: getString("KEYSTORE_PATH", defaultKeystorePath()),
		},
		Session: SessionConfig{
			RefreshEnabled:  getBool("SESSION_REFRESH_ENABLED", true),
			RefreshInterval: getDuration("SESSION_REFRESH_INTERVAL", 5*time.Minute),
		},
		Context: ContextConfig{
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
			MonitorInterval: getDuration("MONITOR_INTERVAL_SECONDS", 30*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "console"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func defaultKeystorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data/keystore.db"
	}
	return filepath.Join(home, ".careerconnect", "keystore.db")
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
