package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment names accepted by server.env
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config structure represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port            string          `yaml:"port" env:"PORT"`
	Env             string          `yaml:"env" env:"APP_ENV"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	CORSOrigins     []string        `yaml:"cors_origins" env:"CORS_ORIGINS"`
	TrustedProxies  []string        `yaml:"trusted_proxies" env:"TRUSTED_PROXIES"` // Empty trusts none; client IP is the socket peer
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig configures the per-client token bucket
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RPS     float64 `yaml:"rps" env:"RATE_LIMIT_RPS"`
	Burst   int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// DatabaseConfig holds MongoDB connection settings
type DatabaseConfig struct {
	URI            string        `yaml:"uri" env:"MONGODB_URI"`
	Name           string        `yaml:"name" env:"MONGODB_DB_NAME"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGODB_CONNECT_TIMEOUT"`
	Seed           bool          `yaml:"seed" env:"MONGODB_SEED"`
}

// LoggingConfig holds log level and output format
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// IsProduction reports whether internal error detail must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// IsTest reports whether the service runs under the test environment.
func (c *Config) IsTest() bool {
	return c.Server.Env == EnvTest
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	config.Server.Env = strings.ToLower(strings.TrimSpace(config.Server.Env))

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Default returns the configuration used when neither file nor environment set a value.
func Default() *Config {
	config := &Config{}

	config.Server.Port = "3001"
	config.Server.Env = EnvDevelopment
	config.Server.ShutdownTimeout = 10 * time.Second
	config.Server.CORSOrigins = []string{"*"}
	config.Server.RateLimit = RateLimitConfig{Enabled: true, RPS: 20, Burst: 40}

	config.Database.URI = "mongodb://localhost:27017/demoNextNodeDb"
	config.Database.Name = "demoNextNodeDb"
	config.Database.ConnectTimeout = 10 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	return config
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return errors.New("server port is required")
	}

	switch config.Server.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("unknown environment %q (want development, production or test)", config.Server.Env)
	}

	if config.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	for _, proxy := range config.Server.TrustedProxies {
		if !validProxy(proxy) {
			return fmt.Errorf("invalid trusted proxy %q (want an IP or CIDR)", proxy)
		}
	}

	if config.Server.RateLimit.Enabled && (config.Server.RateLimit.RPS <= 0 || config.Server.RateLimit.Burst <= 0) {
		return errors.New("rate limit rps and burst must be positive when enabled")
	}

	if config.Database.URI == "" {
		return errors.New("database uri is required")
	}

	if config.Database.Name == "" {
		return errors.New("database name is required")
	}

	return nil
}

func validProxy(proxy string) bool {
	if strings.Contains(proxy, "/") {
		_, _, err := net.ParseCIDR(proxy)
		return err == nil
	}
	return net.ParseIP(proxy) != nil
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsDuration gets an environment variable as a duration or returns a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
