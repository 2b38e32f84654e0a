package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Environment string `mapstructure:"environment"`

	Server struct {
		Port           string   `mapstructure:"port"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"server"`

	Database struct {
		Driver   string `mapstructure:"driver"` // postgres or sqlite
		URL      string `mapstructure:"url"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"database"`

	Auth struct {
		JWTSecret   string        `mapstructure:"jwt_secret"`
		SessionTTL  time.Duration `mapstructure:"session_ttl"`
		SessionFile string        `mapstructure:"session_file"`
		AdminAPIKey string        `mapstructure:"admin_api_key"`
		BcryptCost  int           `mapstructure:"bcrypt_cost"`
	} `mapstructure:"auth"`

	Kafka struct {
		Enabled bool     `mapstructure:"enabled"`
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// envBindings keeps the plain variable names deployments already use.
var envBindings = map[string]string{
	"environment":        "ENVIRONMENT",
	"server.port":        "PORT",
	"database.driver":    "DB_DRIVER",
	"database.url":       "DATABASE_URL",
	"database.host":      "DB_HOST",
	"database.port":      "DB_PORT",
	"database.user":      "DB_USER",
	"database.password":  "DB_PASSWORD",
	"database.name":      "DB_NAME",
	"database.log_level": "DB_LOG_LEVEL",
	"auth.jwt_secret":    "JWT_SECRET",
	"auth.session_ttl":   "SESSION_TTL",
	"auth.session_file":  "SESSION_FILE",
	"auth.admin_api_key": "ADMIN_API_KEY",
	"kafka.enabled":      "KAFKA_ENABLED",
	"kafka.brokers":      "KAFKA_BROKERS",
	"kafka.topic":        "KAFKA_TOPIC",
	"log.level":          "LOG_LEVEL",
}

// Load reads .env (if present), then config.yaml from path (or ./config when
// path is empty), then environment overrides.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("./config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("environment", "development")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "storefront")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("auth.session_ttl", "168h")
	v.SetDefault("auth.session_file", ".storefront-session")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"127.0.0.1:9092"})
	v.SetDefault("kafka.topic", "storefront.orders")
	v.SetDefault("log.level", "info")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Comma separated lists arrive as a single element from the environment.
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)
	cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("config: session_ttl must be positive")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("config: kafka enabled without brokers")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DSN returns DATABASE_URL when set, otherwise a DSN built from the parts.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	if c.Database.Driver == "sqlite" {
		return c.Database.Name + ".db"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Database.Host, c.Database.User, c.Database.Password, c.Database.Name, c.Database.Port,
	)
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
