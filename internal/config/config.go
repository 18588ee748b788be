package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"

	StorageMemory = "memory"
	StorageS3     = "s3"
)

// Config holds the application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	TLS  TLS    `mapstructure:"tls"`
	Mode string `mapstructure:"mode"`
}

// TLS holds the TLS configuration.
type TLS struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

// PersistenceConfig selects and configures the repository backend.
type PersistenceConfig struct {
	Driver   string         `mapstructure:"driver"`
	Database DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig holds the PostgreSQL configuration.
type DatabaseConfig struct {
	URL               string        `mapstructure:"url"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

// AuthConfig holds the authentication configuration.
type AuthConfig struct {
	TokenTTL         time.Duration `mapstructure:"token_ttl"`
	JWTRSAPrivateKey string        `mapstructure:"jwt_rsa_private_key"`
	CredentialsFile  string        `mapstructure:"credentials_file"`
}

// StorageConfig selects and configures the proof store.
type StorageConfig struct {
	Provider string `mapstructure:"provider"`
	Bucket   string `mapstructure:"bucket"`
	Region   string `mapstructure:"region"`
}

// LeaderboardConfig tunes the leaderboard query and its cache.
type LeaderboardConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Limit    int           `mapstructure:"limit"`
}

// Load loads the configuration from a file and environment variables.
func Load(path string) (*Config, error) {
	vip := viper.New()
	if path != "" {
		vip.SetConfigFile(path)
	} else {
		vip.SetConfigName("config")
		vip.AddConfigPath("./configs")
		vip.AddConfigPath(".")
	}

	vip.SetConfigType("yaml")
	vip.SetEnvPrefix("CREWSCORE")
	vip.AutomaticEnv()
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	vip.SetDefault("server.port", 50061)
	vip.SetDefault("server.mode", "development")
	vip.SetDefault("persistence.driver", DriverMemory)
	vip.SetDefault("storage.provider", StorageMemory)
	vip.SetDefault("auth.token_ttl", time.Hour)
	vip.SetDefault("leaderboard.cache_ttl", 30*time.Second)
	vip.SetDefault("leaderboard.limit", 100)

	if err := vip.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Persistence.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("unknown persistence driver %q", c.Persistence.Driver)
	}
	if c.Persistence.Driver == DriverPostgres && c.Persistence.Database.URL == "" {
		return fmt.Errorf("persistence.database.url is required for the postgres driver")
	}

	switch c.Storage.Provider {
	case StorageMemory, StorageS3:
	default:
		return fmt.Errorf("unknown storage provider %q", c.Storage.Provider)
	}
	if c.Storage.Provider == StorageS3 && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required for the s3 provider")
	}

	return nil
}

// Getenv returns an environment variable or a default value.
func Getenv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
