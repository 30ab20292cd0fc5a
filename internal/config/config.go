package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

// EnvConfigPath names the environment variable pointing at the YAML config file
const EnvConfigPath = "PROPERTYDEX_CONFIG"

// Store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all runtime configuration
type Config struct {
	GRPC     GRPCConfig              `yaml:"grpc"`
	Store    StoreConfig             `yaml:"store"`
	Cache    CacheConfig             `yaml:"cache"`
	Log      LogConfig               `yaml:"log"`
	Preset   domain.ProjectionInputs `yaml:"preset"` // base inputs for CLI projections
}

// GRPCConfig configures the gRPC listener
type GRPCConfig struct {
	Addr     string `yaml:"addr"`
	APIToken string `yaml:"api_token"`
}

// StoreConfig selects and configures the scenario store
type StoreConfig struct {
	Driver     string         `yaml:"driver"` // sqlite, postgres
	SQLitePath string         `yaml:"sqlite_path"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds either a full connection string or its parts
type PostgresConfig struct {
	ConnStr  string `yaml:"conn_str"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// CacheConfig configures the chart cache. An empty RedisAddr selects the in-memory cache.
type CacheConfig struct {
	RedisAddr string `yaml:"redis_addr"`
	TTL       string `yaml:"ttl"`
}

// LogConfig configures zap
type LogConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration of a local developer run
func DefaultConfig() *Config {
	return &Config{
		GRPC: GRPCConfig{
			Addr:     ":8080",
			APIToken: "dev-token",
		},
		Store: StoreConfig{
			Driver:     DriverSQLite,
			SQLitePath: "propertydex.db",
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     "5432",
				User:     "postgres",
				Password: "postgres",
				DBName:   "propertydex",
			},
		},
		Cache: CacheConfig{
			TTL: "1h",
		},
		Log: LogConfig{
			Level: "info",
		},
		Preset: domain.DefaultProjectionInputs(),
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if it exists),
// then .env, then environment overrides. An empty path falls back to PROPERTYDEX_CONFIG.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GRPC_ADDR"); v != "" {
		c.GRPC.Addr = v
	}
	if v := os.Getenv("API_TOKEN"); v != "" {
		c.GRPC.APIToken = v
	}

	if v := os.Getenv("STORE_DRIVER"); v != "" {
		c.Store.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Store.SQLitePath = v
	}
	if v := os.Getenv("DB_CONN_STR"); v != "" {
		c.Store.Postgres.ConnStr = v
	}
	// Docker friendly individual vars
	pg := &c.Store.Postgres
	for env, target := range map[string]*string{
		"DB_HOST":     &pg.Host,
		"DB_PORT":     &pg.Port,
		"DB_USER":     &pg.User,
		"DB_PASSWORD": &pg.Password,
		"DB_NAME":     &pg.DBName,
	} {
		if v := os.Getenv(env); v != "" {
			*target = v
		}
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("CHART_CACHE_TTL"); v != "" {
		c.Cache.TTL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the values that cannot be defaulted later
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("invalid store driver: %s (valid: %s, %s)", c.Store.Driver, DriverSQLite, DriverPostgres)
	}

	if _, err := time.ParseDuration(c.Cache.TTL); c.Cache.TTL != "" && err != nil {
		return fmt.Errorf("invalid cache ttl %q: %w", c.Cache.TTL, err)
	}

	if err := c.Preset.Validate(); err != nil {
		return fmt.Errorf("invalid preset: %w", err)
	}

	return nil
}

// PostgresConnString returns the explicit connection string or builds one from its parts
func (c *Config) PostgresConnString() string {
	pg := c.Store.Postgres
	if pg.ConnStr != "" {
		return pg.ConnStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
}

// CacheTTL returns the chart cache ttl; an empty value means no expiry
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return d
}
