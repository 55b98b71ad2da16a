package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment overrides, taking precedence over the YAML file.
const (
	supabaseURLEnv = "SUPABASE_URL"
	supabaseKeyEnv = "SUPABASE_KEY"
	postgresDSNEnv = "DATABASE_DSN"
	redisAddrEnv   = "REDIS_ADDR"
	listenAddrEnv  = "LISTEN_ADDR"
)

// Backend names accepted in StoreConfig.Backend.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds the settings required across the application.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Trending TrendingConfig `yaml:"trending"`
}

// StoreConfig selects and configures the backing store.
type StoreConfig struct {
	// Backend is one of supabase, postgres, memory.
	Backend     string `yaml:"backend"`
	SupabaseURL string `yaml:"supabaseUrl"`
	SupabaseKey string `yaml:"supabaseKey"`
	PostgresDSN string `yaml:"postgresDsn"`
	// SeedFile seeds the memory backend in dev mode.
	SeedFile string `yaml:"seedFile"`
}

// ServerConfig describes the HTTP surface.
type ServerConfig struct {
	ListenAddr string `yaml:"listenAddr"`
}

// RedisConfig wires the optional server-side client-state store.
type RedisConfig struct {
	Addr string `yaml:"addr"`
}

// TrendingConfig controls the trending-tags cache refresh.
type TrendingConfig struct {
	// CronExpression drives periodic refresh, e.g. "@every 10m".
	CronExpression string `yaml:"cronExpression"`
	Limit          int    `yaml:"limit"`
}

// Load reads the YAML file (optional) and applies env overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Store:    StoreConfig{Backend: BackendMemory},
		Server:   ServerConfig{ListenAddr: ":8080"},
		Trending: TrendingConfig{CronExpression: "@every 10m", Limit: 8},
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(supabaseURLEnv); v != "" {
		cfg.Store.SupabaseURL = v
	}
	if v := os.Getenv(supabaseKeyEnv); v != "" {
		cfg.Store.SupabaseKey = v
	}
	if v := os.Getenv(postgresDSNEnv); v != "" {
		cfg.Store.PostgresDSN = v
	}
	if v := os.Getenv(redisAddrEnv); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv(listenAddrEnv); v != "" {
		cfg.Server.ListenAddr = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendSupabase:
		if c.Store.SupabaseURL == "" || c.Store.SupabaseKey == "" {
			return fmt.Errorf("supabase backend requires supabaseUrl and supabaseKey")
		}
	case BackendPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("postgres backend requires postgresDsn")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}
