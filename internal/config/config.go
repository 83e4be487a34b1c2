// Package config loads the farm service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"

	// Live sources
	SourceHTTP = "http"
	SourceMock = "mock"

	// Log formats
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config is the whole service configuration
type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	GRPC   GRPCConfig   `yaml:"grpc"`
	TLS    TLSConfig    `yaml:"tls"`
	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
	Live   LiveConfig   `yaml:"live"`
	Charts ChartsConfig `yaml:"charts"`
	Farms  []FarmConfig `yaml:"farms"`
}

// HTTPConfig configures the JSON API listener
type HTTPConfig struct {
	Addr string `yaml:"addr"`
	// AllowedOrigins may open websockets besides the service's own host; "*" allows any
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GRPCConfig configures the gRPC listener
type GRPCConfig struct {
	Addr string `yaml:"addr"`
}

// TLSConfig holds certificate paths. An empty Cert disables TLS.
type TLSConfig struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
	CA   string `yaml:"ca"`
}

// Enabled reports whether certificates were configured
func (t TLSConfig) Enabled() bool {
	return t.Cert != ""
}

// LogConfig sets the zerolog level and output format
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreConfig selects the snapshot cache backend
type StoreConfig struct {
	Type       string        `yaml:"type"`
	SQLitePath string        `yaml:"sqlite_path"`
	RedisURL   string        `yaml:"redis_url"`
	TTL        time.Duration `yaml:"ttl"`
}

// LiveConfig describes the farm polled from the live endpoint
type LiveConfig struct {
	FarmID   string        `yaml:"farm_id"`
	Source   string        `yaml:"source"`
	Endpoint string        `yaml:"endpoint"`
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
	TLS      TLSConfig     `yaml:"tls"`
	Mock     MockConfig    `yaml:"mock"`
}

// MockConfig drives the simulated live source
type MockConfig struct {
	Temperature float64 `yaml:"temperature"`
	Humidity    float64 `yaml:"humidity"`
	Sunlight    float64 `yaml:"sunlight"`
	Variation   float64 `yaml:"variation"`
	Seed        int64   `yaml:"seed"`
}

// ChartsConfig tunes detail view sampling and how many views stay open
type ChartsConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Capacity    int           `yaml:"capacity"`
	Seed        int64         `yaml:"seed"`
	MaxViews    int           `yaml:"max_views"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// FarmConfig is one landing page farm with its static fallback values.
// A missing value shows as N/A.
type FarmConfig struct {
	ID          string   `yaml:"id"`
	Temperature *float64 `yaml:"temperature"`
	Humidity    *float64 `yaml:"humidity"`
	Sunlight    *float64 `yaml:"sunlight"`
}

// Reading returns the fallback reading of the farm
func (f FarmConfig) Reading() domain.Reading {
	return domain.Reading{
		Temperature: optional(f.Temperature),
		Humidity:    optional(f.Humidity),
		Sunlight:    optional(f.Sunlight),
	}
}

func optional(v *float64) domain.Value {
	if v == nil {
		return domain.Value{}
	}
	return domain.Number(*v)
}

// Load reads path, applies environment overrides and defaults, then validates.
// An empty path starts from defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FarmIDs returns the normalized farm ids in configuration order
func (c *Config) FarmIDs() []string {
	ids := make([]string, 0, len(c.Farms))
	for _, f := range c.Farms {
		ids = append(ids, domain.NormalizeFarmID(f.ID))
	}
	return ids
}

// Fallbacks returns the static reading table keyed by farm id
func (c *Config) Fallbacks() map[string]domain.Reading {
	out := make(map[string]domain.Reading, len(c.Farms))
	for _, f := range c.Farms {
		out[domain.NormalizeFarmID(f.ID)] = f.Reading()
	}
	return out
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	setString("HTTP_ADDR", &c.HTTP.Addr)
	setString("GRPC_ADDR", &c.GRPC.Addr)
	setString("STORE_TYPE", &c.Store.Type)
	setString("DB_PATH", &c.Store.SQLitePath)
	setString("LIVE_FARM", &c.Live.FarmID)
	setString("LIVE_SOURCE", &c.Live.Source)
	setString("LIVE_ENDPOINT", &c.Live.Endpoint)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("TLS_CERT", &c.TLS.Cert)
	setString("TLS_KEY", &c.TLS.Key)
	setString("TLS_CA", &c.TLS.CA)

	if v := getenv("REDIS_ADDR"); v != "" {
		if !strings.Contains(v, "://") {
			v = "redis://" + v
		}
		c.Store.RedisURL = v
	}
	if v := getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		c.HTTP.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.HTTP.AllowedOrigins = append(c.HTTP.AllowedOrigins, origin)
			}
		}
	}
	if v := getenv("CHART_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CHART_SEED: %w", err)
		}
		c.Charts.Seed = seed
	}
	if v := getenv("CHART_MAX_VIEWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHART_MAX_VIEWS: %w", err)
		}
		c.Charts.MaxViews = n
	}

	if err := setDuration("LIVE_INTERVAL", &c.Live.Interval); err != nil {
		return err
	}
	if err := setDuration("CHART_IDLE_TIMEOUT", &c.Charts.IdleTimeout); err != nil {
		return err
	}
	return setDuration("CHART_INTERVAL", &c.Charts.Interval)
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.GRPC.Addr == "" {
		c.GRPC.Addr = ":50051"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = FormatConsole
	}
	if c.Store.Type == "" {
		c.Store.Type = StoreMemory
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = "./farm.db"
	}
	if c.Live.FarmID == "" {
		c.Live.FarmID = "FARM1"
	}
	if c.Live.Source == "" {
		c.Live.Source = SourceHTTP
	}
	if c.Live.Endpoint == "" {
		c.Live.Endpoint = "http://127.0.0.1:8000/YoloFarms"
	}
	if c.Live.Interval == 0 {
		c.Live.Interval = 5 * time.Second
	}
	if c.Live.Timeout == 0 {
		c.Live.Timeout = 5 * time.Second
	}
	if c.Live.Mock == (MockConfig{}) {
		c.Live.Mock = MockConfig{Temperature: 27, Humidity: 65, Sunlight: 900, Variation: 0.1}
	}
	if c.Charts.Interval == 0 {
		c.Charts.Interval = 5 * time.Second
	}
	if c.Charts.Capacity == 0 {
		c.Charts.Capacity = 20
	}
	if c.Charts.MaxViews == 0 {
		c.Charts.MaxViews = 64
	}
	if c.Charts.IdleTimeout == 0 {
		c.Charts.IdleTimeout = 10 * time.Minute
	}
	if len(c.Farms) == 0 {
		c.Farms = defaultFarms()
	}
}

func defaultFarms() []FarmConfig {
	fallbacks := domain.DefaultFallbacks()
	ids := make([]string, 0, len(fallbacks))
	for id := range fallbacks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	farms := make([]FarmConfig, 0, len(ids))
	for _, id := range ids {
		r := fallbacks[id]
		t, _ := r.Temperature.Float()
		h, _ := r.Humidity.Float()
		s, _ := r.Sunlight.Float()
		farms = append(farms, FarmConfig{ID: id, Temperature: &t, Humidity: &h, Sunlight: &s})
	}
	return farms
}

func (c *Config) validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != FormatConsole && c.Log.Format != FormatJSON {
		return fmt.Errorf("log.format must be %q or %q, got %q", FormatConsole, FormatJSON, c.Log.Format)
	}

	switch c.Store.Type {
	case StoreMemory, StoreSQLite:
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store.redis_url is required for the redis store")
		}
	default:
		return fmt.Errorf("store.type %q is not one of memory, sqlite, redis", c.Store.Type)
	}
	if c.Store.TTL < 0 {
		return fmt.Errorf("store.ttl must not be negative")
	}

	seen := make(map[string]bool, len(c.Farms))
	for i, f := range c.Farms {
		id := domain.NormalizeFarmID(f.ID)
		if id == "" {
			return fmt.Errorf("farms[%d].id is required", i)
		}
		if seen[id] {
			return fmt.Errorf("farms[%d]: duplicate id %q", i, id)
		}
		seen[id] = true
	}
	if !seen[domain.NormalizeFarmID(c.Live.FarmID)] {
		return fmt.Errorf("live.farm_id %q is not listed in farms", c.Live.FarmID)
	}

	switch c.Live.Source {
	case SourceHTTP:
		if !strings.HasPrefix(c.Live.Endpoint, "http://") && !strings.HasPrefix(c.Live.Endpoint, "https://") {
			return fmt.Errorf("live.endpoint must be an http(s) URL, got %q", c.Live.Endpoint)
		}
	case SourceMock:
	default:
		return fmt.Errorf("live.source %q is not one of http, mock", c.Live.Source)
	}
	if c.Live.Interval < 0 || c.Live.Timeout < 0 || c.Charts.Interval < 0 {
		return fmt.Errorf("intervals and timeouts must be positive")
	}
	if c.Charts.Capacity < 0 {
		return fmt.Errorf("charts.capacity must be positive")
	}
	if c.Charts.MaxViews < 0 {
		return fmt.Errorf("charts.max_views must be positive")
	}
	if c.Charts.IdleTimeout < 0 {
		return fmt.Errorf("charts.idle_timeout must be positive")
	}

	if err := c.TLS.validate("tls"); err != nil {
		return err
	}
	return c.Live.TLS.validate("live.tls")
}

func (t TLSConfig) validate(prefix string) error {
	if !t.Enabled() && t.Key == "" && t.CA == "" {
		return nil
	}
	if t.Cert == "" || t.Key == "" || t.CA == "" {
		return fmt.Errorf("%s: cert, key and ca must be set together", prefix)
	}
	return nil
}
