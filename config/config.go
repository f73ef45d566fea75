// Package config loads nestfinder settings from defaults, an optional YAML
// file and NESTFINDER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const LISTINGS_RESOURCE = "listings.json"
const PARKS_RESOURCE = "parks.geojson"
const SCHOOLS_RESOURCE = "schools.geojson"
const GROCERIES_RESOURCE = "groceries.json"
const INCIDENTS_RESOURCE = "incidents.json"
const TRAVELTIME_FIXTURE_RESOURCE = "traveltime_mock.json"

type Config struct {
	Env         string            `koanf:"env"`
	Server      ServerConfig      `koanf:"server"`
	Log         LogConfig         `koanf:"log"`
	Redis       RedisConfig       `koanf:"redis"`
	SQLite      SQLiteConfig      `koanf:"sqlite"`
	TravelTime  TravelTimeConfig  `koanf:"traveltime"`
	Search      SearchConfig      `koanf:"search"`
	Commute     CommuteConfig     `koanf:"commute"`
	Walkability WalkabilityConfig `koanf:"walkability"`
	Data        DataConfig        `koanf:"data"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// RedisConfig selects the point-of-interest geo index. When disabled an
// in-memory index is used.
type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type TravelTimeConfig struct {
	BaseURL           string        `koanf:"base_url"`
	AppID             string        `koanf:"app_id"`
	APIKey            string        `koanf:"api_key"`
	Country           string        `koanf:"country"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// HasCredentials reports whether the real API can be used.
func (c TravelTimeConfig) HasCredentials() bool {
	return c.AppID != "" && c.APIKey != ""
}

type SearchConfig struct {
	CandidateLimit int `koanf:"candidate_limit"`
	TopK           int `koanf:"top_k"`
	MaxConcurrency int `koanf:"max_concurrency"`
}

type CommuteConfig struct {
	DefaultDestinationLat float64 `koanf:"default_destination_lat"`
	DefaultDestinationLng float64 `koanf:"default_destination_lng"`
}

type WalkabilityConfig struct {
	RadiusMeters float64 `koanf:"radius_meters"`
}

// DataConfig points at the datasets loaded once at startup. Empty paths are
// skipped; relative paths resolve against BaseDir.
type DataConfig struct {
	Listings          string `koanf:"listings"`
	Parks             string `koanf:"parks"`
	Schools           string `koanf:"schools"`
	Groceries         string `koanf:"groceries"`
	Incidents         string `koanf:"incidents"`
	Neighborhoods     string `koanf:"neighborhoods"`
	MarketAverages    string `koanf:"market_averages"`
	TravelTimeFixture string `koanf:"traveltime_fixture"`
}

func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = EnvDev
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "redis:6379"
	}

	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = "nestfinder.db"
	}

	if cfg.TravelTime.BaseURL == "" {
		cfg.TravelTime.BaseURL = "https://api.traveltimeapp.com"
	}
	if cfg.TravelTime.Country == "" {
		cfg.TravelTime.Country = "CA"
	}
	if cfg.TravelTime.Timeout == 0 {
		cfg.TravelTime.Timeout = 5 * time.Second
	}
	if cfg.TravelTime.RequestsPerSecond == 0 {
		cfg.TravelTime.RequestsPerSecond = 5
	}
	if cfg.TravelTime.Burst == 0 {
		cfg.TravelTime.Burst = 10
	}

	if cfg.Search.CandidateLimit == 0 {
		cfg.Search.CandidateLimit = 30
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 10
	}
	if cfg.Search.MaxConcurrency == 0 {
		cfg.Search.MaxConcurrency = 8
	}

	// downtown Ottawa
	if cfg.Commute.DefaultDestinationLat == 0 && cfg.Commute.DefaultDestinationLng == 0 {
		cfg.Commute.DefaultDestinationLat = 45.4215
		cfg.Commute.DefaultDestinationLng = -75.6972
	}

	if cfg.Walkability.RadiusMeters == 0 {
		cfg.Walkability.RadiusMeters = 800
	}

	if cfg.Data.Listings == "" {
		cfg.Data.Listings = filepath.Join(RESOURCES_PATH_PREFIX, LISTINGS_RESOURCE)
	}
	if cfg.Data.Parks == "" {
		cfg.Data.Parks = filepath.Join(RESOURCES_PATH_PREFIX, PARKS_RESOURCE)
	}
	if cfg.Data.Schools == "" {
		cfg.Data.Schools = filepath.Join(RESOURCES_PATH_PREFIX, SCHOOLS_RESOURCE)
	}
	if cfg.Data.Groceries == "" {
		cfg.Data.Groceries = filepath.Join(RESOURCES_PATH_PREFIX, GROCERIES_RESOURCE)
	}
	if cfg.Data.Incidents == "" {
		cfg.Data.Incidents = filepath.Join(RESOURCES_PATH_PREFIX, INCIDENTS_RESOURCE)
	}
	if cfg.Data.TravelTimeFixture == "" {
		cfg.Data.TravelTimeFixture = filepath.Join(RESOURCES_PATH_PREFIX, TRAVELTIME_FIXTURE_RESOURCE)
	}
}

// Validate rejects settings the search pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Env != EnvDev && c.Env != EnvProd {
		errs = append(errs, fmt.Errorf("env must be %q or %q, got %q", EnvDev, EnvProd, c.Env))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	if c.Search.CandidateLimit <= 0 {
		errs = append(errs, errors.New("search.candidate_limit must be positive"))
	}
	if c.Search.TopK <= 0 {
		errs = append(errs, errors.New("search.top_k must be positive"))
	}
	if c.Search.MaxConcurrency <= 0 {
		errs = append(errs, errors.New("search.max_concurrency must be positive"))
	}
	if c.TravelTime.Timeout <= 0 {
		errs = append(errs, errors.New("traveltime.timeout must be positive"))
	}
	if c.TravelTime.RequestsPerSecond <= 0 || c.TravelTime.Burst <= 0 {
		errs = append(errs, errors.New("traveltime rate limit must be positive"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Walkability.RadiusMeters <= 0 {
		errs = append(errs, errors.New("walkability.radius_meters must be positive"))
	}
	return errors.Join(errs...)
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}
	return wd
}

// ResolvePath anchors a relative dataset path at BaseDir. Empty stays empty.
func ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(BaseDir(), path)
}
