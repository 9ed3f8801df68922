// Package config loads and validates resultsmcp configuration.
//
// Configuration is resolved in three layers, later layers winning:
//  1. built-in defaults
//  2. a YAML config file (.resultsmcp.yaml in the data root, or --config)
//  3. RESULTSMCP_* environment variables
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
)

// SearchMode selects the corpus the search index is built from.
type SearchMode string

const (
	// SearchModeCorpus aggregates every tournament record in the local store.
	SearchModeCorpus SearchMode = "corpus"
	// SearchModeCatalog fetches the external tournament/school catalog.
	SearchModeCatalog SearchMode = "catalog"
)

// Config represents the complete resultsmcp configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Data    DataConfig    `yaml:"data" json:"data"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`
	Cache   CacheConfig   `yaml:"cache" json:"cache"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// DataConfig locates the tournament record store.
type DataConfig struct {
	// Root is the directory containing data/results/<id>.yaml records.
	Root string `yaml:"root" json:"root"`
}

// SearchConfig configures the fuzzy search index.
type SearchConfig struct {
	// Mode selects the search corpus: "corpus" (local records, default)
	// or "catalog" (external tournament/school catalog).
	Mode SearchMode `yaml:"mode" json:"mode"`

	// MaxResults caps result list length when the caller gives no limit.
	MaxResults int `yaml:"max_results" json:"max_results"`

	// MinScore is the similarity threshold below which matches are
	// discarded as noise.
	MinScore int `yaml:"min_score" json:"min_score"`

	// Workers bounds concurrent per-tournament loads during corpus
	// aggregation. Defaults to NumCPU.
	Workers int `yaml:"workers" json:"workers"`
}

// CatalogConfig configures the external read-only catalog.
type CatalogConfig struct {
	// TournamentsURL serves the tournament metadata list (JSON).
	TournamentsURL string `yaml:"tournaments_url" json:"tournaments_url"`
	// SchoolsURL serves the comma-separated school directory.
	SchoolsURL string `yaml:"schools_url" json:"schools_url"`
	// FetchTimeout bounds each catalog fetch.
	FetchTimeout time.Duration `yaml:"fetch_timeout" json:"fetch_timeout"`
}

// CacheConfig configures the interpreted-tournament cache.
type CacheConfig struct {
	// Size is the maximum number of interpreted tournaments kept in
	// memory. Zero disables caching.
	Size int `yaml:"size" json:"size"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Data: DataConfig{
			Root: ".",
		},
		Search: SearchConfig{
			Mode:       SearchModeCorpus,
			MaxResults: 10,
			MinScore:   20,
			Workers:    runtime.NumCPU(),
		},
		Catalog: CatalogConfig{
			TournamentsURL: "https://www.duosmium.org/data/tournaments.json",
			SchoolsURL:     "https://www.duosmium.org/data/schools.csv",
			FetchTimeout:   10 * time.Second,
		},
		Cache: CacheConfig{
			Size: 128,
		},
		Server: ServerConfig{
			Transport: "stdio",
			LogLevel:  "info",
		},
	}
}

// Load resolves configuration from defaults, an optional YAML file, and
// environment variables.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		// Default config file next to the data, missing is fine.
		candidate := filepath.Join(cfg.Data.Root, ".resultsmcp.yaml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, rerrors.New(rerrors.ErrCodeConfigNotFound,
				fmt.Sprintf("cannot read config file %s: %v", path, err), err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, rerrors.New(rerrors.ErrCodeConfigInvalid,
				fmt.Sprintf("cannot parse config file %s: %v", path, err), err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays RESULTSMCP_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("RESULTSMCP_DATA_ROOT"); v != "" {
		c.Data.Root = v
	}
	if v := os.Getenv("RESULTSMCP_SEARCH_MODE"); v != "" {
		c.Search.Mode = SearchMode(v)
	}
	if v := os.Getenv("RESULTSMCP_SEARCH_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.MaxResults = n
		}
	}
	if v := os.Getenv("RESULTSMCP_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Cache.Size = n
		}
	}
	if v := os.Getenv("RESULTSMCP_CATALOG_TOURNAMENTS_URL"); v != "" {
		c.Catalog.TournamentsURL = v
	}
	if v := os.Getenv("RESULTSMCP_CATALOG_SCHOOLS_URL"); v != "" {
		c.Catalog.SchoolsURL = v
	}
	if v := os.Getenv("RESULTSMCP_LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	switch c.Search.Mode {
	case SearchModeCorpus, SearchModeCatalog:
	default:
		return rerrors.Newf(rerrors.ErrCodeConfigInvalid,
			"search.mode must be %q or %q, got %q",
			SearchModeCorpus, SearchModeCatalog, c.Search.Mode)
	}
	if c.Search.MaxResults <= 0 {
		return rerrors.Newf(rerrors.ErrCodeConfigInvalid,
			"search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.Workers <= 0 {
		c.Search.Workers = runtime.NumCPU()
	}
	if c.Cache.Size < 0 {
		return rerrors.Newf(rerrors.ErrCodeConfigInvalid,
			"cache.size must not be negative, got %d", c.Cache.Size)
	}
	if c.Search.Mode == SearchModeCatalog {
		if c.Catalog.TournamentsURL == "" || c.Catalog.SchoolsURL == "" {
			return rerrors.New(rerrors.ErrCodeConfigInvalid,
				"catalog mode requires catalog.tournaments_url and catalog.schools_url", nil)
		}
	}
	if c.Server.Transport != "stdio" {
		return rerrors.Newf(rerrors.ErrCodeConfigInvalid,
			"server.transport %q is not supported (only stdio)", c.Server.Transport)
	}
	return nil
}

// ResultsDir returns the directory holding per-tournament records.
func (c *Config) ResultsDir() string {
	return filepath.Join(c.Data.Root, "data", "results")
}
