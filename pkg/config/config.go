// Package config loads lootgrid settings from a TOML file.
//
// Every field has a default, so an empty or missing file is valid. Unknown
// keys are rejected to catch typos:
//
//	resource_dir  = "resource"
//	cell_size     = 64
//	fetch_timeout = "10s"
//	header        = true
//
//	[session]
//	timeout      = "60s"
//	max_retries  = 5
//	death_chance = 0.3
//
//	[cache]
//	backend    = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/lootgrid/pkg/catalog"
	"github.com/matzehuels/lootgrid/pkg/errors"
	"github.com/matzehuels/lootgrid/pkg/raid"
	"github.com/matzehuels/lootgrid/pkg/render"
)

const (
	// AppName names the cache directory.
	AppName = "lootgrid"

	// DefaultFile is looked up in the working directory when no path is
	// given.
	DefaultFile = "lootgrid.toml"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration.
type Config struct {
	ResourceDir  string        `toml:"resource_dir"`
	CellSize     int           `toml:"cell_size"`
	FetchTimeout time.Duration `toml:"fetch_timeout"`
	Workers      int           `toml:"workers"`
	Header       bool          `toml:"header"`
	Font         string        `toml:"font"`

	Catalog CatalogConfig `toml:"catalog"`
	Session SessionConfig `toml:"session"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// CatalogConfig names the catalog files inside the resource directory.
type CatalogConfig struct {
	ContainersFile string   `toml:"containers_file"`
	ItemFiles      []string `toml:"item_files"`
}

// SessionConfig controls raids.
type SessionConfig struct {
	Timeout     time.Duration `toml:"timeout"`
	MaxRetries  int           `toml:"max_retries"`
	DeathChance float64       `toml:"death_chance"`
	Containers  []string      `toml:"containers"`
	// DeathImage is a resource-relative picture saved when a raid ends in
	// death. A missing file is skipped.
	DeathImage string `toml:"death_image"`
}

// CacheConfig selects where fetched item images are cached.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	TTL           time.Duration `toml:"ttl"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	// RedisRetries is how many times the startup PING is attempted.
	RedisRetries int `toml:"redis_retries"`
}

// ServerConfig configures `lootgrid serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultDeathImage is the resource file shown when a raid ends in death.
const DefaultDeathImage = "fail.jpg"

// Default returns the built-in configuration.
func Default() Config {
	rc := raid.DefaultConfig()
	return Config{
		ResourceDir:  "resource",
		CellSize:     render.DefaultCellSize,
		FetchTimeout: 10 * time.Second,
		Catalog: CatalogConfig{
			ContainersFile: catalog.DefaultContainersFile,
			ItemFiles:      slices.Clone(catalog.DefaultItemFiles),
		},
		Session: SessionConfig{
			Timeout:     rc.Timeout,
			MaxRetries:  rc.MaxRetries,
			DeathChance: rc.DeathChance,
			Containers:  rc.Containers,
			DeathImage:  DefaultDeathImage,
		},
		Cache: CacheConfig{
			Backend:      BackendFile,
			TTL:          24 * time.Hour,
			RedisRetries: 3,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads path over the defaults. An empty path reads DefaultFile if it
// exists and otherwise returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.ResourceDir == "":
		return errors.New(errors.ErrCodeInvalidConfig, "resource_dir cannot be empty")
	case c.CellSize <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "cell_size must be positive")
	case c.FetchTimeout <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "fetch_timeout must be positive")
	case c.Workers < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "workers cannot be negative")
	case c.Catalog.ContainersFile == "":
		return errors.New(errors.ErrCodeInvalidConfig, "catalog.containers_file cannot be empty")
	}

	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must be positive")
	}

	if err := c.Raid().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "session")
	}
	return nil
}

// Raid returns the raid settings.
func (c Config) Raid() raid.Config {
	return raid.Config{
		Timeout:     c.Session.Timeout,
		MaxRetries:  c.Session.MaxRetries,
		DeathChance: c.Session.DeathChance,
		Containers:  slices.Clone(c.Session.Containers),
	}
}

// CatalogOptions returns loader options for the catalog files.
func (c Config) CatalogOptions(logger *log.Logger) catalog.Options {
	return catalog.Options{
		ContainersFile: c.Catalog.ContainersFile,
		ItemFiles:      slices.Clone(c.Catalog.ItemFiles),
		Logger:         logger,
	}
}

// CacheDir returns the file cache directory: cache.dir if set, otherwise
// $XDG_CACHE_HOME/lootgrid or ~/.cache/lootgrid.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
