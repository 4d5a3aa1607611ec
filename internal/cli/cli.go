// Package cli implements the lootgrid command-line interface.
//
// Commands:
//   - open: render one opening of a container to a PNG file
//   - raid: interactive open / continue / extract loop
//   - serve: HTTP API for renders
//   - catalog: list and validate the catalog
//   - cache: manage the fetched image cache
//
// All commands read lootgrid.toml (or --config) and support --verbose (-v)
// for debug logging. The logger travels through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lootgrid/pkg/assets"
	"github.com/matzehuels/lootgrid/pkg/buildinfo"
	"github.com/matzehuels/lootgrid/pkg/cache"
	"github.com/matzehuels/lootgrid/pkg/catalog"
	"github.com/matzehuels/lootgrid/pkg/config"
	"github.com/matzehuels/lootgrid/pkg/fonts"
	"github.com/matzehuels/lootgrid/pkg/render"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	resourceDir string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "lootgrid",
		Short:        "Lootgrid opens loot containers and draws what is inside",
		Long:         `Lootgrid picks items for a loot container by type and grade weight, packs them into the container's grid and renders the result as a PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVarP(&c.resourceDir, "resources", "r", "", "resource directory (overrides resource_dir)")

	root.AddCommand(c.openCommand())
	root.AddCommand(c.raidCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Environment
// =============================================================================

// loadConfig reads the config file and applies global flag overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.resourceDir != "" {
		cfg.ResourceDir = c.resourceDir
	}
	return cfg, nil
}

// env bundles what the rendering commands need.
type env struct {
	cfg      config.Config
	catalog  *catalog.Catalog
	cache    cache.Cache
	local    *assets.Local
	renderer *render.Renderer
}

func (e *env) Close() error {
	return e.cache.Close()
}

// loadCatalog loads and validates the catalog, logging every problem.
func loadCatalog(cfg config.Config, logger *log.Logger) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.ResourceDir, cfg.CatalogOptions(logger))
	if err != nil {
		return nil, err
	}
	problems, err := cat.Validate()
	for _, p := range problems {
		logger.Warn("catalog problem", "detail", p.String())
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// newEnv loads the catalog and wires cache, asset strategies and renderer.
func (c *CLI) newEnv(ctx context.Context, cfg config.Config, noCache bool) (*env, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		return nil, err
	}

	backend := cfg.Cache.Backend
	if noCache {
		backend = config.BackendNone
	}
	store, err := newCache(ctx, cfg, backend)
	if err != nil {
		return nil, err
	}

	opts := render.Options{
		CellSize: cfg.CellSize,
		Workers:  cfg.Workers,
		Header:   cfg.Header,
	}
	if cfg.Font != "" {
		if opts.Font, err = fonts.Load(cfg.Font); err != nil {
			store.Close()
			return nil, err
		}
	}

	local := assets.NewLocal(cfg.ResourceDir)
	remote := assets.NewRemote(
		assets.WithTimeout(cfg.FetchTimeout),
		assets.WithCache(store, cache.NewScopedKeyer(cache.NewDefaultKeyer(), config.AppName+":"), cfg.Cache.TTL),
	)
	resolver := assets.NewResolver(logger, remote, local)
	prog.done("ready", "resources", cfg.ResourceDir, "cache", backend)

	return &env{
		cfg:      cfg,
		catalog:  cat,
		cache:    store,
		local:    local,
		renderer: render.New(cat, resolver, local, logger, opts),
	}, nil
}

// newCache opens the configured cache backend.
func newCache(ctx context.Context, cfg config.Config, backend string) (cache.Cache, error) {
	switch backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,

			ConnectAttempts: cfg.Cache.RedisRetries,
		})
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			loggerFromContext(ctx).Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
		return fc, nil
	}
}
