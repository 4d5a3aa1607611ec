package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lootgrid/pkg/errors"
	"github.com/matzehuels/lootgrid/pkg/render"
)

// openOpts holds the flags of the open command.
type openOpts struct {
	output    string // output PNG path
	requester string // name shown in the header
	seed      uint64 // fixed seed, used when seedSet
	seedSet   bool
	header    bool // force the header band on
	noCache   bool // skip the image cache
}

// openCommand renders one opening of a container.
func (c *CLI) openCommand() *cobra.Command {
	var opts openOpts

	cmd := &cobra.Command{
		Use:   "open <container>",
		Short: "Open a container and write the loot image",
		Example: `  lootgrid open bird_nest
  lootgrid open large_safe -o safe.png --requester alice --header
  lootgrid open small_safe --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			return c.runOpen(cmd.Context(), args[0], opts)
		},
		ValidArgsFunction: c.completeContainers,
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <container>-<id>.png)")
	cmd.Flags().StringVar(&opts.requester, "requester", "", "player name shown in the header")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible opening")
	cmd.Flags().BoolVar(&opts.header, "header", false, "draw the title band above the grid")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not use the image cache")

	return cmd
}

func (c *CLI) runOpen(ctx context.Context, key string, opts openOpts) error {
	if err := errors.ValidateContainerKey(key); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.header {
		cfg.Header = true
	}

	e, err := c.newEnv(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer e.Close()

	renderer := e.renderer
	if opts.seedSet {
		renderer = renderer.WithSeed(opts.seed)
	}

	spin := newSpinner(ctx, os.Stderr, "opening "+key)
	spin.Start()
	res, err := renderer.Open(ctx, key, opts.requester)
	spin.Stop()
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = defaultOutputName(key, res)
	}
	if err := writePNG(path, res); err != nil {
		return err
	}

	printSuccess("Opened %s", StyleHighlight.Render(res.Container.DisplayName()))
	printDetail("%s", lootSummary(res.Stats.Selected, res.Stats.Placed, res.Stats.Dropped))
	for _, it := range res.Placed() {
		printDetail("%s", gradeStyle(it.Grade).Render(it.Name))
	}
	printFile(path)
	return nil
}

// defaultOutputName names a render after its container and ID.
func defaultOutputName(key string, res *render.Result) string {
	return fmt.Sprintf("%s-%s.png", key, res.ID.String()[:8])
}

// writePNG encodes res and writes it to path, creating parent directories.
func writePNG(path string, res *render.Result) error {
	data, err := res.PNG()
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// completeContainers completes container keys from the configured catalog.
func (c *CLI) completeContainers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cat, err := loadCatalog(cfg, loggerFromContext(cmd.Context()))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return cat.Keys(), cobra.ShellCompDirectiveNoFileComp
}
