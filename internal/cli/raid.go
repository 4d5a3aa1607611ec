package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lootgrid/pkg/assets"
	"github.com/matzehuels/lootgrid/pkg/raid"
	"github.com/matzehuels/lootgrid/pkg/render"
)

// raidOpts holds the flags of the raid command.
type raidOpts struct {
	outDir    string
	requester string
	seed      uint64
	seedSet   bool
	noCache   bool
}

// raidCommand runs the interactive raid dialogue.
func (c *CLI) raidCommand() *cobra.Command {
	var opts raidOpts

	cmd := &cobra.Command{
		Use:   "raid",
		Short: "Open containers until you extract, die or run out of time",
		Long: `Open a random container, then keep going or leave.

Reply "continue" (or 还要吃) to open another container and "extract" (or 撤离)
to leave with your loot. Every continue risks death. The raid ends by itself
after the session timeout without a valid reply or after max_retries continues.
Each opened container is written as a PNG to the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			return c.runRaid(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "raid", "directory for opened container images")
	cmd.Flags().StringVar(&opts.requester, "requester", "", "player name shown in the header")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for container picks and deaths")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not use the image cache")
	return cmd
}

func (c *CLI) runRaid(ctx context.Context, opts raidOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	e, err := c.newEnv(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer e.Close()

	var sessOpts []raid.Option
	renderer := e.renderer
	if opts.seedSet {
		sessOpts = append(sessOpts, raid.WithSeed(opts.seed))
		renderer = renderer.WithSeed(opts.seed)
	}
	sess, err := raid.New(cfg.Raid(), sessOpts...)
	if err != nil {
		return err
	}

	// Log lines would tear the TUI, so only warnings and worse reach stderr.
	logger := loggerFromContext(ctx)
	level := logger.GetLevel()
	logger.SetLevel(max(level, LogWarn))
	defer logger.SetLevel(level)

	open := func(ctx context.Context, key string) (raidOpening, error) {
		res, err := renderer.Open(ctx, key, opts.requester)
		if err != nil {
			return raidOpening{}, err
		}
		path := filepath.Join(opts.outDir, defaultOutputName(key, res))
		if err := writePNG(path, res); err != nil {
			return raidOpening{}, err
		}
		return raidOpening{result: res, path: path}, nil
	}
	names := func(key string) string {
		if ct, ok := e.catalog.Container(key); ok {
			return ct.DisplayName()
		}
		return key
	}

	m := newRaidModel(ctx, sess, open, names)
	m.dead = func() string {
		path, err := saveDeathImage(e.local, cfg.Session.DeathImage, opts.outDir)
		if err != nil {
			logger.Debug("no death image", "file", cfg.Session.DeathImage, "err", err)
		}
		return path
	}
	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return fmt.Errorf("raid: %w", err)
	}

	rm := final.(*raidModel)
	if rm.err != nil {
		return rm.err
	}
	if sess.Done() {
		printInfo("Raid %s after %d openings", sess.Ending(), len(sess.Opened()))
	} else {
		printWarning("Raid abandoned after %d openings", len(sess.Opened()))
	}
	for _, p := range rm.files {
		printFile(p)
	}
	return nil
}

// raidOpening is one rendered and saved container.
type raidOpening struct {
	result *render.Result
	path   string
}

// saveDeathImage copies the resource-relative death picture into outDir and
// returns the written path. It returns "" and the cause when the picture is
// not configured or cannot be read.
func saveDeathImage(local *assets.Local, name, outDir string) (string, error) {
	if name == "" {
		return "", nil
	}
	data, err := local.ReadFile(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(outDir, "died"+filepath.Ext(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
