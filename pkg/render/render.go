package render

import (
	"context"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lootgrid/pkg/assets"
	"github.com/matzehuels/lootgrid/pkg/catalog"
	"github.com/matzehuels/lootgrid/pkg/compose"
	"github.com/matzehuels/lootgrid/pkg/errors"
	"github.com/matzehuels/lootgrid/pkg/fonts"
	"github.com/matzehuels/lootgrid/pkg/grid"
	"github.com/matzehuels/lootgrid/pkg/loot"
	"github.com/matzehuels/lootgrid/pkg/observability"
)

// SourcePlaceholder marks an item drawn as a placeholder.
const SourcePlaceholder = "placeholder"

// Renderer opens containers from a catalog snapshot.
type Renderer struct {
	catalog  *catalog.Catalog
	resolver *assets.Resolver
	local    *assets.Local
	logger   *log.Logger
	opts     Options
}

// New creates a renderer. local serves the cell texture and container
// icons and may be nil. A nil logger uses log.Default().
func New(cat *catalog.Catalog, resolver *assets.Resolver, local *assets.Local, logger *log.Logger, opts Options) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	if resolver == nil {
		resolver = assets.NewResolver(logger)
	}
	return &Renderer{
		catalog:  cat,
		resolver: resolver,
		local:    local,
		logger:   logger,
		opts:     opts.withDefaults(),
	}
}

// Catalog returns the catalog snapshot.
func (r *Renderer) Catalog() *catalog.Catalog { return r.catalog }

// CellSize returns the configured cell size in pixels.
func (r *Renderer) CellSize() int { return r.opts.CellSize }

// WithSeed returns a copy of r that renders with a fixed seed.
func (r *Renderer) WithSeed(seed uint64) *Renderer {
	cp := *r
	cp.opts.Seed = FixedSeed(seed)
	return &cp
}

// Result is one opened container.
type Result struct {
	ID        uuid.UUID
	Container catalog.Container
	Requester string
	Seed      uint64
	// Selected are the drawn items in draw order.
	Selected []catalog.Item
	// Pack indexes into Selected.
	Pack grid.Result
	// Sources names the strategy that supplied each selected item's image,
	// SourcePlaceholder, or "" for dropped items.
	Sources []string
	Image   *image.NRGBA
	Stats   observability.RenderStats
}

// Placed returns the selected items that made it onto the grid, in
// placement order.
func (res *Result) Placed() []catalog.Item {
	out := make([]catalog.Item, len(res.Pack.Placements))
	for i, p := range res.Pack.Placements {
		out[i] = res.Selected[p.Index]
	}
	return out
}

// PNG encodes the image.
func (res *Result) PNG() ([]byte, error) {
	return compose.Encode(res.Image)
}

// Render opens the container and returns the PNG.
func (r *Renderer) Render(ctx context.Context, key, requester string) ([]byte, error) {
	res, err := r.Open(ctx, key, requester)
	if err != nil {
		return nil, err
	}
	data, err := res.PNG()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return data, nil
}

// Open selects, packs and draws one opening of the container key.
func (r *Renderer) Open(ctx context.Context, key, requester string) (res *Result, err error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, key)
	defer func() {
		var stats observability.RenderStats
		if res != nil {
			stats = res.Stats
		}
		observability.Render().OnRenderComplete(ctx, key, stats, err)
	}()

	c, ok := r.catalog.Container(key)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownContainer, "unknown container %q", key)
	}

	seed := r.seed()
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	selected := loot.Select(rng, c, r.catalog.Items())

	sizes := make([]grid.Size, len(selected))
	for i, it := range selected {
		sizes[i] = grid.Size{Width: it.Width, Length: it.Length}
	}
	packed := grid.Pack(c.GridSize, sizes)
	for _, i := range packed.Dropped {
		r.logger.Debug("item does not fit", "container", key, "item", selected[i].ID,
			"width", selected[i].Width, "length", selected[i].Length)
	}

	cell := r.opts.CellSize
	texture := r.cellTexture(cell)

	thumbs, sources, err := r.thumbnails(ctx, selected, packed, texture)
	if err != nil {
		return nil, err
	}

	canvas := compose.Background(c.GridSize, cell, texture)
	for _, p := range packed.Placements {
		compose.Place(canvas, thumbs[p.Index], image.Pt(p.Anchor.X*cell, p.Anchor.Y*cell))
	}

	if r.opts.Header {
		canvas = r.withHeader(ctx, canvas, c, requester)
	}

	res = &Result{
		ID:        uuid.New(),
		Container: c,
		Requester: requester,
		Seed:      seed,
		Selected:  selected,
		Pack:      packed,
		Sources:   sources,
		Image:     canvas,
		Stats: observability.RenderStats{
			Selected: len(selected),
			Placed:   len(packed.Placements),
			Dropped:  len(packed.Dropped),
			Duration: time.Since(start),
		},
	}

	r.logger.Info("opened container",
		"container", key,
		"requester", requester,
		"selected", res.Stats.Selected,
		"placed", res.Stats.Placed,
		"duration", res.Stats.Duration)
	return res, nil
}

// thumbnails prepares one thumbnail per placed item. Entries for dropped
// items stay nil.
func (r *Renderer) thumbnails(ctx context.Context, selected []catalog.Item, packed grid.Result, texture image.Image) ([]*image.NRGBA, []string, error) {
	cell := r.opts.CellSize
	thumbs := make([]*image.NRGBA, len(selected))
	sources := make([]string, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for _, p := range packed.Placements {
		it := selected[p.Index]
		w, h := p.Size.Width*cell, p.Size.Length*cell
		g.Go(func() error {
			src, strategy, err := r.resolver.Image(gctx, it.Pic)
			if err != nil {
				r.logger.Warn("using placeholder", "item", it.ID, "name", it.Name, "err", err)
				src, strategy = compose.Placeholder(w, h), SourcePlaceholder
			}
			thumbs[p.Index] = compose.Thumbnail(src, it.Grade, w, h, texture)
			sources[p.Index] = strategy
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("render canceled: %w", err)
	}
	return thumbs, sources, nil
}

// cellTexture loads the cell texture resized to cell×cell, or nil.
func (r *Renderer) cellTexture(cell int) image.Image {
	if r.local == nil || r.opts.CellTexture == "-" {
		return nil
	}
	tex, err := r.local.Image(r.opts.CellTexture)
	if err != nil {
		r.logger.Debug("cell texture unavailable, using solid background", "err", err)
		return nil
	}
	return imaging.Resize(tex, cell, cell, imaging.Lanczos)
}

func (r *Renderer) withHeader(ctx context.Context, canvas *image.NRGBA, c catalog.Container, requester string) *image.NRGBA {
	var icon image.Image
	if c.Icon != "" && r.local != nil {
		if data, err := r.local.Resolve(ctx, c.Icon); err == nil {
			icon, _ = assets.Decode(data)
		}
	}

	title := compose.Title(c.DisplayName(), requester)
	face, err := fonts.Face(r.opts.Font, r.opts.FontSize)
	if err != nil {
		r.logger.Warn("header font unavailable", "err", err)
		return compose.Stack(compose.Header(canvas.Bounds().Dx(), title, icon, nil), canvas)
	}
	defer face.Close()
	return compose.Stack(compose.Header(canvas.Bounds().Dx(), title, icon, face), canvas)
}

func (r *Renderer) seed() uint64 {
	if r.opts.Seed != nil {
		return r.opts.Seed()
	}
	return rand.Uint64()
}
