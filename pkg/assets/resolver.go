package assets

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP with image.Decode

	"github.com/matzehuels/lootgrid/pkg/errors"
	"github.com/matzehuels/lootgrid/pkg/observability"
)

// ErrNotApplicable is returned by a strategy that does not handle the form
// of a reference. The resolver skips it silently.
var ErrNotApplicable = stderrors.New("strategy not applicable")

// ErrExhausted is returned when no strategy produced a decodable image.
var ErrExhausted = stderrors.New("all asset strategies failed")

// Strategy resolves an image reference to raw bytes.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, ref string) ([]byte, error)
}

// Resolver tries strategies in order.
type Resolver struct {
	strategies []Strategy
	logger     *log.Logger
}

// NewResolver creates a resolver over strategies. A nil logger uses
// log.Default().
func NewResolver(logger *log.Logger, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{strategies: strategies, logger: logger}
}

// Strategies returns the strategy names in resolution order.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// Image resolves ref and decodes it. On success it also returns the name of
// the strategy that produced the image. Decode failures count as strategy
// failures.
func (r *Resolver) Image(ctx context.Context, ref string) (image.Image, string, error) {
	var errs []error
	for _, s := range r.strategies {
		start := time.Now()
		data, err := s.Resolve(ctx, ref)
		if stderrors.Is(err, ErrNotApplicable) {
			continue
		}
		if err == nil {
			var img image.Image
			img, err = Decode(data)
			if err == nil {
				observability.Asset().OnResolved(ctx, s.Name(), ref, time.Since(start))
				return img, s.Name(), nil
			}
		}
		r.logger.Warn("asset strategy failed", "strategy", s.Name(), "ref", ref, "err", err)
		observability.Asset().OnFallback(ctx, s.Name(), ref, err)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}

	observability.Asset().OnPlaceholder(ctx, ref)
	return nil, "", fmt.Errorf("%w for %q: %w", ErrExhausted, ref, stderrors.Join(errs...))
}

// Decode decodes PNG, JPEG, GIF, BMP, TIFF or WebP data.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image")
	}
	return img, nil
}
