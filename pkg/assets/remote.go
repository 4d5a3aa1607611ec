package assets

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/lootgrid/pkg/cache"
	"github.com/matzehuels/lootgrid/pkg/errors"
	"github.com/matzehuels/lootgrid/pkg/observability"
)

// DefaultFetchTimeout bounds a single remote fetch.
const DefaultFetchTimeout = 10 * time.Second

// maxAssetBytes caps the size of a fetched image.
const maxAssetBytes = 16 << 20

// Remote fetches http(s) references.
type Remote struct {
	client  *http.Client
	timeout time.Duration
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
}

// RemoteOption configures a Remote strategy.
type RemoteOption func(*Remote)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *Remote) { r.client = c }
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *Remote) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithCache stores fetched bytes in c for ttl.
func WithCache(c cache.Cache, keyer cache.Keyer, ttl time.Duration) RemoteOption {
	return func(r *Remote) {
		r.cache = c
		if keyer != nil {
			r.keyer = keyer
		}
		r.ttl = ttl
	}
}

// NewRemote creates the remote strategy.
func NewRemote(opts ...RemoteOption) *Remote {
	r := &Remote{
		client:  &http.Client{},
		timeout: DefaultFetchTimeout,
		cache:   cache.NewNullCache(),
		keyer:   cache.NewDefaultKeyer(),
		ttl:     cache.TTLAsset,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements Strategy.
func (r *Remote) Name() string { return "remote" }

// Resolve implements Strategy. Local references are not applicable.
func (r *Remote) Resolve(ctx context.Context, ref string) ([]byte, error) {
	if !errors.IsRemoteRef(ref) {
		return nil, ErrNotApplicable
	}

	key := r.keyer.AssetKey(ref)
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "asset")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "asset")

	data, err := r.fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, data, r.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "asset", len(data))
	}
	return data, nil
}

func (r *Remote) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", url)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "read %s", url)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)
	}
	if len(data) > maxAssetBytes {
		return nil, errors.New(errors.ErrCodeInvalidImage, "asset larger than %d bytes", maxAssetBytes)
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeAssetNotFound, "status %d", code)
	default:
		return errors.Wrap(errors.ErrCodeNetwork, fmt.Errorf("status %d", code), "unexpected response")
	}
}
