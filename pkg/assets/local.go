package assets

import (
	"context"
	"image"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/matzehuels/lootgrid/pkg/errors"
)

// Local reads references from a resource root directory.
type Local struct {
	root string
}

// NewLocal creates a local strategy rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Root returns the resource root.
func (l *Local) Root() string { return l.root }

// Name implements Strategy.
func (l *Local) Name() string { return "local" }

// Resolve implements Strategy. A URL resolves to the mirror file named after
// its last path segment.
func (l *Local) Resolve(ctx context.Context, ref string) ([]byte, error) {
	name := ref
	if errors.IsRemoteRef(ref) {
		name = mirrorName(ref)
		if name == "" {
			return nil, ErrNotApplicable
		}
	}
	return l.ReadFile(name)
}

// ReadFile reads a resource-relative file.
func (l *Local) ReadFile(name string) ([]byte, error) {
	if err := errors.ValidatePath(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(name)))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "resource %s", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read resource %s", name)
	}
	return data, nil
}

// Image reads and decodes a resource-relative image file.
func (l *Local) Image(name string) (image.Image, error) {
	data, err := l.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func mirrorName(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
