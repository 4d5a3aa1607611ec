package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lootgrid/pkg/errors"
)

// Default file names inside the resource directory.
const DefaultContainersFile = "container_configs.json"

// DefaultItemFiles lists the item files read when Options.ItemFiles is empty.
var DefaultItemFiles = []string{"armor.json", "bag.json", "chest.json", "helmet.json", "collection.json"}

// Options configures [Load].
type Options struct {
	// ContainersFile is the container map file, relative to the resource dir.
	ContainersFile string
	// ItemFiles are item list files, relative to the resource dir.
	ItemFiles []string
	// Logger receives per-file warnings. Defaults to log.Default().
	Logger *log.Logger
}

// Load reads the container map and every item file from dir.
func Load(dir string, opts Options) (*Catalog, error) {
	if opts.ContainersFile == "" {
		opts.ContainersFile = DefaultContainersFile
	}
	if len(opts.ItemFiles) == 0 {
		opts.ItemFiles = DefaultItemFiles
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var containers map[string]Container
	if err := decodeFile(filepath.Join(dir, opts.ContainersFile), &containers); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "load containers")
	}

	var items []Item
	for _, name := range opts.ItemFiles {
		var batch []Item
		if err := decodeFile(filepath.Join(dir, name), &batch); err != nil {
			logger.Warn("skipping item file", "file", name, "err", err)
			continue
		}
		items = append(items, batch...)
	}

	c := New(containers, items)
	logger.Info("loaded catalog", "containers", c.ContainerCount(), "items", c.ItemCount())
	return c, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
