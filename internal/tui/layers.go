package tui

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sant0-9/divimap/internal/geo"
)

// layerCache holds the municipality layer of the last connection, so a
// reconnect after a settings change only reads the dataset when its path
// changed.
type layerCache struct {
	mu       sync.Mutex
	path     string
	features *geo.Collection
	log      *zerolog.Logger
}

// newLayerCache seeds the cache with a layer already loaded from path.
func newLayerCache(path string, features *geo.Collection, log *zerolog.Logger) *layerCache {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &layerCache{path: path, features: features, log: log}
}

// get returns the layer for path. An empty path is the bundled sample. A
// failed load keeps the previous layer cached.
func (c *layerCache) get(path string) (*geo.Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.features != nil && c.path == path {
		return c.features, nil
	}

	var features *geo.Collection
	if path == "" {
		features = geo.Sample()
	} else {
		var err error
		if features, err = geo.LoadFile(path); err != nil {
			return nil, fmt.Errorf("loading dataset: %w", err)
		}
	}
	c.log.Info().Str("path", path).Int("features", features.Len()).Msg("dataset loaded")

	c.path = path
	c.features = features
	return features, nil
}
