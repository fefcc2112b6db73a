package geo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dhconnelly/rtreego"
)

//go:embed sample.geojson
var sampleGeoJSON []byte

// Collection is the read-only municipality layer loaded at startup.
type Collection struct {
	features []*Feature
	bounds   Bounds
	tree     *rtreego.Rtree
}

// NewCollection indexes the given features. The slice is copied.
func NewCollection(features []*Feature) *Collection {
	fs := make([]*Feature, 0, len(features))
	var b Bounds
	for _, f := range features {
		if f == nil {
			continue
		}
		fs = append(fs, f)
		b = b.Union(f.Bounds())
	}
	return &Collection{
		features: fs,
		bounds:   b,
		tree:     newIndex(fs),
	}
}

// Load decodes a GeoJSON FeatureCollection.
func Load(r io.Reader) (*Collection, error) {
	var fc struct {
		Type     string     `json:"type"`
		Features []*Feature `json:"features"`
	}
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding feature collection: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("unexpected GeoJSON object %q, want FeatureCollection", fc.Type)
	}
	return NewCollection(fc.Features), nil
}

// LoadFile reads a GeoJSON FeatureCollection from disk.
func LoadFile(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Sample returns the small municipality layer bundled with the binary.
func Sample() *Collection {
	c, err := Load(bytes.NewReader(sampleGeoJSON))
	if err != nil {
		panic("geo: bundled sample layer is invalid: " + err.Error())
	}
	return c
}

// Features returns the features in load order. The returned slice is a copy;
// the features themselves must not be modified.
func (c *Collection) Features() []*Feature {
	out := make([]*Feature, len(c.features))
	copy(out, c.features)
	return out
}

func (c *Collection) Len() int {
	return len(c.features)
}

// Bounds covers every feature in the collection.
func (c *Collection) Bounds() Bounds {
	return c.bounds
}

// At returns the features whose polygons contain the position, in load order.
func (c *Collection) At(lat, lon float64) []*Feature {
	if c.tree == nil || !c.bounds.Contains(lat, lon) {
		return nil
	}
	hits := c.tree.SearchIntersect(rtreego.Point{lon, lat}.ToRect(tolerance))

	inside := make(map[*Feature]bool, len(hits))
	for _, h := range hits {
		sf, ok := h.(*spatialFeature)
		if !ok {
			continue
		}
		if sf.Geometry.ContainsPoint(lat, lon) {
			inside[sf.Feature] = true
		}
	}

	var out []*Feature
	for _, f := range c.features {
		if inside[f] {
			out = append(out, f)
		}
	}
	return out
}
