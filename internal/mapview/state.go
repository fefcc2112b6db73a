// Package mapview applies interpreted intents to an explicit map view state.
package mapview

import "github.com/sant0-9/divimap/internal/geo"

// Style is how the overlay polygons are drawn.
type Style struct {
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	FillOpacity float64 `json:"fillOpacity"`
}

var (
	// BaseStyle draws the whole layer at startup and after a clear.
	BaseStyle = Style{Color: "#22c55e", Weight: 1, FillOpacity: 0.2}
	// SelectionStyle draws the features picked by a filter.
	SelectionStyle = Style{Color: "#2232c5", Weight: 1, FillOpacity: 0.2}
)

// State is the visible map: where it looks and which polygons it draws.
// Values are replaced, never mutated in place.
type State struct {
	Center geo.LatLon
	Zoom   int

	// Overlay is exactly what is rendered. Empty means nothing is drawn.
	Overlay      []*geo.Feature
	OverlayStyle Style

	// Selection holds the last filter result; nil when nothing is selected.
	Selection []*geo.Feature
}

// Bounds covers the rendered overlay.
func (s State) Bounds() geo.Bounds {
	var b geo.Bounds
	for _, f := range s.Overlay {
		b = b.Union(f.Bounds())
	}
	return b
}
