package geo

import "math"

// LatLon is a WGS84 position.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is an axis-aligned box in degrees. The zero value is empty.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
	valid  bool
}

// Valid reports whether the box covers at least one position.
func (b Bounds) Valid() bool {
	return b.valid
}

// Extend grows the box to include the position.
func (b Bounds) Extend(lat, lon float64) Bounds {
	if !b.valid {
		return Bounds{MinLat: lat, MinLon: lon, MaxLat: lat, MaxLon: lon, valid: true}
	}
	b.MinLat = math.Min(b.MinLat, lat)
	b.MinLon = math.Min(b.MinLon, lon)
	b.MaxLat = math.Max(b.MaxLat, lat)
	b.MaxLon = math.Max(b.MaxLon, lon)
	return b
}

// Union returns the smallest box containing both.
func (b Bounds) Union(o Bounds) Bounds {
	if !o.valid {
		return b
	}
	return b.Extend(o.MinLat, o.MinLon).Extend(o.MaxLat, o.MaxLon)
}

// Contains reports whether the position lies inside or on the box.
func (b Bounds) Contains(lat, lon float64) bool {
	return b.valid && lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Center is the midpoint of the box.
func (b Bounds) Center() LatLon {
	return LatLon{Lat: (b.MinLat + b.MaxLat) / 2, Lon: (b.MinLon + b.MaxLon) / 2}
}

// FitZoom picks the largest web-map zoom level at which the box still fits a
// viewport of roughly 1024x768 pixels, the way Leaflet's fitBounds does.
func (b Bounds) FitZoom(minZoom, maxZoom int) int {
	if !b.valid {
		return minZoom
	}
	lonSpan := b.MaxLon - b.MinLon
	latSpan := b.MaxLat - b.MinLat
	for z := maxZoom; z > minZoom; z-- {
		degPerPx := 360 / (256 * math.Exp2(float64(z)))
		if lonSpan/degPerPx <= 1024 && latSpan/degPerPx <= 768 {
			return z
		}
	}
	return minZoom
}

func geometryBounds(g Geometry) Bounds {
	var b Bounds
	for _, p := range g.Polygons {
		if len(p) == 0 {
			continue
		}
		for _, pos := range p[0] {
			b = b.Extend(pos[1], pos[0])
		}
	}
	return b
}
