package geo

import (
	"github.com/dhconnelly/rtreego"
)

const (
	dimensions  = 2
	minChildren = 4
	maxChildren = 16
	tolerance   = 1e-9
)

// spatialFeature wraps a Feature for R-Tree indexing. Points are (lon, lat).
type spatialFeature struct {
	*Feature
	rect *rtreego.Rect
}

func (sf *spatialFeature) Bounds() *rtreego.Rect {
	return sf.rect
}

func newIndex(features []*Feature) *rtreego.Rtree {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for _, f := range features {
		b := f.Bounds()
		if !b.Valid() {
			continue
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{b.MinLon, b.MinLat},
			[]float64{max(b.MaxLon-b.MinLon, tolerance), max(b.MaxLat-b.MinLat, tolerance)},
		)
		if err != nil {
			continue
		}
		tree.Insert(&spatialFeature{Feature: f, rect: rect})
	}
	return tree
}

// ContainsPoint reports whether the position lies inside any polygon of the
// geometry, honouring holes.
func (g Geometry) ContainsPoint(lat, lon float64) bool {
	for _, p := range g.Polygons {
		if polygonContains(p, lat, lon) {
			return true
		}
	}
	return false
}

func polygonContains(p Polygon, lat, lon float64) bool {
	if len(p) == 0 || !ringContains(p[0], lat, lon) {
		return false
	}
	for _, hole := range p[1:] {
		if ringContains(hole, lat, lon) {
			return false
		}
	}
	return true
}

// ringContains is the even-odd ray casting test.
func ringContains(r Ring, lat, lon float64) bool {
	inside := false
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := r[i][0], r[i][1]
		xj, yj := r[j][0], r[j][1]
		if (yi > lat) != (yj > lat) && lon < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
