package mapview

import (
	"math"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sant0-9/divimap/internal/geo"
	"github.com/sant0-9/divimap/internal/intent"
)

const (
	SupportedEPSG = 4326
	DefaultZoom   = 10
	DefaultH3Res  = 7

	// Zoom levels accepted by WithZoom.
	MinZoom = 3
	MaxZoom = 18

	defaultCacheSize = 128
)

// Summary is the display-ready description of an applied intent.
type Summary struct {
	Kind intent.Kind `json:"tipo"`

	// Filter results.
	Filters []intent.Filter `json:"filtros,omitempty"`
	Count   int             `json:"count"`
	Results []string        `json:"results,omitempty"`

	// Set for coordinate results only.
	Point *PointSummary `json:"punto,omitempty"`
}

// PointSummary describes a coordinate selection. X and Y are always
// encoded, zero included.
type PointSummary struct {
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	EPSG   int      `json:"epsg"`
	Within []string `json:"within"`
	H3Cell string   `json:"h3_cell,omitempty"`
}

// Result is what Apply reports besides the new state.
type Result struct {
	Matched []*geo.Feature
	Summary Summary
}

// Applicator applies intents against one read-only feature collection.
type Applicator struct {
	features *geo.Collection
	zoom     int
	h3Res    int
	matches  *lru.Cache[uint64, []*geo.Feature]
}

type Option func(*Applicator)

// WithZoom sets the zoom used when centering on a coordinate.
func WithZoom(z int) Option {
	return func(a *Applicator) {
		if z >= MinZoom && z <= MaxZoom {
			a.zoom = z
		}
	}
}

// WithH3Resolution sets the resolution of the cell reported for coordinates.
func WithH3Resolution(res int) Option {
	return func(a *Applicator) {
		if res >= 0 && res <= 15 {
			a.h3Res = res
		}
	}
}

func NewApplicator(features *geo.Collection, opts ...Option) *Applicator {
	cache, _ := lru.New[uint64, []*geo.Feature](defaultCacheSize)
	a := &Applicator{
		features: features,
		zoom:     DefaultZoom,
		h3Res:    DefaultH3Res,
		matches:  cache,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initial is the startup view: the whole layer drawn and fitted.
func (a *Applicator) Initial() State {
	b := a.features.Bounds()
	return State{
		Center:       b.Center(),
		Zoom:         b.FitZoom(MinZoom, MaxZoom),
		Overlay:      a.features.Features(),
		OverlayStyle: BaseStyle,
	}
}

// Clear drops the selection and draws the whole layer again. The view does
// not move.
func (a *Applicator) Clear(state State) State {
	state.Overlay = a.features.Features()
	state.OverlayStyle = BaseStyle
	state.Selection = nil
	return state
}

// Apply returns the state after applying it. On error the given state is
// returned unchanged.
func (a *Applicator) Apply(it intent.Intent, state State) (State, Result, error) {
	switch v := it.(type) {
	case intent.FilterIntent:
		return a.applyFilter(v, state)
	case *intent.FilterIntent:
		return a.applyFilter(*v, state)
	case intent.CoordinateIntent:
		return a.applyCoordinate(v, state)
	case *intent.CoordinateIntent:
		return a.applyCoordinate(*v, state)
	default:
		return state, Result{}, &intent.SchemaError{Reason: "unsupported intent"}
	}
}

func (a *Applicator) applyFilter(fi intent.FilterIntent, state State) (State, Result, error) {
	key := filterKey(fi.Filters)
	matched, ok := a.matches.Get(key)
	if !ok {
		matched = Match(a.features.Features(), fi.Filters)
		a.matches.Add(key, matched)
	}

	out := make([]*geo.Feature, len(matched))
	copy(out, matched)

	next := state
	next.Overlay = out
	next.OverlayStyle = SelectionStyle
	next.Selection = out

	names := make([]string, len(out))
	for i, f := range out {
		names[i] = f.Name()
	}
	filters := make([]intent.Filter, len(fi.Filters))
	copy(filters, fi.Filters)

	return next, Result{
		Matched: out,
		Summary: Summary{
			Kind:    intent.KindFilter,
			Filters: filters,
			Count:   len(out),
			Results: names,
		},
	}, nil
}

func (a *Applicator) applyCoordinate(ci intent.CoordinateIntent, state State) (State, Result, error) {
	if ci.EPSG != SupportedEPSG {
		return state, Result{}, &UnsupportedReferenceError{EPSG: ci.EPSG}
	}
	if !finite(ci.X) || !finite(ci.Y) {
		return state, Result{}, &intent.SchemaError{Reason: "coordinate is not a finite number"}
	}

	next := state
	next.Center = geo.LatLon{Lat: ci.Y, Lon: ci.X}
	next.Zoom = a.zoom

	var within []string
	for _, f := range a.features.At(ci.Y, ci.X) {
		within = append(within, f.Name())
	}
	// Out-of-range positions have no cell; the view still moves.
	cell, _ := geo.CellAt(ci.Y, ci.X, a.h3Res)

	return next, Result{
		Summary: Summary{
			Kind: intent.KindCoordinate,
			Point: &PointSummary{
				X:      ci.X,
				Y:      ci.Y,
				EPSG:   ci.EPSG,
				Within: within,
				H3Cell: cell,
			},
		},
	}, nil
}

// Match returns the features whose properties equal every filter value. A
// feature missing a filtered property does not match. An empty filter list
// matches everything.
func Match(features []*geo.Feature, filters []intent.Filter) []*geo.Feature {
	var out []*geo.Feature
	for _, f := range features {
		if matchesAll(f, filters) {
			out = append(out, f)
		}
	}
	return out
}

func matchesAll(f *geo.Feature, filters []intent.Filter) bool {
	for _, flt := range filters {
		v, ok := f.Property(flt.Field)
		if !ok || v != flt.Value {
			return false
		}
	}
	return true
}

// filterKey hashes the filter set independently of its order.
func filterKey(filters []intent.Filter) uint64 {
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = f.Field + "\x00" + f.Value
	}
	sort.Strings(parts)
	return xxhash.Sum64String(strings.Join(parts, "\x01"))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
