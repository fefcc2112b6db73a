// Package geo holds the municipality layer: an immutable collection of
// DIVIPOLA features with their polygons, a spatial index over them and a few
// coordinate helpers.
package geo

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Property names of the DANE municipality layer.
const (
	FieldDeptCode = "DPTO_CCDGO"
	FieldMunCode  = "MPIO_CCDGO"
	FieldDeptName = "DEPTO"
	FieldMunName  = "MPIO_CNMBR"
)

// Fields lists the properties an instruction may filter on, in prompt order.
var Fields = []string{FieldDeptCode, FieldMunCode, FieldDeptName, FieldMunName}

// IsField reports whether name is one of the filterable properties.
func IsField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Ring is a closed sequence of [lon, lat] positions.
type Ring [][2]float64

// Polygon is an outer ring followed by zero or more holes.
type Polygon []Ring

// Geometry is a Polygon or MultiPolygon. Single polygons are stored as a
// one-element Polygons slice. The zero Geometry stands for a GeoJSON null
// geometry: it has no bounds and contains no point.
type Geometry struct {
	Type     string
	Polygons []Polygon
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func (g *Geometry) UnmarshalJSON(b []byte) error {
	var raw rawGeometry
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("parse geometry: %w", err)
	}

	switch raw.Type {
	case "Polygon":
		var p Polygon
		if err := json.Unmarshal(raw.Coordinates, &p); err != nil {
			return fmt.Errorf("parse polygon coords: %w", err)
		}
		g.Type = raw.Type
		g.Polygons = []Polygon{p}
	case "MultiPolygon":
		var mp []Polygon
		if err := json.Unmarshal(raw.Coordinates, &mp); err != nil {
			return fmt.Errorf("parse multipolygon coords: %w", err)
		}
		g.Type = raw.Type
		g.Polygons = mp
	default:
		return fmt.Errorf("unsupported GeoJSON geometry type: %q", raw.Type)
	}
	return nil
}

// Empty reports whether the geometry is the null geometry.
func (g Geometry) Empty() bool {
	return g.Type == ""
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	if g.Empty() {
		return []byte("null"), nil
	}
	var coords any
	switch g.Type {
	case "Polygon":
		if len(g.Polygons) > 0 {
			coords = g.Polygons[0]
		} else {
			coords = Polygon{}
		}
	default:
		coords = g.Polygons
	}
	return json.Marshal(struct {
		Type        string `json:"type"`
		Coordinates any    `json:"coordinates"`
	}{g.Type, coords})
}

// Feature is one municipality. Features are created once at load time and
// never modified afterwards.
type Feature struct {
	Properties map[string]any
	Geometry   Geometry

	bounds Bounds
}

func (f *Feature) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
		Geometry   *Geometry      `json:"geometry"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Type != "" && raw.Type != "Feature" {
		return fmt.Errorf("unexpected GeoJSON object %q, want Feature", raw.Type)
	}
	f.Properties = raw.Properties
	f.Geometry = Geometry{}
	// A null geometry keeps the feature filterable; it is never drawn.
	if raw.Geometry != nil {
		f.Geometry = *raw.Geometry
	}
	f.bounds = geometryBounds(f.Geometry)
	return nil
}

func (f *Feature) MarshalJSON() ([]byte, error) {
	props := f.Properties
	if props == nil {
		props = map[string]any{}
	}
	return json.Marshal(struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
		Geometry   Geometry       `json:"geometry"`
	}{"Feature", props, f.Geometry})
}

// NewFeature builds a feature from properties and geometry.
func NewFeature(props map[string]any, geom Geometry) *Feature {
	return &Feature{
		Properties: props,
		Geometry:   geom,
		bounds:     geometryBounds(geom),
	}
}

// Property returns the named property in its exact string form. Strings are
// returned as-is and numbers in their shortest decimal form. A missing or
// null property reports false.
func (f *Feature) Property(name string) (string, bool) {
	v, ok := f.Properties[name]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprint(t), true
	}
}

// Name is the "MPIO - DEPTO" label used in result listings.
func (f *Feature) Name() string {
	mpio, _ := f.Property(FieldMunName)
	depto, _ := f.Property(FieldDeptName)
	return mpio + " - " + depto
}

// Bounds is the bounding box of the feature geometry.
func (f *Feature) Bounds() Bounds {
	return f.bounds
}
