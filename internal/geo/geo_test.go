package geo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(minLon, minLat, maxLon, maxLat float64) Ring {
	return Ring{{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat}}
}

func TestSampleLayer(t *testing.T) {
	c := Sample()
	require.Equal(t, 8, c.Len())
	assert.True(t, c.Bounds().Valid())

	var antioquia int
	for _, f := range c.Features() {
		if v, _ := f.Property(FieldDeptName); v == "ANTIOQUIA" {
			antioquia++
		}
	}
	assert.Equal(t, 3, antioquia)
}

func TestFeatureProperty(t *testing.T) {
	f := NewFeature(map[string]any{
		FieldDeptCode: "05",
		FieldMunCode:  float64(1),
		FieldDeptName: nil,
	}, Geometry{})

	tests := []struct {
		name   string
		field  string
		want   string
		wantOK bool
	}{
		{"string", FieldDeptCode, "05", true},
		{"number", FieldMunCode, "1", true},
		{"null", FieldDeptName, "", false},
		{"missing", FieldMunName, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.Property(tt.field)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsField(t *testing.T) {
	for _, f := range Fields {
		assert.True(t, IsField(f), f)
	}
	assert.False(t, IsField("depto"))
	assert.False(t, IsField("POBLACION"))
}

func TestCollectionAt(t *testing.T) {
	c := Sample()

	hits := c.At(4.65, -74.05)
	require.Len(t, hits, 1)
	assert.Equal(t, "BOGOTÁ, D.C. - BOGOTÁ, D.C.", hits[0].Name())

	assert.Empty(t, c.At(0, 0), "outside the layer")
	assert.Empty(t, c.At(5.5, -75.0), "inside layer bounds but between municipalities")
}

func TestCollectionAtHonoursHoles(t *testing.T) {
	outer := square(0, 0, 10, 10)
	hole := square(4, 4, 6, 6)
	donut := NewFeature(map[string]any{FieldMunName: "DONUT"}, Geometry{Type: "Polygon", Polygons: []Polygon{{outer, hole}}})
	c := NewCollection([]*Feature{donut})

	assert.Len(t, c.At(2, 2), 1)
	assert.Empty(t, c.At(5, 5))
}

func TestCollectionAtMultiPolygon(t *testing.T) {
	islands := NewFeature(map[string]any{FieldMunName: "ISLAS"}, Geometry{
		Type:     "MultiPolygon",
		Polygons: []Polygon{{square(0, 0, 1, 1)}, {square(5, 5, 6, 6)}},
	})
	c := NewCollection([]*Feature{islands})

	assert.Len(t, c.At(0.5, 0.5), 1)
	assert.Len(t, c.At(5.5, 5.5), 1)
	assert.Empty(t, c.At(3, 3))
}

func TestLoadRejectsWrongObject(t *testing.T) {
	_, err := Load(strings.NewReader(`{"type":"Feature","properties":{},"geometry":null}`))
	require.Error(t, err)

	_, err = Load(strings.NewReader(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LineString")
}

func TestLoadKeepsNullGeometry(t *testing.T) {
	c, err := Load(strings.NewReader(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"MPIO_CNMBR":"SIN FORMA","DPTO_CCDGO":"99"},"geometry":null},
		{"type":"Feature","properties":{"MPIO_CNMBR":"CUADRO"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}
	]}`))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	bare := c.Features()[0]
	assert.True(t, bare.Geometry.Empty())
	assert.False(t, bare.Bounds().Valid())
	v, ok := bare.Property(FieldDeptCode)
	assert.True(t, ok)
	assert.Equal(t, "99", v)

	assert.Equal(t, Bounds{}.Extend(0, 0).Extend(1, 1), c.Bounds())
	hits := c.At(0.5, 0.5)
	require.Len(t, hits, 1)
	assert.Equal(t, "CUADRO - ", hits[0].Name())

	b, err := json.Marshal(bare)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"geometry":null`)
}

func TestFeatureMarshalKeepsGeometryShape(t *testing.T) {
	f := NewFeature(map[string]any{FieldMunName: "X"}, Geometry{Type: "Polygon", Polygons: []Polygon{{square(0, 0, 1, 1)}}})
	b, err := json.Marshal(f)
	require.NoError(t, err)

	var out struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string        `json:"type"`
			Coordinates [][][]float64 `json:"coordinates"`
		} `json:"geometry"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "Feature", out.Type)
	assert.Equal(t, "Polygon", out.Geometry.Type)
	assert.Len(t, out.Geometry.Coordinates[0], 5)
}

func TestBoundsFitZoom(t *testing.T) {
	var empty Bounds
	assert.Equal(t, 3, empty.FitZoom(3, 18))

	country := Bounds{}.Extend(-4.2, -79).Extend(12.5, -66.8)
	city := Bounds{}.Extend(4.47, -74.23).Extend(4.83, -74.0)
	assert.Less(t, country.FitZoom(3, 18), city.FitZoom(3, 18))
}

func TestCellAt(t *testing.T) {
	cell, err := CellAt(4.65, -74.05, 7)
	require.NoError(t, err)
	assert.Len(t, cell, 15)

	_, err = CellAt(4.65, -74.05, 16)
	assert.Error(t, err)
}
