package intent

import "fmt"

// Kind names an Intent variant with the "tipo" value the model uses.
type Kind string

const (
	KindFilter     Kind = "filtro"
	KindCoordinate Kind = "coordenada"
)

// Intent is what an instruction asks the map to do. It is either a
// FilterIntent or a CoordinateIntent.
type Intent interface {
	Kind() Kind
	isIntent()
}

// Filter is one (field, value) pair. Values compare by exact string equality.
type Filter struct {
	Field string `json:"campo"`
	Value string `json:"valor"`
}

func (f Filter) String() string {
	return fmt.Sprintf("%s=%s", f.Field, f.Value)
}

// FilterIntent selects the features matching every filter.
type FilterIntent struct {
	Filters []Filter `json:"filtros"`
}

func (FilterIntent) Kind() Kind { return KindFilter }
func (FilterIntent) isIntent()  {}

// CoordinateIntent recenters the map. X is longitude, Y latitude.
type CoordinateIntent struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	EPSG int     `json:"epsg"`
}

func (CoordinateIntent) Kind() Kind { return KindCoordinate }
func (CoordinateIntent) isIntent()  {}
