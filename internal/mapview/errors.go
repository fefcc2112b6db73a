package mapview

import "fmt"

// UnsupportedReferenceError is returned for coordinates in a spatial
// reference other than EPSG:4326.
type UnsupportedReferenceError struct {
	EPSG int
}

func (e *UnsupportedReferenceError) Error() string {
	return fmt.Sprintf("unsupported spatial reference EPSG:%d (only EPSG:%d is supported)", e.EPSG, SupportedEPSG)
}
