package geo

import (
	"fmt"

	h3 "github.com/uber/h3-go/v4"
)

// CellAt returns the H3 index of the position at the given resolution.
func CellAt(lat, lon float64, res int) (string, error) {
	if res < 0 || res > 15 {
		return "", fmt.Errorf("h3 resolution %d out of range [0,15]", res)
	}
	c, err := h3.LatLngToCell(h3.NewLatLng(lat, lon), res)
	if err != nil {
		return "", fmt.Errorf("h3 cell: %w", err)
	}
	return c.String(), nil
}
