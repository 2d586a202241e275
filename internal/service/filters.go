package service

import (
	"errors"
	"fmt"

	"github.com/jengzang/sightings-backend-go/internal/spatial"
)

// ErrInvalidFilter is returned for a partial, inverted or out-of-range bounding box
var ErrInvalidFilter = errors.New("invalid filter")

// validateBBox accepts either no bounds or all four, with min <= max and
// both corners on the globe
func validateBBox(minLat, minLon, maxLat, maxLon *float64) error {
	given := 0
	for _, b := range []*float64{minLat, minLon, maxLat, maxLon} {
		if b != nil {
			given++
		}
	}

	switch {
	case given == 0:
		return nil
	case given < 4:
		return fmt.Errorf("%w: minLat, maxLat, minLon and maxLon must be given together", ErrInvalidFilter)
	}

	lower := spatial.Point{Lat: *minLat, Lon: *minLon}
	upper := spatial.Point{Lat: *maxLat, Lon: *maxLon}
	if !spatial.Contains(-90, -180, 90, 180, lower) || !spatial.Contains(-90, -180, 90, 180, upper) {
		return fmt.Errorf("%w: bounding box outside the globe", ErrInvalidFilter)
	}
	if !spatial.Contains(lower.Lat, lower.Lon, 90, 180, upper) {
		return fmt.Errorf("%w: bounding box minimum exceeds maximum", ErrInvalidFilter)
	}
	return nil
}
