package travel

import (
	"github.com/jengzang/sightings-backend-go/internal/models"
	"github.com/jengzang/sightings-backend-go/internal/spatial"
)

// Summarize describes a segment without its geometry
func Summarize(segment Segment) (models.SegmentSummary, error) {
	if len(segment.Occurrences) == 0 {
		return models.SegmentSummary{}, ErrEmptySegment
	}

	first := segment.Occurrences[0]
	durationMs := segment.LastOccurrenceAt - first.ObservedAtMs
	ids := make([]string, 0, len(segment.Occurrences))
	points := make([]spatial.Point, 0, len(segment.Occurrences))
	for _, occ := range segment.Occurrences {
		ids = append(ids, occ.ID)
		points = append(points, spatial.Point{Lat: occ.Location.Lat, Lon: occ.Location.Lon})
	}

	summary := models.SegmentSummary{
		AnchorID:          first.ID,
		OccurrenceIDs:     ids,
		OccurrenceCount:   len(ids),
		Taxon:             segment.Taxon,
		ExpectedSpeedKmh:  segment.ExpectedSpeedKmh,
		FirstOccurrenceAt: first.ObservedAtMs,
		LastOccurrenceAt:  segment.LastOccurrenceAt,
		DurationSeconds:   durationMs / 1000,
		PathLengthMeters:  spatial.PathLength(points),
	}

	minLat, minLon, maxLat, maxLon := spatial.BoundingBox(points)
	summary.BBox = []float64{minLon, minLat, maxLon, maxLat}

	if len(points) > 1 {
		summary.LineID = LineIDPrefix + first.ID
		last := points[len(points)-1]
		heading := spatial.Bearing(points[0].Lat, points[0].Lon, last.Lat, last.Lon)
		summary.HeadingDegrees = &heading
	}
	if durationMs > 0 {
		summary.AvgSpeedKmh = summary.PathLengthMeters / spatial.MetersPerKm / (float64(durationMs) / msPerHour)
	}

	return summary, nil
}
