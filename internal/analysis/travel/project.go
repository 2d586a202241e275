package travel

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LineIDPrefix prefixes the anchor id to form a travel line's feature id
const LineIDPrefix = "line-from-"

// ToFeatures converts a segment into point features, one per occurrence, in
// chain order. The first feature carries isFirst and the last carries isLast.
func ToFeatures(segment Segment) ([]*geojson.Feature, error) {
	if len(segment.Occurrences) == 0 {
		return nil, ErrEmptySegment
	}

	last := len(segment.Occurrences) - 1
	features := make([]*geojson.Feature, 0, len(segment.Occurrences))
	for i, occ := range segment.Occurrences {
		f := geojson.NewFeature(orb.Point{occ.Location.Lon, occ.Location.Lat})
		f.ID = occ.ID

		f.Properties["id"] = occ.ID
		f.Properties["observedAtMs"] = occ.ObservedAtMs
		f.Properties["location"] = occ.Location
		f.Properties["taxon"] = occ.Taxon
		if occ.Source != "" {
			f.Properties["source"] = occ.Source
		}
		if occ.Count > 0 {
			f.Properties["count"] = occ.Count
		}
		if occ.URL != "" {
			f.Properties["url"] = occ.URL
		}

		if i == 0 {
			f.Properties["isFirst"] = true
		}
		if i == last {
			f.Properties["isLast"] = true
		}

		features = append(features, f)
	}

	return features, nil
}

// ToTravelLine connects a segment's occurrences in chain order.
// It returns nil for segments with fewer than two occurrences.
func ToTravelLine(segment Segment) *geojson.Feature {
	if len(segment.Occurrences) < 2 {
		return nil
	}

	line := make(orb.LineString, 0, len(segment.Occurrences))
	for _, occ := range segment.Occurrences {
		line = append(line, orb.Point{occ.Location.Lon, occ.Location.Lat})
	}

	f := geojson.NewFeature(line)
	f.ID = LineIDPrefix + segment.Occurrences[0].ID

	if segment.ExpectedSpeedKmh != nil {
		f.Properties["expectedSpeedKmh"] = *segment.ExpectedSpeedKmh
	} else {
		f.Properties["expectedSpeedKmh"] = nil
	}
	f.Properties["lastOccurrenceAt"] = segment.LastOccurrenceAt
	f.Properties["taxon"] = segment.Taxon

	return f
}

// FeatureCollection projects all segments into one collection: every point
// feature in segment order, followed by the travel lines.
func FeatureCollection(segments []Segment) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	var lines []*geojson.Feature

	for _, segment := range segments {
		points, err := ToFeatures(segment)
		if err != nil {
			return nil, fmt.Errorf("failed to project segment %q: %w", segment.AnchorID(), err)
		}
		fc.Features = append(fc.Features, points...)

		if line := ToTravelLine(segment); line != nil {
			lines = append(lines, line)
		}
	}

	fc.Features = append(fc.Features, lines...)
	return fc, nil
}
