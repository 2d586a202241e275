package models

// OccurrenceFilter represents filter parameters for querying occurrences.
// The bounding box applies only when all four bounds are given.
type OccurrenceFilter struct {
	StartTime      int64    `form:"startTime"` // Epoch milliseconds, inclusive
	EndTime        int64    `form:"endTime"`   // Epoch milliseconds, inclusive
	SpeciesID      int64    `form:"speciesId"`
	ScientificName string   `form:"scientificName"`
	Source         string   `form:"source"`
	MinLat         *float64 `form:"minLat"`
	MaxLat         *float64 `form:"maxLat"`
	MinLon         *float64 `form:"minLon"`
	MaxLon         *float64 `form:"maxLon"`
	Page           int      `form:"page"`
	PageSize       int      `form:"pageSize"`
}

// HasBBox reports whether all four bounds were supplied
func (f OccurrenceFilter) HasBBox() bool {
	return f.MinLat != nil && f.MaxLat != nil && f.MinLon != nil && f.MaxLon != nil
}

// TravelFilter represents filter parameters for travel path inference.
// The window defaults to the 24 hours ending now.
type TravelFilter struct {
	StartTime      int64    `form:"startTime"` // Epoch milliseconds
	EndTime        int64    `form:"endTime"`   // Epoch milliseconds
	SpeciesID      int64    `form:"speciesId"`
	ScientificName string   `form:"scientificName"`
	MinLat         *float64 `form:"minLat"`
	MaxLat         *float64 `form:"maxLat"`
	MinLon         *float64 `form:"minLon"`
	MaxLon         *float64 `form:"maxLon"`
}

// OccurrenceFilter converts the travel window into an unpaged occurrence query
func (f TravelFilter) OccurrenceFilter() OccurrenceFilter {
	return OccurrenceFilter{
		StartTime:      f.StartTime,
		EndTime:        f.EndTime,
		SpeciesID:      f.SpeciesID,
		ScientificName: f.ScientificName,
		MinLat:         f.MinLat,
		MaxLat:         f.MaxLat,
		MinLon:         f.MinLon,
		MaxLon:         f.MaxLon,
	}
}
