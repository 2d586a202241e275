package models

// SegmentSummary describes one inferred travel segment without its geometry
type SegmentSummary struct {
	AnchorID         string   `json:"anchorId"`
	LineID           string   `json:"lineId,omitempty"` // Empty for single-sighting segments
	OccurrenceIDs    []string `json:"occurrenceIds"`
	OccurrenceCount  int      `json:"occurrenceCount"`
	Taxon            Taxon    `json:"taxon"`
	ExpectedSpeedKmh *float64 `json:"expectedSpeedKmh"`

	// Temporal info
	FirstOccurrenceAt int64 `json:"firstOccurrenceAt"` // Epoch milliseconds
	LastOccurrenceAt  int64 `json:"lastOccurrenceAt"`  // Epoch milliseconds
	DurationSeconds   int64 `json:"durationSeconds"`

	// Spatial info
	PathLengthMeters float64   `json:"pathLengthMeters"`
	AvgSpeedKmh      float64   `json:"avgSpeedKmh,omitempty"`
	HeadingDegrees   *float64  `json:"headingDegrees,omitempty"` // Bearing from first to last sighting
	BBox             []float64 `json:"bbox"`                     // [minLon, minLat, maxLon, maxLat]
}

// SegmentSummariesResponse wraps the summaries for one query window
type SegmentSummariesResponse struct {
	StartTime       int64             `json:"startTime"`
	EndTime         int64             `json:"endTime"`
	OccurrenceCount int               `json:"occurrenceCount"`
	SegmentCount    int               `json:"segmentCount"`
	TravelLineCount int               `json:"travelLineCount"`
	Statistics      SegmentStatistics `json:"statistics"`
	Segments        []SegmentSummary  `json:"segments"`
}

// SegmentStatistics aggregates the segments of one window.
// Length and speed figures cover travel lines only.
type SegmentStatistics struct {
	SpeciesCount              int     `json:"speciesCount"`
	MeanOccurrencesPerSegment float64 `json:"meanOccurrencesPerSegment"`
	TotalPathLengthMeters     float64 `json:"totalPathLengthMeters"`
	MedianPathLengthMeters    float64 `json:"medianPathLengthMeters"`
	MedianAvgSpeedKmh         float64 `json:"medianAvgSpeedKmh"`
	P90AvgSpeedKmh            float64 `json:"p90AvgSpeedKmh"`
	MaxAvgSpeedKmh            float64 `json:"maxAvgSpeedKmh"`
}
