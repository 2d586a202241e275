// Package stats aggregates per-segment summaries into window statistics.
package stats

import (
	"math"
	"sort"

	"github.com/jengzang/sightings-backend-go/internal/models"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Max returns the maximum value, or 0 for an empty slice
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Quantile calculates the q-th quantile (0 <= q <= 1)
// Uses linear interpolation between closest ranks
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	q = math.Max(0, math.Min(1, q))

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Segments aggregates segment summaries. SpeciesCount counts distinct
// species ids; taxa without one are not counted. Length and speed figures
// only consider segments that produced a travel line.
func Segments(summaries []models.SegmentSummary) models.SegmentStatistics {
	var (
		result  models.SegmentStatistics
		sizes   = make([]float64, 0, len(summaries))
		lengths []float64
		speeds  []float64
		species = make(map[int64]struct{})
	)

	for _, s := range summaries {
		sizes = append(sizes, float64(s.OccurrenceCount))
		if s.Taxon.SpeciesID != nil {
			species[*s.Taxon.SpeciesID] = struct{}{}
		}

		if s.LineID == "" {
			continue
		}
		lengths = append(lengths, s.PathLengthMeters)
		result.TotalPathLengthMeters += s.PathLengthMeters
		if s.LastOccurrenceAt > s.FirstOccurrenceAt {
			speeds = append(speeds, s.AvgSpeedKmh)
		}
	}

	result.SpeciesCount = len(species)
	result.MeanOccurrencesPerSegment = Mean(sizes)
	result.MedianPathLengthMeters = Quantile(lengths, 0.5)
	result.MedianAvgSpeedKmh = Quantile(speeds, 0.5)
	result.P90AvgSpeedKmh = Quantile(speeds, 0.9)
	result.MaxAvgSpeedKmh = Max(speeds)
	return result
}
