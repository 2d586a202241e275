package travel

import (
	"sort"

	"github.com/jengzang/sightings-backend-go/internal/models"
)

// SortChronological returns a copy of occurrences ordered by observation time.
// The sort is stable: occurrences sharing a timestamp keep their input order,
// which Build relies on for reproducible groupings.
func SortChronological(occurrences []models.Occurrence) []models.Occurrence {
	sorted := make([]models.Occurrence, len(occurrences))
	copy(sorted, occurrences)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ObservedAtMs < sorted[j].ObservedAtMs
	})

	return sorted
}
