package travel

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/sightings-backend-go/internal/models"
	"github.com/jengzang/sightings-backend-go/internal/species"
)

func loadJSON(t *testing.T, name string, v any) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

// TestGoldenTwentyOccurrences pins the greedy grouping of a fixed day of
// Salish Sea sightings.
func TestGoldenTwentyOccurrences(t *testing.T) {
	t.Parallel()

	var input []models.Occurrence
	loadJSON(t, "occurrences_20.json", &input)
	require.Len(t, input, 20)

	var expected [][]string
	loadJSON(t, "segments_20.golden.json", &expected)

	segments, err := NewBuilder(species.Default()).Segment(input)
	require.NoError(t, err)

	got := groupIDs(segments)
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("segment grouping mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, segments, 18)

	var pairs int
	for _, s := range segments {
		if len(s.Occurrences) == 2 {
			pairs++
		}
	}
	require.Equal(t, 2, pairs)

	// Repeated runs over the same input give the same grouping
	again, err := NewBuilder(species.Default()).Segment(input)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(got, groupIDs(again)))
}

func TestGoldenTravelLines(t *testing.T) {
	t.Parallel()

	var input []models.Occurrence
	loadJSON(t, "occurrences_20.json", &input)

	segments, err := NewBuilder(species.Default()).Segment(input)
	require.NoError(t, err)

	fc, err := FeatureCollection(segments)
	require.NoError(t, err)
	require.Len(t, fc.Features, 22)

	var lineIDs []any
	for _, f := range fc.Features[20:] {
		lineIDs = append(lineIDs, f.ID)
	}
	require.Equal(t, []any{"line-from-occ-o1", "line-from-occ-h1"}, lineIDs)
}
