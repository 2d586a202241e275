package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/sightings-backend-go/internal/models"
	"github.com/jengzang/sightings-backend-go/internal/species"
)

type fakeSource struct {
	occurrences []models.Occurrence
	calls       int
	lastFilter  models.OccurrenceFilter
	err         error
	during      func() // runs after the window is read, before it is returned
}

func (f *fakeSource) GetWindow(filter models.OccurrenceFilter) ([]models.Occurrence, error) {
	f.calls++
	f.lastFilter = filter
	occurrences := f.occurrences
	if f.during != nil {
		f.during()
	}
	return occurrences, f.err
}

func sid(v int64) *int64 { return &v }

const t0 int64 = 1721030400000

func sighting(id string, minutes int64, lat float64, name string, speciesID *int64) models.Occurrence {
	return models.Occurrence{
		ID:           id,
		ObservedAtMs: t0 + minutes*60_000,
		Location:     models.Location{Lon: -123.0, Lat: lat},
		Taxon:        models.Taxon{ScientificName: name, SpeciesID: speciesID},
	}
}

func sampleDay() []models.Occurrence {
	return []models.Occurrence{
		sighting("o1", 0, 48.50, "Orcinus orca", sid(41521)),
		sighting("o2", 30, 48.52, "Orcinus orca", sid(41521)),
		sighting("p1", 40, 48.30, "Phocoena phocoena", sid(41440)),
	}
}

func newTravelService(src OccurrenceSource, ttl time.Duration) *TravelService {
	s := NewTravelService(src, species.Default(), ttl)
	s.now = func() time.Time { return time.UnixMilli(t0 + 12*3_600_000 + 1234) }
	return s
}

func TestGetTravelPaths(t *testing.T) {
	src := &fakeSource{occurrences: sampleDay()}
	s := newTravelService(src, 0)

	fc, err := s.GetTravelPaths(models.TravelFilter{StartTime: t0, EndTime: t0 + 3_600_000})
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)
	assert.Equal(t, "line-from-o1", fc.Features[3].ID)
	assert.Equal(t, t0, src.lastFilter.StartTime)
	assert.Equal(t, t0+3_600_000, src.lastFilter.EndTime)
}

func TestDefaultWindow(t *testing.T) {
	src := &fakeSource{}
	s := newTravelService(src, 0)

	_, err := s.GetTravelPaths(models.TravelFilter{})
	require.NoError(t, err)

	end := t0 + 12*3_600_000 // truncated to the minute
	assert.Equal(t, end, src.lastFilter.EndTime)
	assert.Equal(t, end-24*3_600_000, src.lastFilter.StartTime)
}

func TestInvalidWindow(t *testing.T) {
	s := newTravelService(&fakeSource{}, 0)

	tests := []struct {
		name   string
		filter models.TravelFilter
	}{
		{"inverted", models.TravelFilter{StartTime: t0 + 1, EndTime: t0}},
		{"empty", models.TravelFilter{StartTime: t0, EndTime: t0}},
		{"too long", models.TravelFilter{StartTime: t0, EndTime: t0 + 8*24*3_600_000}},
		{"negative", models.TravelFilter{StartTime: -5, EndTime: t0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.GetTravelPaths(tt.filter)
			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestTravelCache(t *testing.T) {
	src := &fakeSource{occurrences: sampleDay()}
	s := newTravelService(src, time.Minute)
	filter := models.TravelFilter{StartTime: t0, EndTime: t0 + 3_600_000}

	_, err := s.GetTravelPaths(filter)
	require.NoError(t, err)
	_, err = s.GetSegmentSummaries(filter)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "second call served from cache")

	s.Invalidate()
	_, err = s.GetTravelPaths(filter)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)

	filter.SpeciesID = 41521
	_, err = s.GetTravelPaths(filter)
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls, "different filter, different key")
}

func TestTravelCacheSkipsBuildRacingInvalidate(t *testing.T) {
	src := &fakeSource{occurrences: sampleDay()}
	s := newTravelService(src, time.Minute)
	filter := models.TravelFilter{StartTime: t0, EndTime: t0 + 3_600_000}

	// an ingest commits and invalidates while the first build is reading
	src.during = func() {
		src.occurrences = append(sampleDay(), sighting("o3", 45, 48.53, "Orcinus orca", sid(41521)))
		s.Invalidate()
	}
	resp, err := s.GetSegmentSummaries(filter)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.OccurrenceCount)

	src.during = nil
	resp, err = s.GetSegmentSummaries(filter)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls, "stale build was not cached")
	assert.Equal(t, 4, resp.OccurrenceCount)

	_, err = s.GetSegmentSummaries(filter)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls, "fresh build is cached")
}

func TestTravelBBoxValidation(t *testing.T) {
	src := &fakeSource{occurrences: sampleDay()}
	s := newTravelService(src, 0)

	_, err := s.GetTravelPaths(models.TravelFilter{StartTime: t0, EndTime: t0 + 3_600_000, MinLat: f64(48.4)})
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Equal(t, 0, src.calls)

	_, err = s.GetTravelPaths(models.TravelFilter{
		StartTime: t0, EndTime: t0 + 3_600_000,
		MinLat: f64(48), MinLon: f64(-124), MaxLat: f64(49), MaxLon: f64(-122),
	})
	require.NoError(t, err)
	require.NotNil(t, src.lastFilter.MinLat)
	assert.Equal(t, 48.0, *src.lastFilter.MinLat)
}

func TestSourceError(t *testing.T) {
	boom := errors.New("boom")
	s := newTravelService(&fakeSource{err: boom}, time.Minute)

	_, err := s.GetTravelPaths(models.TravelFilter{StartTime: t0, EndTime: t0 + 1})
	assert.ErrorIs(t, err, boom)
}

func TestGetSegmentSummaries(t *testing.T) {
	s := newTravelService(&fakeSource{occurrences: sampleDay()}, 0)

	resp, err := s.GetSegmentSummaries(models.TravelFilter{StartTime: t0, EndTime: t0 + 3_600_000})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.OccurrenceCount)
	assert.Equal(t, 2, resp.SegmentCount)
	assert.Equal(t, 1, resp.TravelLineCount)
	require.Len(t, resp.Segments, 2)
	assert.Equal(t, []string{"o1", "o2"}, resp.Segments[0].OccurrenceIDs)
	assert.Nil(t, resp.Segments[1].ExpectedSpeedKmh)
	assert.Equal(t, 2, resp.Statistics.SpeciesCount)
	assert.Equal(t, 1.5, resp.Statistics.MeanOccurrencesPerSegment)
	assert.Greater(t, resp.Statistics.TotalPathLengthMeters, 2000.0)
}

func TestSegmentOccurrences(t *testing.T) {
	s := newTravelService(&fakeSource{}, 0)

	day := sampleDay()
	// Caller order does not matter
	input := []models.Occurrence{day[2], day[1], day[0]}
	input[2].ID = ""

	fc, err := s.SegmentOccurrences(input)
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)
	assert.NotEmpty(t, fc.Features[0].ID)
	assert.Equal(t, "o2", fc.Features[1].ID)

	_, err = s.SegmentOccurrences([]models.Occurrence{{ID: "x"}})
	assert.ErrorIs(t, err, ErrInvalidOccurrence)
}
