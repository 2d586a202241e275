package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/sightings-backend-go/internal/analysis/travel"
	"github.com/jengzang/sightings-backend-go/internal/models"
	"github.com/jengzang/sightings-backend-go/internal/stats"
)

// ErrInvalidWindow is returned for an empty, inverted or oversized time window
var ErrInvalidWindow = errors.New("invalid time window")

const (
	// DefaultWindow is used when the caller gives no start time
	DefaultWindow = 24 * time.Hour
	// MaxWindow bounds how many sightings one build pass sees
	MaxWindow = 7 * 24 * time.Hour
)

// OccurrenceSource loads the occurrences of a time window, oldest first
type OccurrenceSource interface {
	GetWindow(filter models.OccurrenceFilter) ([]models.Occurrence, error)
}

// TravelService infers travel segments from stored occurrences
type TravelService struct {
	source  OccurrenceSource
	builder *travel.Builder
	cache   *cache.Cache
	now     func() time.Time

	// generation advances on every Invalidate; builds started under an
	// older generation are not cached
	generation atomic.Uint64
}

// NewTravelService creates a new travel service. Built segments are cached
// per window for ttl; a ttl of zero disables caching.
func NewTravelService(source OccurrenceSource, speeds travel.SpeedLookup, ttl time.Duration) *TravelService {
	s := &TravelService{
		source:  source,
		builder: travel.NewBuilder(speeds),
		now:     time.Now,
	}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// Invalidate drops every cached build
func (s *TravelService) Invalidate() {
	s.generation.Add(1)
	if s.cache != nil {
		s.cache.Flush()
	}
}

// normalizeWindow fills in the default window ending at the current minute
func (s *TravelService) normalizeWindow(filter models.TravelFilter) (models.TravelFilter, error) {
	if filter.EndTime == 0 {
		filter.EndTime = s.now().Truncate(time.Minute).UnixMilli()
	}
	if filter.StartTime == 0 {
		filter.StartTime = filter.EndTime - DefaultWindow.Milliseconds()
	}

	switch {
	case filter.StartTime < 0 || filter.EndTime <= 0:
		return filter, fmt.Errorf("%w: negative bounds", ErrInvalidWindow)
	case filter.StartTime >= filter.EndTime:
		return filter, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidWindow)
	case filter.EndTime-filter.StartTime > MaxWindow.Milliseconds():
		return filter, fmt.Errorf("%w: longer than %s", ErrInvalidWindow, MaxWindow)
	}
	if err := validateBBox(filter.MinLat, filter.MinLon, filter.MaxLat, filter.MaxLon); err != nil {
		return filter, err
	}
	return filter, nil
}

func bound(b *float64) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatFloat(*b, 'g', -1, 64)
}

func cacheKey(f models.TravelFilter) string {
	return fmt.Sprintf("%d|%d|%d|%s|%s|%s|%s|%s",
		f.StartTime, f.EndTime, f.SpeciesID, f.ScientificName,
		bound(f.MinLat), bound(f.MaxLat), bound(f.MinLon), bound(f.MaxLon))
}

// segments loads and builds the segments for a normalized window
func (s *TravelService) segments(filter models.TravelFilter) ([]travel.Segment, int, error) {
	type cached struct {
		segments    []travel.Segment
		occurrences int
	}

	key := cacheKey(filter)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			c := v.(cached)
			return c.segments, c.occurrences, nil
		}
	}

	generation := s.generation.Load()
	occurrences, err := s.source.GetWindow(filter.OccurrenceFilter())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load occurrences: %w", err)
	}

	segments, err := s.builder.Segment(occurrences)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build segments: %w", err)
	}

	log.Printf("[TravelService] Built %d segments from %d occurrences (%d-%d)",
		len(segments), len(occurrences), filter.StartTime, filter.EndTime)

	if s.cache != nil && s.generation.Load() == generation {
		s.cache.SetDefault(key, cached{segments: segments, occurrences: len(occurrences)})
	}
	return segments, len(occurrences), nil
}

// GetTravelPaths returns point and travel-line features for a window
func (s *TravelService) GetTravelPaths(filter models.TravelFilter) (*geojson.FeatureCollection, error) {
	filter, err := s.normalizeWindow(filter)
	if err != nil {
		return nil, err
	}

	segments, _, err := s.segments(filter)
	if err != nil {
		return nil, err
	}

	return travel.FeatureCollection(segments)
}

// GetSegmentSummaries describes every segment inferred for a window
func (s *TravelService) GetSegmentSummaries(filter models.TravelFilter) (*models.SegmentSummariesResponse, error) {
	filter, err := s.normalizeWindow(filter)
	if err != nil {
		return nil, err
	}

	segments, occurrences, err := s.segments(filter)
	if err != nil {
		return nil, err
	}

	resp := &models.SegmentSummariesResponse{
		StartTime:       filter.StartTime,
		EndTime:         filter.EndTime,
		OccurrenceCount: occurrences,
		SegmentCount:    len(segments),
		Segments:        make([]models.SegmentSummary, 0, len(segments)),
	}
	for _, segment := range segments {
		summary, err := travel.Summarize(segment)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize segment: %w", err)
		}
		if summary.LineID != "" {
			resp.TravelLineCount++
		}
		resp.Segments = append(resp.Segments, summary)
	}
	resp.Statistics = stats.Segments(resp.Segments)

	return resp, nil
}

// SegmentOccurrences builds travel features for a caller-supplied batch
// without touching the store
func (s *TravelService) SegmentOccurrences(occurrences []models.Occurrence) (*geojson.FeatureCollection, error) {
	prepared, err := PrepareOccurrences(occurrences)
	if err != nil {
		return nil, err
	}

	segments, err := s.builder.Segment(prepared)
	if err != nil {
		return nil, fmt.Errorf("failed to build segments: %w", err)
	}

	return travel.FeatureCollection(segments)
}
