// Package travel infers movement segments from independent sightings.
//
// Occurrences of the same species are chained greedily, in time order, while
// each hop from the current tail stays within the time gap, distance and
// implied speed limits in Thresholds. Every occurrence ends up in exactly one
// Segment. Segments are then projected into GeoJSON point and line features.
package travel

import (
	"errors"
	"fmt"
	"math"

	"github.com/jengzang/sightings-backend-go/internal/models"
	"github.com/jengzang/sightings-backend-go/internal/spatial"
)

var (
	// ErrOutOfOrder is returned when Build meets a candidate observed before
	// the tail of the chain it is tested against. Input must be sorted.
	ErrOutOfOrder = errors.New("out-of-order input")

	// ErrEmptySegment is returned by the projectors for a segment with no occurrences.
	ErrEmptySegment = errors.New("segment has no occurrences")
)

const msPerHour = 3_600_000

// SpeedLookup resolves the expected travel speed of a species in km/h
type SpeedLookup interface {
	ExpectedSpeedKmh(scientificName string) (float64, bool)
}

// Thresholds bound which hops are accepted into a chain
type Thresholds struct {
	MaxGapMs          int64   // Longest allowed time between tail and candidate
	MaxDistanceM      float64 // Longest allowed hop
	LoiterAllowanceM  float64 // Distance not counted against the speed budget
	SpeedToleranceMul float64 // Multiplier on the species' expected speed
}

// DefaultThresholds are the tuning constants used by the service
var DefaultThresholds = Thresholds{
	MaxGapMs:          12 * msPerHour, // 12 hours
	MaxDistanceM:      20000.0,        // 20 km
	LoiterAllowanceM:  3000.0,         // 3 km
	SpeedToleranceMul: 1.5,
}

// Segment is one inferred chain of sightings of the same moving subject
type Segment struct {
	Occurrences      []models.Occurrence
	Taxon            models.Taxon // Taxon of the last occurrence placed
	ExpectedSpeedKmh *float64     // nil when the species has no table entry
	LastOccurrenceAt int64        // Epoch milliseconds
}

// AnchorID returns the id of the occurrence that started the segment
func (s Segment) AnchorID() string {
	if len(s.Occurrences) == 0 {
		return ""
	}
	return s.Occurrences[0].ID
}

// Builder chains occurrences into segments
type Builder struct {
	speeds     SpeedLookup
	Thresholds Thresholds
}

// NewBuilder creates a builder using DefaultThresholds
func NewBuilder(speeds SpeedLookup) *Builder {
	return &Builder{
		speeds:     speeds,
		Thresholds: DefaultThresholds,
	}
}

// Segment sorts occurrences chronologically and builds segments from them
func (b *Builder) Segment(occurrences []models.Occurrence) ([]Segment, error) {
	return b.Build(SortChronological(occurrences))
}

// Build partitions chronologically sorted occurrences into segments.
//
// Each unplaced occurrence, in order, anchors a new segment and claims every
// later unplaced occurrence that passes the hop checks against the chain's
// current tail. Rejected candidates stay available to later anchors.
func (b *Builder) Build(sorted []models.Occurrence) ([]Segment, error) {
	placed := make([]bool, len(sorted))
	segments := make([]Segment, 0, len(sorted))

	for i := range sorted {
		if placed[i] {
			continue
		}

		segment, err := b.chain(sorted, i, placed)
		if err != nil {
			return nil, err
		}
		segments = append(segments, segment)
	}

	return segments, nil
}

// chain grows the segment anchored at sorted[i], marking claimed indices in placed
func (b *Builder) chain(sorted []models.Occurrence, i int, placed []bool) (Segment, error) {
	anchor := sorted[i]
	placed[i] = true
	chain := []models.Occurrence{anchor}

	var expectedSpeed *float64
	speed, known := b.speeds.ExpectedSpeedKmh(anchor.Taxon.ScientificName)
	if known {
		expectedSpeed = &speed
	}

	if anchor.Taxon.SpeciesID != nil && known {
		tail := anchor
		for j := i + 1; j < len(sorted); j++ {
			if placed[j] {
				continue
			}

			candidate := sorted[j]
			ok, err := b.accepts(anchor, tail, candidate, speed)
			if err != nil {
				return Segment{}, err
			}
			if !ok {
				continue
			}

			chain = append(chain, candidate)
			placed[j] = true
			tail = candidate
		}
	}

	last := chain[len(chain)-1]
	return Segment{
		Occurrences:      chain,
		Taxon:            last.Taxon,
		ExpectedSpeedKmh: expectedSpeed,
		LastOccurrenceAt: last.ObservedAtMs,
	}, nil
}

// accepts runs the hop checks for candidate against the chain's tail
func (b *Builder) accepts(anchor, tail, candidate models.Occurrence, speedKmh float64) (bool, error) {
	if !anchor.Taxon.SameSpecies(candidate.Taxon) {
		return false, nil
	}

	deltaMs := candidate.ObservedAtMs - tail.ObservedAtMs
	if deltaMs > b.Thresholds.MaxGapMs {
		return false, nil
	}
	if deltaMs < 0 {
		return false, fmt.Errorf("%w: occurrence %s at %d precedes chain tail %s at %d",
			ErrOutOfOrder, candidate.ID, candidate.ObservedAtMs, tail.ID, tail.ObservedAtMs)
	}
	// Same instant: cannot extend a strictly increasing chain
	if deltaMs == 0 {
		return false, nil
	}

	distance := spatial.HaversineDistance(
		tail.Location.Lat, tail.Location.Lon,
		candidate.Location.Lat, candidate.Location.Lon,
	)
	if distance > b.Thresholds.MaxDistanceM {
		return false, nil
	}

	hours := float64(deltaMs) / msPerHour
	impliedSpeed := math.Max(0, distance-b.Thresholds.LoiterAllowanceM) / hours // meters per hour
	maxSpeed := b.Thresholds.SpeedToleranceMul * speedKmh * spatial.MetersPerKm

	return impliedSpeed <= maxSpeed, nil
}
