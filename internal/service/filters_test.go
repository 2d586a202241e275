package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestValidateBBox(t *testing.T) {
	tests := []struct {
		name                           string
		minLat, minLon, maxLat, maxLon *float64
		wantErr                        bool
	}{
		{name: "none"},
		{name: "complete", minLat: f64(48.4), minLon: f64(-123.5), maxLat: f64(48.7), maxLon: f64(-122.5)},
		{name: "zero bounds", minLat: f64(0), minLon: f64(0), maxLat: f64(0), maxLon: f64(0)},
		{name: "only minLat", minLat: f64(48.4), wantErr: true},
		{name: "three bounds", minLat: f64(48.4), minLon: f64(-123.5), maxLat: f64(48.7), wantErr: true},
		{name: "inverted lat", minLat: f64(49), minLon: f64(-123.5), maxLat: f64(48), maxLon: f64(-122.5), wantErr: true},
		{name: "inverted lon", minLat: f64(48), minLon: f64(-122), maxLat: f64(49), maxLon: f64(-123), wantErr: true},
		{name: "off the globe", minLat: f64(-91), minLon: f64(-123.5), maxLat: f64(48.7), maxLon: f64(-122.5), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBBox(tt.minLat, tt.minLon, tt.maxLat, tt.maxLon)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFilter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
