package layer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpatialKeyComponents(t *testing.T) {
	k := SpatialKey{Col: 2, Row: 5}

	assert.Equal(t, k, k.SpatialComponent())

	_, ok := k.TemporalComponent()
	assert.False(t, ok)
}

func TestSpaceTimeKeyComponents(t *testing.T) {
	instant := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	k := SpaceTimeKey{
		SpatialKey: SpatialKey{Col: 1, Row: 3},
		Instant:    instant,
	}

	assert.Equal(t, SpatialKey{Col: 1, Row: 3}, k.SpatialComponent())

	got, ok := k.TemporalComponent()
	assert.True(t, ok)
	assert.Equal(t, instant, got)
}

func TestSpatialKeyCompare(t *testing.T) {
	tests := []struct {
		a, b SpatialKey
		want int
	}{
		{SpatialKey{0, 0}, SpatialKey{0, 0}, 0},
		{SpatialKey{0, 1}, SpatialKey{1, 0}, -1},
		{SpatialKey{1, 0}, SpatialKey{0, 9}, 1},
		{SpatialKey{2, 1}, SpatialKey{2, 3}, -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Compare(tt.b), "%s vs %s", tt.a, tt.b)
	}
}
