package spatial

import (
	"testing"

	"github.com/go-spatial/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() *geom.Extent {
	return geom.NewExtent([2]float64{0, 0}, [2]float64{1, 1})
}

func TestContainsPoint(t *testing.T) {
	tests := []struct {
		name  string
		point geom.Point
		want  bool
	}{
		{"interior", geom.Point{0.5, 0.5}, true},
		{"on corner", geom.Point{0, 0}, true},
		{"on edge", geom.Point{1, 0.5}, true},
		{"outside x", geom.Point{1.5, 0.5}, false},
		{"outside y", geom.Point{0.5, -0.1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ContainsPoint{Point: tt.point}
			assert.Equal(t, tt.want, c.Evaluate(unitSquare()))
		})
	}
}

func TestContainsPointBounds(t *testing.T) {
	c := ContainsPoint{Point: geom.Point{2, 3}}
	b := c.Bounds()
	require.NotNil(t, b)
	assert.Equal(t, 2.0, b.MinX())
	assert.Equal(t, 2.0, b.MaxX())
	assert.Equal(t, 3.0, b.MinY())
	assert.Equal(t, 3.0, b.MaxY())
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name     string
		envelope *geom.Extent
		want     bool
	}{
		{"overlapping", geom.NewExtent([2]float64{0.5, 0.5}, [2]float64{2, 2}), true},
		{"containing", geom.NewExtent([2]float64{-1, -1}, [2]float64{2, 2}), true},
		{"contained", geom.NewExtent([2]float64{0.25, 0.25}, [2]float64{0.75, 0.75}), true},
		{"touching edge", geom.NewExtent([2]float64{1, 0}, [2]float64{2, 1}), true},
		{"disjoint", geom.NewExtent([2]float64{2, 2}, [2]float64{3, 3}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Intersects{Envelope: tt.envelope}
			assert.Equal(t, tt.want, c.Evaluate(unitSquare()))
		})
	}
}

func TestEnvelope(t *testing.T) {
	t.Run("point", func(t *testing.T) {
		ext, err := Envelope(geom.Point{3, 4})
		require.NoError(t, err)
		assert.Equal(t, 3.0, ext.MinX())
		assert.Equal(t, 3.0, ext.MaxX())
		assert.Equal(t, 4.0, ext.MinY())
		assert.Equal(t, 4.0, ext.MaxY())
	})

	t.Run("line string", func(t *testing.T) {
		ext, err := Envelope(geom.LineString{{0, 5}, {2, 1}, {-1, 3}})
		require.NoError(t, err)
		assert.Equal(t, -1.0, ext.MinX())
		assert.Equal(t, 2.0, ext.MaxX())
		assert.Equal(t, 1.0, ext.MinY())
		assert.Equal(t, 5.0, ext.MaxY())
	})

	t.Run("polygon", func(t *testing.T) {
		ext, err := Envelope(geom.Polygon{{{0, 0}, {4, 0}, {4, 2}, {0, 2}}})
		require.NoError(t, err)
		assert.Equal(t, 0.0, ext.MinX())
		assert.Equal(t, 4.0, ext.MaxX())
		assert.Equal(t, 2.0, ext.MaxY())
	})

	t.Run("collection", func(t *testing.T) {
		ext, err := Envelope(geom.Collection{
			geom.Point{-2, 0},
			geom.LineString{{1, 1}, {5, 5}},
		})
		require.NoError(t, err)
		assert.Equal(t, -2.0, ext.MinX())
		assert.Equal(t, 5.0, ext.MaxX())
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := Envelope(nil)
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Envelope(geom.LineString{})
		assert.Error(t, err)
	})
}
