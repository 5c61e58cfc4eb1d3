package layer

import (
	"fmt"
	"math"
	"time"

	"github.com/go-spatial/geom"
)

// LayoutDefinition describes how a layer's coordinate space is cut into a
// grid of tiles. The grid is anchored at the north-west corner of Extent:
// column 0 starts at MinX, row 0 starts at MaxY.
type LayoutDefinition struct {
	Extent   geom.Extent `json:"extent"`
	GridCols uint32      `json:"gridCols"`
	GridRows uint32      `json:"gridRows"`
	TileCols uint32      `json:"tileCols"`
	TileRows uint32      `json:"tileRows"`
}

// CellWidth returns the map width of one grid cell
func (l LayoutDefinition) CellWidth() float64 {
	return (l.Extent.MaxX() - l.Extent.MinX()) / float64(l.GridCols)
}

// CellHeight returns the map height of one grid cell
func (l LayoutDefinition) CellHeight() float64 {
	return (l.Extent.MaxY() - l.Extent.MinY()) / float64(l.GridRows)
}

// KeyExtent returns the bounding box covered by the given grid position.
// The transform is deterministic: the same key always maps to the same box.
func (l LayoutDefinition) KeyExtent(k SpatialKey) *geom.Extent {
	w := l.CellWidth()
	h := l.CellHeight()

	minX := l.Extent.MinX() + float64(k.Col)*w
	maxY := l.Extent.MaxY() - float64(k.Row)*h

	return geom.NewExtent(
		[2]float64{minX, maxY - h},
		[2]float64{minX + w, maxY},
	)
}

// GridBounds returns the range of grid positions whose extents could
// intersect e, clamped to the layout grid. Cell edges count as intersecting,
// so a window on a shared tile boundary covers the cells on both sides. ok
// is false when e lies entirely outside the layout extent.
func (l LayoutDefinition) GridBounds(e *geom.Extent) (KeyBounds, bool) {
	if e.MaxX() < l.Extent.MinX() || e.MinX() > l.Extent.MaxX() ||
		e.MaxY() < l.Extent.MinY() || e.MinY() > l.Extent.MaxY() {
		return KeyBounds{}, false
	}

	w := l.CellWidth()
	h := l.CellHeight()

	minCol := clampGrid(math.Ceil((e.MinX()-l.Extent.MinX())/w-1), l.GridCols)
	maxCol := clampGrid(math.Floor((e.MaxX()-l.Extent.MinX())/w), l.GridCols)
	minRow := clampGrid(math.Ceil((l.Extent.MaxY()-e.MaxY())/h-1), l.GridRows)
	maxRow := clampGrid(math.Floor((l.Extent.MaxY()-e.MinY())/h), l.GridRows)

	return KeyBounds{
		Min: SpatialKey{Col: minCol, Row: minRow},
		Max: SpatialKey{Col: maxCol, Row: maxRow},
	}, true
}

func clampGrid(v float64, n uint32) uint32 {
	if v < 0 {
		return 0
	}
	if v > float64(n-1) {
		return n - 1
	}
	return uint32(v)
}

// KeyBounds is an inclusive range of grid positions.
type KeyBounds struct {
	Min SpatialKey `json:"min"`
	Max SpatialKey `json:"max"`
}

// Contains reports whether k falls inside the bounds
func (b KeyBounds) Contains(k SpatialKey) bool {
	return k.Col >= b.Min.Col && k.Col <= b.Max.Col &&
		k.Row >= b.Min.Row && k.Row <= b.Max.Row
}

func (b KeyBounds) String() string {
	return fmt.Sprintf("[%s .. %s]", b.Min, b.Max)
}

// Metadata is the variant-typed layout metadata of a layer. Both variants
// share the key-to-extent transform capability; the space-time variant adds
// the layer's temporal range.
type Metadata interface {
	// Definition returns the layer's tiling layout
	Definition() LayoutDefinition

	// KeyExtent maps a key onto its bounding box in layer coordinates
	KeyExtent(k Key) *geom.Extent
}

// SpatialMetadata is the layout metadata of a spatial-only layer.
type SpatialMetadata struct {
	Layout LayoutDefinition `json:"layout"`
	Bounds KeyBounds        `json:"bounds"`
}

// Definition returns the tiling layout
func (m *SpatialMetadata) Definition() LayoutDefinition {
	return m.Layout
}

// KeyExtent maps a key onto its bounding box
func (m *SpatialMetadata) KeyExtent(k Key) *geom.Extent {
	return m.Layout.KeyExtent(k.SpatialComponent())
}

// SpaceTimeMetadata is the layout metadata of a space-time layer. The
// spatial transform is unchanged; MinTime/MaxTime bound the layer's instants.
type SpaceTimeMetadata struct {
	SpatialMetadata
	MinTime time.Time `json:"minTime"`
	MaxTime time.Time `json:"maxTime"`
}
