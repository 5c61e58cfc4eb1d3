package layer

import (
	"fmt"
	"time"
)

// Key is a layer key. Both variants expose their spatial component directly;
// the temporal component is only present on space-time keys.
type Key interface {
	// SpatialComponent returns the grid position of the key
	SpatialComponent() SpatialKey

	// TemporalComponent returns the key's instant and whether one exists
	TemporalComponent() (time.Time, bool)

	// String returns a human-readable representation
	String() string
}

// SpatialKey is a column/row position in a layer's tiling grid.
// Column 0 is the western edge, row 0 the northern edge.
type SpatialKey struct {
	Col uint32 `json:"col"`
	Row uint32 `json:"row"`
}

// SpatialComponent returns the key itself
func (k SpatialKey) SpatialComponent() SpatialKey {
	return k
}

// TemporalComponent reports no instant for spatial keys
func (k SpatialKey) TemporalComponent() (time.Time, bool) {
	return time.Time{}, false
}

func (k SpatialKey) String() string {
	return fmt.Sprintf("(%d, %d)", k.Col, k.Row)
}

// Compare orders keys by column, then row. This matches the byte order
// produced by the binary key encoding, so sorted keys scan in store order.
func (k SpatialKey) Compare(other SpatialKey) int {
	if k.Col < other.Col {
		return -1
	} else if k.Col > other.Col {
		return 1
	}
	if k.Row < other.Row {
		return -1
	} else if k.Row > other.Row {
		return 1
	}
	return 0
}

// SpaceTimeKey is a grid position paired with an instant.
type SpaceTimeKey struct {
	SpatialKey
	Instant time.Time `json:"instant"`
}

// TemporalComponent returns the key's instant
func (k SpaceTimeKey) TemporalComponent() (time.Time, bool) {
	return k.Instant, true
}

func (k SpaceTimeKey) String() string {
	return fmt.Sprintf("(%d, %d, %s)", k.Col, k.Row, k.Instant.UTC().Format(time.RFC3339))
}
