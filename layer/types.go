package layer

import (
	"fmt"
)

// ID identifies a single layer instance: a named tile pyramid at one zoom
// level. IDs are immutable values supplied by the caller.
type ID struct {
	Name string
	Zoom uint32
}

// String returns a compact representation, e.g. "weather@4"
func (id ID) String() string {
	return fmt.Sprintf("%s@%d", id.Name, id.Zoom)
}

// Compare orders IDs by name, then zoom
func (id ID) Compare(other ID) int {
	if id.Name < other.Name {
		return -1
	} else if id.Name > other.Name {
		return 1
	}
	if id.Zoom < other.Zoom {
		return -1
	} else if id.Zoom > other.Zoom {
		return 1
	}
	return 0
}

// Header is the declared type information read once from a layer's stored
// metadata. The declared names may be bare ("SpatialKey") or fully qualified
// ("geotrellis.spark.SpatialKey"); resolution matches on the final segment.
type Header struct {
	KeyType   string `json:"keyType"`
	ValueType string `json:"valueType"`
}

// KeyVariant is the structural shape of a layer's keys. It is resolved once
// per relation from the layer Header and never changes afterwards.
type KeyVariant int

const (
	// SpatialVariant keys carry only a grid position
	SpatialVariant KeyVariant = iota

	// SpaceTimeVariant keys carry a grid position plus an instant
	SpaceTimeVariant
)

func (v KeyVariant) String() string {
	switch v {
	case SpatialVariant:
		return "spatial"
	case SpaceTimeVariant:
		return "spacetime"
	default:
		return fmt.Sprintf("KeyVariant(%d)", int(v))
	}
}

// ValueVariant is the shape of a layer's values. Raster tiles are the only
// supported value representation.
type ValueVariant int

const (
	// TileVariant values are opaque raster tiles
	TileVariant ValueVariant = iota
)

func (v ValueVariant) String() string {
	switch v {
	case TileVariant:
		return "tile"
	default:
		return fmt.Sprintf("ValueVariant(%d)", int(v))
	}
}
