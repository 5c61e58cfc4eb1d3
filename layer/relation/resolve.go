package relation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tilegrid/tilegrid/layer"
)

var (
	// ErrUnsupportedKeyType is returned when a layer header declares a key
	// representation the adapter does not know
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	// ErrUnsupportedValueType is returned when a layer header declares a
	// value representation the adapter does not know
	ErrUnsupportedValueType = errors.New("unsupported value type")

	// ErrUnknownColumn is returned when a scan requests a column name that
	// is not part of the relation's schema
	ErrUnknownColumn = errors.New("unknown column")
)

// Recognized declared type names. Headers may qualify them with a package
// path ("geotrellis.spark.SpatialKey"); matching is on the final segment.
const (
	KeyTypeSpatial   = "SpatialKey"
	KeyTypeSpaceTime = "SpaceTimeKey"
	ValueTypeTile    = "Tile"
)

// ResolveVariants maps a layer header's declared type names onto the key and
// value variants the adapter supports. Resolution is fatal: an unknown name
// fails with ErrUnsupportedKeyType or ErrUnsupportedValueType before any
// schema is built or scan executed.
func ResolveVariants(h layer.Header) (layer.KeyVariant, layer.ValueVariant, error) {
	var keyVariant layer.KeyVariant
	switch baseName(h.KeyType) {
	case KeyTypeSpatial:
		keyVariant = layer.SpatialVariant
	case KeyTypeSpaceTime:
		keyVariant = layer.SpaceTimeVariant
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedKeyType, h.KeyType)
	}

	switch baseName(h.ValueType) {
	case ValueTypeTile:
		return keyVariant, layer.TileVariant, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedValueType, h.ValueType)
	}
}

// baseName strips a qualifying package path from a declared type name
func baseName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
