package relation

import (
	"fmt"

	"github.com/tilegrid/tilegrid/layer"
)

// Column names exposed by layer relations
const (
	ColSpatialKey  = "spatialKey"
	ColTemporalKey = "temporalKey"
	ColExtent      = "extent"
	ColTile        = "tile"
)

// Column metadata tags. Downstream consumers use the role tag to recognize
// key columns without relying on column names.
const (
	RoleTag         = "role"
	SpatialKeyRole  = "spatialKey"
	TemporalKeyRole = "temporalKey"
)

// ColumnType is the type of a relation column
type ColumnType int

const (
	// SpatialKeyColumn values are layer.SpatialKey grid positions
	SpatialKeyColumn ColumnType = iota

	// TemporalKeyColumn values are time.Time instants
	TemporalKeyColumn

	// ExtentColumn values are *geom.Extent bounding boxes
	ExtentColumn

	// TileColumn values are *layer.Tile rasters
	TileColumn
)

func (t ColumnType) String() string {
	switch t {
	case SpatialKeyColumn:
		return "spatialKey"
	case TemporalKeyColumn:
		return "timestamp"
	case ExtentColumn:
		return "extent"
	case TileColumn:
		return "tile"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// Column describes one column of a relation's schema
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	Metadata map[string]string
}

// Schema is the ordered column list of a relation. Consumers rely on
// positional as well as named access, so the order is part of the contract.
type Schema []Column

// Names returns the column names in schema order
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, col := range s {
		names[i] = col.Name
	}
	return names
}

// Index returns the position of the named column
func (s Schema) Index(name string) (int, bool) {
	for i, col := range s {
		if col.Name == name {
			return i, true
		}
	}
	return -1, false
}

// BuildSchema derives the output schema for a resolved layer. The column
// order is a pure function of the variants:
//
//	spatial:    [spatialKey, extent, tile]
//	space-time: [spatialKey, temporalKey, extent, tile]
//
// The tile column is the only nullable one.
func BuildSchema(keyVariant layer.KeyVariant, valueVariant layer.ValueVariant) Schema {
	schema := Schema{
		{
			Name:     ColSpatialKey,
			Type:     SpatialKeyColumn,
			Metadata: map[string]string{RoleTag: SpatialKeyRole},
		},
	}

	if keyVariant == layer.SpaceTimeVariant {
		schema = append(schema, Column{
			Name:     ColTemporalKey,
			Type:     TemporalKeyColumn,
			Metadata: map[string]string{RoleTag: TemporalKeyRole},
		})
	}

	return append(schema,
		Column{Name: ColExtent, Type: ExtentColumn},
		Column{Name: ColTile, Type: TileColumn, Nullable: true},
	)
}
