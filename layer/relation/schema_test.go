package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilegrid/tilegrid/layer"
)

func TestBuildSchemaSpatial(t *testing.T) {
	schema := BuildSchema(layer.SpatialVariant, layer.TileVariant)

	assert.Equal(t, []string{"spatialKey", "extent", "tile"}, schema.Names())
}

func TestBuildSchemaSpaceTime(t *testing.T) {
	schema := BuildSchema(layer.SpaceTimeVariant, layer.TileVariant)

	assert.Equal(t, []string{"spatialKey", "temporalKey", "extent", "tile"}, schema.Names())
}

func TestSchemaColumnDetails(t *testing.T) {
	schema := BuildSchema(layer.SpaceTimeVariant, layer.TileVariant)
	require.Len(t, schema, 4)

	assert.Equal(t, SpatialKeyColumn, schema[0].Type)
	assert.Equal(t, SpatialKeyRole, schema[0].Metadata[RoleTag])
	assert.False(t, schema[0].Nullable)

	assert.Equal(t, TemporalKeyColumn, schema[1].Type)
	assert.Equal(t, TemporalKeyRole, schema[1].Metadata[RoleTag])

	assert.Equal(t, ExtentColumn, schema[2].Type)

	assert.Equal(t, TileColumn, schema[3].Type)
	assert.True(t, schema[3].Nullable, "tile is the only nullable column")
}

func TestSchemaIndex(t *testing.T) {
	schema := BuildSchema(layer.SpatialVariant, layer.TileVariant)

	idx, ok := schema.Index(ColExtent)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = schema.Index("temporalKey")
	assert.False(t, ok, "spatial schema has no temporal key")

	_, ok = schema.Index("bogus")
	assert.False(t, ok)
}

func TestSchemaTable(t *testing.T) {
	schema := BuildSchema(layer.SpatialVariant, layer.TileVariant)
	table := schema.Table()

	assert.Contains(t, table, "spatialKey")
	assert.Contains(t, table, "extent")
	assert.Contains(t, table, "tile")
}
