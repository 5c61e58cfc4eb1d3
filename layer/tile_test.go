package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileRoundTrip(t *testing.T) {
	tile := NewTile(4, 2)
	for i := range tile.Cells {
		tile.Set(uint32(i%4), uint32(i/4), float64(i)*1.5)
	}

	decoded, err := TileFromBytes(tile.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tile, decoded)
}

func TestTileRoundTripNoData(t *testing.T) {
	nd := -9999.0
	tile := NewTile(2, 2)
	tile.NoData = &nd
	tile.Cells = []float64{1, nd, 3, nd}

	decoded, err := TileFromBytes(tile.Bytes())
	require.NoError(t, err)
	require.NotNil(t, decoded.NoData)
	assert.Equal(t, nd, *decoded.NoData)
	assert.Equal(t, tile.Cells, decoded.Cells)
}

func TestTileFromBytesErrors(t *testing.T) {
	_, err := TileFromBytes(nil)
	assert.Error(t, err)

	_, err = TileFromBytes([]byte{0, 0, 0, 1})
	assert.Error(t, err)

	// Header claims 2x2 cells but carries none
	tile := NewTile(2, 2)
	raw := tile.Bytes()
	_, err = TileFromBytes(raw[:9])
	assert.Error(t, err)
}

func TestTileGetSet(t *testing.T) {
	tile := NewTile(3, 2)
	tile.Set(2, 1, 42)
	assert.Equal(t, 42.0, tile.Get(2, 1))
	assert.Equal(t, 0.0, tile.Get(0, 0))
}
