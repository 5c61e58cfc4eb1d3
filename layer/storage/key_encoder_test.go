package storage

import (
	"bytes"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilegrid/tilegrid/layer"
)

func TestEncodeKeyRoundTripSpatial(t *testing.T) {
	enc := &BinaryKeyEncoder{}
	id := layer.ID{Name: "elevation", Zoom: 3}
	key := layer.SpatialKey{Col: 7, Row: 42}

	raw := enc.EncodeKey(id, key)
	decoded, err := enc.DecodeKey(layer.SpatialVariant, raw)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
}

func TestEncodeKeyRoundTripSpaceTime(t *testing.T) {
	enc := &BinaryKeyEncoder{}
	id := layer.ID{Name: "temperature", Zoom: 2}
	key := layer.SpaceTimeKey{
		SpatialKey: layer.SpatialKey{Col: 1, Row: 2},
		Instant:    time.Date(2024, 6, 1, 6, 30, 0, 0, time.UTC),
	}

	raw := enc.EncodeKey(id, key)
	decoded, err := enc.DecodeKey(layer.SpaceTimeVariant, raw)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
}

func TestDecodeKeyVariantMismatch(t *testing.T) {
	enc := &BinaryKeyEncoder{}
	id := layer.ID{Name: "l", Zoom: 0}

	spatialRaw := enc.EncodeKey(id, layer.SpatialKey{Col: 1, Row: 1})
	_, err := enc.DecodeKey(layer.SpaceTimeVariant, spatialRaw)
	assert.Error(t, err)

	stRaw := enc.EncodeKey(id, layer.SpaceTimeKey{
		SpatialKey: layer.SpatialKey{Col: 1, Row: 1},
		Instant:    time.Unix(0, 0),
	})
	_, err = enc.DecodeKey(layer.SpatialVariant, stRaw)
	assert.Error(t, err)
}

func TestEncodedKeysSortInGridOrder(t *testing.T) {
	enc := &BinaryKeyEncoder{}
	id := layer.ID{Name: "l", Zoom: 1}

	keys := []layer.SpatialKey{
		{Col: 1, Row: 0},
		{Col: 0, Row: 1},
		{Col: 0, Row: 0},
		{Col: 1, Row: 2},
	}

	raws := make([][]byte, len(keys))
	for i, k := range keys {
		raws[i] = enc.EncodeKey(id, k)
	}
	sort.Slice(raws, func(i, j int) bool { return bytes.Compare(raws[i], raws[j]) < 0 })

	var decoded []layer.SpatialKey
	for _, raw := range raws {
		k, err := enc.DecodeKey(layer.SpatialVariant, raw)
		require.NoError(t, err)
		decoded = append(decoded, k.(layer.SpatialKey))
	}

	// Byte order matches (col, row) order
	assert.Equal(t, []layer.SpatialKey{
		{Col: 0, Row: 0},
		{Col: 0, Row: 1},
		{Col: 1, Row: 0},
		{Col: 1, Row: 2},
	}, decoded)
}

func TestEncodeColRange(t *testing.T) {
	enc := &BinaryKeyEncoder{}
	id := layer.ID{Name: "l", Zoom: 1}

	start, end := enc.EncodeColRange(id, 2, 4)

	inside := enc.EncodeKey(id, layer.SpatialKey{Col: 3, Row: 9})
	below := enc.EncodeKey(id, layer.SpatialKey{Col: 1, Row: 0})
	above := enc.EncodeKey(id, layer.SpatialKey{Col: 5, Row: 0})
	atMax := enc.EncodeKey(id, layer.SpatialKey{Col: 4, Row: 999})

	assert.True(t, bytes.Compare(inside, start) >= 0 && bytes.Compare(inside, end) < 0)
	assert.True(t, bytes.Compare(atMax, start) >= 0 && bytes.Compare(atMax, end) < 0)
	assert.True(t, bytes.Compare(below, start) < 0)
	assert.True(t, bytes.Compare(above, end) >= 0)
}

func TestPrefixesDoNotCollide(t *testing.T) {
	enc := &BinaryKeyEncoder{}

	// "ab"@1 vs "a"@? must not share a prefix thanks to the length field
	a := enc.EncodePrefix(layer.ID{Name: "ab", Zoom: 1})
	b := enc.EncodePrefix(layer.ID{Name: "a", Zoom: 1})
	assert.False(t, bytes.HasPrefix(a, b))

	// Same name, different zoom
	z1 := enc.EncodePrefix(layer.ID{Name: "l", Zoom: 1})
	z2 := enc.EncodePrefix(layer.ID{Name: "l", Zoom: 2})
	assert.NotEqual(t, z1, z2)
}

func TestMetaKeyRoundTrip(t *testing.T) {
	id := layer.ID{Name: "weather", Zoom: 5}

	gotID, tag, err := decodeMetaKey(metaKey(id, headerTag))
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, headerTag, tag)
}

func TestPrefixSuccessor(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x03}, prefixSuccessor([]byte{0x01, 0x02}))
	assert.Equal(t, []byte{0x02}, prefixSuccessor([]byte{0x01, 0xff}))
	assert.Nil(t, prefixSuccessor([]byte{0xff, 0xff}))
}
