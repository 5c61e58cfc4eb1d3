package storage

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/tilegrid/tilegrid/layer"
)

// Store key namespaces. A 1-byte prefix separates tile entries from layer
// metadata so each can be range-scanned independently.
const (
	tileNamespace byte = 't'
	metaNamespace byte = 'm'
)

// Metadata record tags, appended after the layer prefix in the meta namespace
const (
	headerTag byte = 'h'
	layoutTag byte = 'l'
)

// KeyEncoder builds and parses store keys for layer entries.
//
// Tile keys are laid out as:
//
//	't' | len(name) uint16 | name | zoom uint32 | col uint32 | row uint32 [| instant int64]
//
// all big-endian, so keys of one layer sort by column, then row, then
// instant, and a column range maps onto a contiguous key range.
type KeyEncoder interface {
	// EncodeKey creates a store key for a layer entry
	EncodeKey(id layer.ID, key layer.Key) []byte

	// DecodeKey extracts the layer key from a store key
	DecodeKey(variant layer.KeyVariant, raw []byte) (layer.Key, error)

	// EncodePrefix creates the common prefix of all of a layer's entries
	EncodePrefix(id layer.ID) []byte

	// EncodeColRange creates start and end keys covering the inclusive
	// column range [minCol, maxCol] of a layer
	EncodeColRange(id layer.ID, minCol, maxCol uint32) (start, end []byte)
}

// BinaryKeyEncoder implements KeyEncoder using raw big-endian binary
type BinaryKeyEncoder struct{}

// EncodePrefix creates the layer prefix: namespace + name + zoom
func (e *BinaryKeyEncoder) EncodePrefix(id layer.ID) []byte {
	buf := make([]byte, 0, 1+2+len(id.Name)+4)
	buf = append(buf, tileNamespace)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(id.Name)))
	buf = append(buf, id.Name...)
	buf = binary.BigEndian.AppendUint32(buf, id.Zoom)
	return buf
}

// EncodeKey creates a store key for a layer entry
func (e *BinaryKeyEncoder) EncodeKey(id layer.ID, key layer.Key) []byte {
	sk := key.SpatialComponent()

	buf := e.EncodePrefix(id)
	buf = binary.BigEndian.AppendUint32(buf, sk.Col)
	buf = binary.BigEndian.AppendUint32(buf, sk.Row)

	if instant, ok := key.TemporalComponent(); ok {
		buf = binary.BigEndian.AppendUint64(buf, uint64(instant.UnixNano()))
	}

	return buf
}

// DecodeKey extracts the layer key from a store key
func (e *BinaryKeyEncoder) DecodeKey(variant layer.KeyVariant, raw []byte) (layer.Key, error) {
	if len(raw) < 3 || raw[0] != tileNamespace {
		return nil, fmt.Errorf("not a tile key: % x", raw)
	}

	nameLen := int(binary.BigEndian.Uint16(raw[1:3]))
	rest := raw[3:]
	if len(rest) < nameLen+4 {
		return nil, fmt.Errorf("tile key too short: % x", raw)
	}
	rest = rest[nameLen+4:] // skip name and zoom

	if len(rest) < 8 {
		return nil, fmt.Errorf("tile key missing spatial component: % x", raw)
	}
	sk := layer.SpatialKey{
		Col: binary.BigEndian.Uint32(rest[0:4]),
		Row: binary.BigEndian.Uint32(rest[4:8]),
	}
	rest = rest[8:]

	switch variant {
	case layer.SpatialVariant:
		if len(rest) != 0 {
			return nil, fmt.Errorf("trailing bytes on spatial key: % x", raw)
		}
		return sk, nil

	case layer.SpaceTimeVariant:
		if len(rest) != 8 {
			return nil, fmt.Errorf("space-time key missing instant: % x", raw)
		}
		nanos := int64(binary.BigEndian.Uint64(rest))
		return layer.SpaceTimeKey{
			SpatialKey: sk,
			Instant:    time.Unix(0, nanos).UTC(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown key variant: %v", variant)
	}
}

// EncodeColRange creates start and end keys covering [minCol, maxCol]
func (e *BinaryKeyEncoder) EncodeColRange(id layer.ID, minCol, maxCol uint32) (start, end []byte) {
	prefix := e.EncodePrefix(id)

	start = binary.BigEndian.AppendUint32(append([]byte{}, prefix...), minCol)

	if maxCol == math.MaxUint32 {
		end = prefixSuccessor(prefix)
	} else {
		end = binary.BigEndian.AppendUint32(append([]byte{}, prefix...), maxCol+1)
	}
	return start, end
}

// metaKey creates a metadata record key for a layer
func metaKey(id layer.ID, tag byte) []byte {
	buf := make([]byte, 0, 1+2+len(id.Name)+4+1)
	buf = append(buf, metaNamespace)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(id.Name)))
	buf = append(buf, id.Name...)
	buf = binary.BigEndian.AppendUint32(buf, id.Zoom)
	buf = append(buf, tag)
	return buf
}

// decodeMetaKey parses a metadata record key back into its ID and tag
func decodeMetaKey(raw []byte) (layer.ID, byte, error) {
	if len(raw) < 3 || raw[0] != metaNamespace {
		return layer.ID{}, 0, fmt.Errorf("not a meta key: % x", raw)
	}
	nameLen := int(binary.BigEndian.Uint16(raw[1:3]))
	rest := raw[3:]
	if len(rest) != nameLen+4+1 {
		return layer.ID{}, 0, fmt.Errorf("malformed meta key: % x", raw)
	}
	id := layer.ID{
		Name: string(rest[:nameLen]),
		Zoom: binary.BigEndian.Uint32(rest[nameLen : nameLen+4]),
	}
	return id, rest[nameLen+4], nil
}

// prefixSuccessor returns the smallest key greater than every key with the
// given prefix, or nil when no such key exists
func prefixSuccessor(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
