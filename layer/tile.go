package layer

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Tile is an opaque raster value: a Cols x Rows grid of float64 cells in
// row-major order. Cells equal to NoData (when set) are treated as absent by
// consumers; the adapter itself never interprets cell values.
type Tile struct {
	Cols   uint32
	Rows   uint32
	NoData *float64
	Cells  []float64
}

// NewTile creates an empty tile of the given dimensions
func NewTile(cols, rows uint32) *Tile {
	return &Tile{
		Cols:  cols,
		Rows:  rows,
		Cells: make([]float64, int(cols)*int(rows)),
	}
}

// Get returns the cell at (col, row)
func (t *Tile) Get(col, row uint32) float64 {
	return t.Cells[int(row)*int(t.Cols)+int(col)]
}

// Set assigns the cell at (col, row)
func (t *Tile) Set(col, row uint32, v float64) {
	t.Cells[int(row)*int(t.Cols)+int(col)] = v
}

func (t *Tile) String() string {
	return fmt.Sprintf("Tile(%dx%d)", t.Cols, t.Rows)
}

// Tile wire format, all big-endian:
//
//	cols    uint32
//	rows    uint32
//	flags   uint8   (bit 0: NoData present)
//	noData  float64 (only when flag set)
//	cells   cols*rows x float64

const tileNoDataFlag = 0x01

// Bytes serializes the tile
func (t *Tile) Bytes() []byte {
	size := 4 + 4 + 1 + len(t.Cells)*8
	if t.NoData != nil {
		size += 8
	}
	buf := make([]byte, size)

	binary.BigEndian.PutUint32(buf[0:4], t.Cols)
	binary.BigEndian.PutUint32(buf[4:8], t.Rows)

	off := 9
	if t.NoData != nil {
		buf[8] = tileNoDataFlag
		binary.BigEndian.PutUint64(buf[off:], math.Float64bits(*t.NoData))
		off += 8
	}

	for _, c := range t.Cells {
		binary.BigEndian.PutUint64(buf[off:], math.Float64bits(c))
		off += 8
	}

	return buf
}

// TileFromBytes deserializes a tile produced by Bytes
func TileFromBytes(data []byte) (*Tile, error) {
	if len(data) < 9 {
		return nil, fmt.Errorf("tile data too short: %d bytes", len(data))
	}

	t := &Tile{
		Cols: binary.BigEndian.Uint32(data[0:4]),
		Rows: binary.BigEndian.Uint32(data[4:8]),
	}

	off := 9
	if data[8]&tileNoDataFlag != 0 {
		if len(data) < off+8 {
			return nil, fmt.Errorf("tile data truncated at nodata")
		}
		nd := math.Float64frombits(binary.BigEndian.Uint64(data[off:]))
		t.NoData = &nd
		off += 8
	}

	n := int(t.Cols) * int(t.Rows)
	if len(data) != off+n*8 {
		return nil, fmt.Errorf("tile data length %d does not match %dx%d cells", len(data), t.Cols, t.Rows)
	}

	t.Cells = make([]float64, n)
	for i := 0; i < n; i++ {
		t.Cells[i] = math.Float64frombits(binary.BigEndian.Uint64(data[off:]))
		off += 8
	}

	return t, nil
}
