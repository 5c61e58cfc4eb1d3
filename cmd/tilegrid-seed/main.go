// tilegrid-seed builds a small demo catalog with one spatial layer and one
// space-time layer, useful for trying out the tilegrid CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-spatial/geom"

	"github.com/tilegrid/tilegrid/layer"
	"github.com/tilegrid/tilegrid/layer/storage"
)

func main() {
	var dbPath string

	flag.StringVar(&dbPath, "db", "tiles.db", "catalog path to create")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-db path]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Build a demo tile catalog.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	catalog, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer catalog.Close()

	if err := seedSpatial(catalog); err != nil {
		log.Fatalf("Failed to seed spatial layer: %v", err)
	}
	if err := seedSpaceTime(catalog); err != nil {
		log.Fatalf("Failed to seed space-time layer: %v", err)
	}

	fmt.Printf("Seeded demo catalog at %s\n", dbPath)
}

// seedSpatial writes an 8x8 grid of elevation tiles over a unit-per-cell
// extent
func seedSpatial(catalog *storage.Catalog) error {
	id := layer.ID{Name: "elevation", Zoom: 3}

	layout := layer.LayoutDefinition{
		Extent:   geom.Extent{0, 0, 8, 8},
		GridCols: 8,
		GridRows: 8,
		TileCols: 16,
		TileRows: 16,
	}

	header := layer.Header{KeyType: "SpatialKey", ValueType: "Tile"}
	md := &layer.SpatialMetadata{
		Layout: layout,
		Bounds: layer.KeyBounds{
			Min: layer.SpatialKey{Col: 0, Row: 0},
			Max: layer.SpatialKey{Col: 7, Row: 7},
		},
	}

	if err := catalog.CreateLayer(id, header, md); err != nil {
		return err
	}

	var entries []storage.TileEntry
	for col := uint32(0); col < 8; col++ {
		for row := uint32(0); row < 8; row++ {
			entries = append(entries, storage.TileEntry{
				Key:  layer.SpatialKey{Col: col, Row: row},
				Tile: rampTile(16, 16, float64(col*8+row)),
			})
		}
	}
	return catalog.WriteTiles(id, entries)
}

// seedSpaceTime writes a 4x4 grid of temperature tiles across three days
func seedSpaceTime(catalog *storage.Catalog) error {
	id := layer.ID{Name: "temperature", Zoom: 2}

	layout := layer.LayoutDefinition{
		Extent:   geom.Extent{-180, -90, 180, 90},
		GridCols: 4,
		GridRows: 4,
		TileCols: 16,
		TileRows: 16,
	}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	header := layer.Header{KeyType: "SpaceTimeKey", ValueType: "Tile"}
	md := &layer.SpaceTimeMetadata{
		SpatialMetadata: layer.SpatialMetadata{
			Layout: layout,
			Bounds: layer.KeyBounds{
				Min: layer.SpatialKey{Col: 0, Row: 0},
				Max: layer.SpatialKey{Col: 3, Row: 3},
			},
		},
		MinTime: start,
		MaxTime: start.AddDate(0, 0, 2),
	}

	if err := catalog.CreateLayer(id, header, md); err != nil {
		return err
	}

	var entries []storage.TileEntry
	for day := 0; day < 3; day++ {
		for col := uint32(0); col < 4; col++ {
			for row := uint32(0); row < 4; row++ {
				entries = append(entries, storage.TileEntry{
					Key: layer.SpaceTimeKey{
						SpatialKey: layer.SpatialKey{Col: col, Row: row},
						Instant:    start.AddDate(0, 0, day),
					},
					Tile: rampTile(16, 16, float64(day*100)),
				})
			}
		}
	}
	return catalog.WriteTiles(id, entries)
}

// rampTile builds a tile whose cells ramp up from a base value
func rampTile(cols, rows uint32, base float64) *layer.Tile {
	t := layer.NewTile(cols, rows)
	for i := range t.Cells {
		t.Cells[i] = base + float64(i)/float64(len(t.Cells))
	}
	return t
}
