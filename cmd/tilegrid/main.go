package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-spatial/geom"

	"github.com/tilegrid/tilegrid/layer"
	"github.com/tilegrid/tilegrid/layer/relation"
	"github.com/tilegrid/tilegrid/layer/storage"
)

func main() {
	var dbPath string
	var layerName string
	var zoom uint
	var showSchema bool
	var columnsArg string
	var bboxArg string
	var pointArg string
	var limit int

	flag.StringVar(&dbPath, "db", "", "catalog path")
	flag.StringVar(&layerName, "layer", "", "layer name")
	flag.UintVar(&zoom, "zoom", 0, "layer zoom level")
	flag.BoolVar(&showSchema, "schema", false, "print the layer schema and exit")
	flag.StringVar(&columnsArg, "columns", "", "comma-separated columns to scan (default: all)")
	flag.StringVar(&bboxArg, "bbox", "", "filter: extent intersects minx,miny,maxx,maxy")
	flag.StringVar(&pointArg, "point", "", "filter: extent intersects x,y")
	flag.IntVar(&limit, "limit", 20, "maximum rows to print (0 = unlimited)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -db <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Inspect and scan tile layers as relations.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -db tiles.db                                  # List layers\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db tiles.db -layer weather -zoom 4 -schema   # Print schema\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db tiles.db -layer weather -zoom 4 -columns spatialKey,extent\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db tiles.db -layer weather -zoom 4 -point 0.5,0.5\n", os.Args[0])
	}
	flag.Parse()

	if dbPath == "" && flag.NArg() > 0 {
		dbPath = flag.Arg(0)
	}
	if dbPath == "" {
		flag.Usage()
		os.Exit(1)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		log.Fatalf("Catalog does not exist: %s", dbPath)
	}

	catalog, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer catalog.Close()

	if layerName == "" {
		listLayers(catalog)
		return
	}

	rel := relation.New(catalog, layer.ID{Name: layerName, Zoom: uint32(zoom)})

	schema, err := rel.Schema()
	if err != nil {
		log.Fatalf("Failed to resolve layer: %v", err)
	}

	if showSchema {
		fmt.Println(color.GreenString("Schema for %s:", rel.ID()))
		fmt.Println(schema.Table())
		return
	}

	for _, pred := range parseFilters(bboxArg, pointArg) {
		rel = rel.WithFilter(pred)
	}

	columns := schema.Names()
	if columnsArg != "" {
		columns = strings.Split(columnsArg, ",")
	}

	runScan(rel, columns, limit)
}

func listLayers(catalog *storage.Catalog) {
	ids, err := catalog.Layers()
	if err != nil {
		log.Fatalf("Failed to list layers: %v", err)
	}
	if len(ids) == 0 {
		fmt.Println("No layers in catalog")
		return
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}

func parseFilters(bboxArg, pointArg string) []relation.FilterPredicate {
	var preds []relation.FilterPredicate

	if bboxArg != "" {
		parts := parseFloats(bboxArg, 4, "bbox")
		preds = append(preds, relation.FilterPredicate{
			Column:   relation.ColExtent,
			Relation: relation.RelIntersects,
			Geometry: geom.NewExtent(
				[2]float64{parts[0], parts[1]},
				[2]float64{parts[2], parts[3]},
			),
		})
	}

	if pointArg != "" {
		parts := parseFloats(pointArg, 2, "point")
		preds = append(preds, relation.FilterPredicate{
			Column:   relation.ColExtent,
			Relation: relation.RelIntersects,
			Geometry: geom.Point{parts[0], parts[1]},
		})
	}

	return preds
}

func parseFloats(arg string, n int, name string) []float64 {
	parts := strings.Split(arg, ",")
	if len(parts) != n {
		log.Fatalf("Expected %d comma-separated values for -%s, got %q", n, name, arg)
	}
	vals := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			log.Fatalf("Invalid -%s value %q: %v", name, p, err)
		}
		vals[i] = v
	}
	return vals
}

func runScan(rel *relation.Relation, columns []string, limit int) {
	it, err := rel.Scan(columns)
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
	defer it.Close()

	var rows []relation.Row
	truncated := false
	for it.Next() {
		if limit > 0 && len(rows) >= limit {
			truncated = true
			break
		}
		rows = append(rows, it.Row())
	}
	if err := it.Err(); err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	fmt.Println(rel)
	fmt.Println(relation.FormatRows(columns, rows))
	if truncated {
		fmt.Println(color.YellowString("(output truncated at %d rows)", limit))
	}
}
