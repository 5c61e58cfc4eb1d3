package spatial

import (
	"fmt"

	"github.com/go-spatial/geom"
)

// Envelope computes the bounding extent of a geometry. Unknown geometry
// types are an error; the caller decides whether that is fatal.
func Envelope(g geom.Geometry) (*geom.Extent, error) {
	switch gg := g.(type) {
	case geom.Point:
		return geom.NewExtent([2]float64(gg)), nil

	case geom.MultiPoint:
		return extentOfPoints([][2]float64(gg))

	case geom.LineString:
		return extentOfPoints([][2]float64(gg))

	case geom.MultiLineString:
		var pts [][2]float64
		for _, ls := range gg {
			pts = append(pts, ls...)
		}
		return extentOfPoints(pts)

	case geom.Polygon:
		var pts [][2]float64
		for _, ring := range gg {
			pts = append(pts, ring...)
		}
		return extentOfPoints(pts)

	case geom.MultiPolygon:
		var pts [][2]float64
		for _, poly := range gg {
			for _, ring := range poly {
				pts = append(pts, ring...)
			}
		}
		return extentOfPoints(pts)

	case geom.Collection:
		var result *geom.Extent
		for _, sub := range gg {
			ext, err := Envelope(sub)
			if err != nil {
				return nil, err
			}
			if result == nil {
				result = ext
			} else {
				result = geom.NewExtent(
					[2]float64{result.MinX(), result.MinY()},
					[2]float64{result.MaxX(), result.MaxY()},
					[2]float64{ext.MinX(), ext.MinY()},
					[2]float64{ext.MaxX(), ext.MaxY()},
				)
			}
		}
		if result == nil {
			return nil, fmt.Errorf("empty geometry collection")
		}
		return result, nil

	case geom.Extent:
		return &gg, nil

	case *geom.Extent:
		return gg, nil

	default:
		return nil, fmt.Errorf("unsupported geometry type %T", g)
	}
}

func extentOfPoints(pts [][2]float64) (*geom.Extent, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("empty geometry")
	}
	return geom.NewExtent(pts...), nil
}
