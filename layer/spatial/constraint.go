// Package spatial defines the native query constraints the layer store can
// evaluate during a scan. Constraints are pushed down from relational filter
// predicates so that candidate keys are rejected before their tile values are
// fetched.
package spatial

import (
	"fmt"

	"github.com/go-spatial/geom"
)

// Constraint is a predicate over a key's bounding box. A query narrowed by a
// constraint yields only entries whose key extent satisfies it.
type Constraint interface {
	// Evaluate checks if a key extent satisfies this constraint
	Evaluate(ext *geom.Extent) bool

	// Bounds returns the constraint's bounding extent, or nil when the
	// constraint cannot bound the candidate key range
	Bounds() *geom.Extent

	// String returns a human-readable description
	String() string
}

// ContainsPoint matches extents containing a single point. Edges are
// inclusive: a point on a tile boundary matches the tiles on both sides.
type ContainsPoint struct {
	Point geom.Point
}

// Evaluate checks if the extent contains the point
func (c ContainsPoint) Evaluate(ext *geom.Extent) bool {
	return c.Point.X() >= ext.MinX() && c.Point.X() <= ext.MaxX() &&
		c.Point.Y() >= ext.MinY() && c.Point.Y() <= ext.MaxY()
}

// Bounds returns the degenerate extent at the point
func (c ContainsPoint) Bounds() *geom.Extent {
	return geom.NewExtent([2]float64(c.Point))
}

func (c ContainsPoint) String() string {
	return fmt.Sprintf("contains(%v, %v)", c.Point.X(), c.Point.Y())
}

// Intersects matches extents overlapping a bounding envelope. Touching
// edges count as intersecting.
type Intersects struct {
	Envelope *geom.Extent
}

// Evaluate checks if the extent overlaps the envelope
func (c Intersects) Evaluate(ext *geom.Extent) bool {
	return ext.MinX() <= c.Envelope.MaxX() && ext.MaxX() >= c.Envelope.MinX() &&
		ext.MinY() <= c.Envelope.MaxY() && ext.MaxY() >= c.Envelope.MinY()
}

// Bounds returns the envelope itself
func (c Intersects) Bounds() *geom.Extent {
	return c.Envelope
}

func (c Intersects) String() string {
	return fmt.Sprintf("intersects[%v %v %v %v]",
		c.Envelope.MinX(), c.Envelope.MinY(), c.Envelope.MaxX(), c.Envelope.MaxY())
}
