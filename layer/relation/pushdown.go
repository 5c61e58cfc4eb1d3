package relation

import (
	"github.com/go-spatial/geom"

	"github.com/tilegrid/tilegrid/layer/spatial"
	"github.com/tilegrid/tilegrid/layer/storage"
)

// Filter relations the translator recognizes
const (
	RelIntersects = "intersects"
)

// FilterPredicate is an abstract geometric constraint requested against a
// relation column. Predicates are immutable values; the zero geometry is
// never recognized.
type FilterPredicate struct {
	Column   string
	Relation string
	Geometry geom.Geometry
}

// translatePredicate narrows a store query with the native constraint
// equivalent to p. Only "extent intersects <geometry>" is recognized:
// a point geometry becomes a contains-point constraint, anything else its
// bounding envelope as an intersects constraint.
//
// Unrecognized predicates pass through: the query is returned unchanged, no
// error is raised, and the predicate has no effect on the result. Callers
// therefore cannot tell an ignored predicate from one that matched
// everything; rejecting instead was considered and deliberately not done, to
// keep parity with engines that treat unhandled filters as post-scan work.
func translatePredicate(q storage.Query, p FilterPredicate) storage.Query {
	if p.Column != ColExtent || p.Relation != RelIntersects {
		return q
	}

	switch g := p.Geometry.(type) {
	case geom.Point:
		return q.Narrow(spatial.ContainsPoint{Point: g})

	default:
		env, err := spatial.Envelope(p.Geometry)
		if err != nil {
			// Geometry we cannot bound: treat as unrecognized
			return q
		}
		return q.Narrow(spatial.Intersects{Envelope: env})
	}
}
