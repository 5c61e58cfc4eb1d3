// Package relation adapts a stored tile layer into a column-pruned,
// predicate-filterable tabular relation. It resolves the layer's key and
// value representations once, derives the output schema from that
// resolution, pushes recognized geometry filters down into native store
// constraints, and projects scan results into rows carrying only the
// requested columns.
package relation

import (
	"fmt"
	"sync"

	"github.com/fatih/color"

	"github.com/tilegrid/tilegrid/layer"
	"github.com/tilegrid/tilegrid/layer/storage"
)

// defaultSizeEstimate is reported by EstimatedSizeBytes. No estimate is
// computed from layer metadata; consumers treat the value as "unknown, plan
// conservatively".
const defaultSizeEstimate int64 = 1 << 30

// Relation is an immutable view of one layer as a table. Adding a filter
// returns a new Relation; existing values are never mutated, so relations
// can be shared across concurrent scans without synchronization.
type Relation struct {
	catalog *storage.Catalog
	id      layer.ID
	filters []FilterPredicate

	// res is shared between a relation and its filtered derivations:
	// resolution depends only on catalog and id, which filtering preserves
	res *resolution
}

// resolution caches everything derived from the layer header: the variants,
// the layout metadata, and the schema. It is populated at most once per
// relation lineage, on first access, and is safe under concurrent first
// access.
type resolution struct {
	once         sync.Once
	keyVariant   layer.KeyVariant
	valueVariant layer.ValueVariant
	md           layer.Metadata
	schema       Schema
	err          error
}

// New creates a relation over the identified layer
func New(catalog *storage.Catalog, id layer.ID) *Relation {
	return &Relation{
		catalog: catalog,
		id:      id,
		res:     &resolution{},
	}
}

// NewWithFilters creates a relation with an initial ordered filter list
func NewWithFilters(catalog *storage.Catalog, id layer.ID, filters []FilterPredicate) *Relation {
	r := New(catalog, id)
	r.filters = append([]FilterPredicate{}, filters...)
	return r
}

// ID returns the layer identifier
func (r *Relation) ID() layer.ID {
	return r.id
}

// Filters returns a copy of the relation's ordered filter list
func (r *Relation) Filters() []FilterPredicate {
	return append([]FilterPredicate{}, r.filters...)
}

// WithFilter returns a new relation with p appended to the filter list.
// The receiver is unchanged.
func (r *Relation) WithFilter(p FilterPredicate) *Relation {
	filters := make([]FilterPredicate, len(r.filters), len(r.filters)+1)
	copy(filters, r.filters)

	return &Relation{
		catalog: r.catalog,
		id:      r.id,
		filters: append(filters, p),
		res:     r.res,
	}
}

// Schema returns the relation's ordered column schema. The first call reads
// the layer header and layout metadata from the store; later calls reuse the
// cached resolution.
func (r *Relation) Schema() (Schema, error) {
	res, err := r.resolve()
	if err != nil {
		return nil, err
	}
	return res.schema, nil
}

// KeyVariant returns the resolved key variant of the layer
func (r *Relation) KeyVariant() (layer.KeyVariant, error) {
	res, err := r.resolve()
	if err != nil {
		return 0, err
	}
	return res.keyVariant, nil
}

// EstimatedSizeBytes returns a fixed default size estimate
func (r *Relation) EstimatedSizeBytes() int64 {
	return defaultSizeEstimate
}

func (r *Relation) resolve() (*resolution, error) {
	res := r.res
	res.once.Do(func() {
		header, err := r.catalog.ReadHeader(r.id)
		if err != nil {
			res.err = err
			return
		}

		keyVariant, valueVariant, err := ResolveVariants(header)
		if err != nil {
			res.err = err
			return
		}

		md, err := r.catalog.ReadMetadata(r.id, keyVariant)
		if err != nil {
			res.err = err
			return
		}

		res.keyVariant = keyVariant
		res.valueVariant = valueVariant
		res.md = md
		res.schema = BuildSchema(keyVariant, valueVariant)
	})

	return res, res.err
}

// String returns a compact colored representation for logging
func (r *Relation) String() string {
	return fmt.Sprintf("%s%s%s%s%s",
		color.BlueString("Relation("),
		color.CyanString(r.id.String()),
		color.BlueString(", "),
		color.YellowString("%d filters", len(r.filters)),
		color.BlueString(")"))
}
