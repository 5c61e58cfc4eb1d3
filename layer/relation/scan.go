package relation

import (
	"fmt"

	"github.com/tilegrid/tilegrid/layer"
	"github.com/tilegrid/tilegrid/layer/storage"
)

// Row is an ordered sequence of values. Its length and order exactly match
// the column subset requested by the scan that produced it.
type Row []interface{}

// Scan executes the relation over the requested columns and returns a lazy
// row iterator. Column names are resolved against the schema before the
// store is touched; an absent name fails with ErrUnknownColumn. The
// relation's filters are folded through the predicate translator, each
// recognized one narrowing the store query.
func (r *Relation) Scan(columns []string) (*RowIterator, error) {
	res, err := r.resolve()
	if err != nil {
		return nil, err
	}

	indices := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := res.schema.Index(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		indices[i] = idx
	}

	q := r.catalog.OpenQuery(r.id, res.keyVariant, res.valueVariant)
	for _, p := range r.filters {
		q = translatePredicate(q, p)
	}

	inner, err := q.Execute()
	if err != nil {
		return nil, err
	}

	return &RowIterator{
		inner:   inner,
		md:      res.md,
		schema:  res.schema,
		indices: indices,
	}, nil
}

// RowIterator streams projected rows out of a scan. Derived column values
// are computed per entry, and only for the requested columns.
type RowIterator struct {
	inner   *storage.ResultIterator
	md      layer.Metadata
	schema  Schema
	indices []int
	current Row
}

// Next advances to the next row
func (it *RowIterator) Next() bool {
	if !it.inner.Next() {
		return false
	}

	key := it.inner.Key()

	row := make(Row, len(it.indices))
	for i, idx := range it.indices {
		switch it.schema[idx].Type {
		case SpatialKeyColumn:
			row[i] = key.SpatialComponent()
		case TemporalKeyColumn:
			instant, _ := key.TemporalComponent()
			row[i] = instant
		case ExtentColumn:
			row[i] = it.md.KeyExtent(key)
		case TileColumn:
			row[i] = it.inner.Tile()
		}
	}

	it.current = row
	return true
}

// Row returns the current row
func (it *RowIterator) Row() Row {
	return it.current
}

// Err returns the first error encountered during iteration
func (it *RowIterator) Err() error {
	return it.inner.Err()
}

// Close releases the underlying store iterator
func (it *RowIterator) Close() error {
	return it.inner.Close()
}
