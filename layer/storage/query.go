package storage

import (
	"bytes"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-spatial/geom"

	"github.com/tilegrid/tilegrid/layer"
	"github.com/tilegrid/tilegrid/layer/spatial"
)

// Query is an immutable description of a layer scan. Narrow returns a new
// query; a Query value is never mutated, so queries can be shared and
// narrowed independently.
type Query struct {
	catalog      *Catalog
	id           layer.ID
	keyVariant   layer.KeyVariant
	valueVariant layer.ValueVariant
	constraints  []spatial.Constraint
}

// Narrow returns a new query that additionally requires con to hold.
// Narrowing is monotonic: the result set only ever shrinks.
func (q Query) Narrow(con spatial.Constraint) Query {
	cons := make([]spatial.Constraint, len(q.constraints), len(q.constraints)+1)
	copy(cons, q.constraints)
	q.constraints = append(cons, con)
	return q
}

// Constraints returns the constraints applied so far
func (q Query) Constraints() []spatial.Constraint {
	return q.constraints
}

// Execute runs the query and returns a lazy iterator of (key, tile) entries.
// Constraint bounds narrow the scanned key range to the covered grid columns
// before per-key evaluation; keys are rejected before their values are read.
func (q Query) Execute() (*ResultIterator, error) {
	md, err := q.catalog.ReadMetadata(q.id, q.keyVariant)
	if err != nil {
		return nil, err
	}

	enc := q.catalog.encoder

	start := enc.EncodePrefix(q.id)
	end := prefixSuccessor(start)
	var keyBounds *layer.KeyBounds

	if window := constraintWindow(q.constraints); window != nil {
		gb, ok := md.Definition().GridBounds(window)
		if !ok {
			// Window lies outside the layer: empty result
			return &ResultIterator{done: true}, nil
		}
		start, end = enc.EncodeColRange(q.id, gb.Min.Col, gb.Max.Col)
		keyBounds = &gb
	}

	txn := q.catalog.db.NewTransaction(false)

	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 128
	opts.PrefetchValues = true

	it := txn.NewIterator(opts)

	return &ResultIterator{
		txn:         txn,
		it:          it,
		start:       start,
		end:         end,
		encoder:     enc,
		variant:     q.keyVariant,
		md:          md,
		constraints: q.constraints,
		keyBounds:   keyBounds,
	}, nil
}

// constraintWindow intersects the bounding extents of all constraints that
// can provide one. nil means the candidate key range cannot be narrowed.
func constraintWindow(cons []spatial.Constraint) *geom.Extent {
	var window *geom.Extent
	for _, con := range cons {
		b := con.Bounds()
		if b == nil {
			continue
		}
		if window == nil {
			window = b
			continue
		}
		window = geom.NewExtent(
			[2]float64{maxf(window.MinX(), b.MinX()), maxf(window.MinY(), b.MinY())},
			[2]float64{minf(window.MaxX(), b.MaxX()), minf(window.MaxY(), b.MaxY())},
		)
	}
	return window
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ResultIterator streams (key, tile) entries for an executed query.
// It is single-consumer; Close releases the underlying transaction.
type ResultIterator struct {
	txn         *badger.Txn
	it          *badger.Iterator
	start       []byte
	end         []byte
	encoder     KeyEncoder
	variant     layer.KeyVariant
	md          layer.Metadata
	constraints []spatial.Constraint
	keyBounds   *layer.KeyBounds

	valid bool
	done  bool
	key   layer.Key
	tile  *layer.Tile
	err   error
}

// Next advances to the next entry satisfying every constraint. It returns
// false when the scan is exhausted or failed; check Err afterwards.
func (i *ResultIterator) Next() bool {
	if i.done || i.err != nil {
		return false
	}

	for {
		if !i.valid {
			// First call - seek to start
			i.it.Seek(i.start)
			i.valid = true
		} else {
			i.it.Next()
		}

		if !i.it.Valid() {
			i.done = true
			return false
		}

		raw := i.it.Item().Key()
		if i.end != nil && bytes.Compare(raw, i.end) >= 0 {
			i.done = true
			return false
		}

		key, err := i.encoder.DecodeKey(i.variant, raw)
		if err != nil {
			i.err = err
			return false
		}

		if i.keyBounds != nil && !i.keyBounds.Contains(key.SpatialComponent()) {
			continue
		}

		if !i.evaluate(key) {
			continue
		}

		var tile *layer.Tile
		err = i.it.Item().Value(func(val []byte) error {
			t, terr := layer.TileFromBytes(val)
			if terr != nil {
				return terr
			}
			tile = t
			return nil
		})
		if err != nil {
			i.err = err
			return false
		}

		i.key = key
		i.tile = tile
		return true
	}
}

// evaluate applies every constraint to the key's extent
func (i *ResultIterator) evaluate(key layer.Key) bool {
	if len(i.constraints) == 0 {
		return true
	}
	ext := i.md.KeyExtent(key)
	for _, con := range i.constraints {
		if !con.Evaluate(ext) {
			return false
		}
	}
	return true
}

// Key returns the current entry's layer key
func (i *ResultIterator) Key() layer.Key {
	return i.key
}

// Tile returns the current entry's tile value
func (i *ResultIterator) Tile() *layer.Tile {
	return i.tile
}

// Err returns the first error encountered during iteration
func (i *ResultIterator) Err() error {
	return i.err
}

// Close releases the iterator's resources
func (i *ResultIterator) Close() error {
	if i.it != nil {
		i.it.Close()
	}
	if i.txn != nil {
		i.txn.Discard()
	}
	return nil
}
