// Package storage provides the BadgerDB-backed layer catalog: persistent
// layer headers, layout metadata, and keyed tile entries, plus the query
// machinery the relational adapter scans through.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tilegrid/tilegrid/layer"
)

// ErrLayerNotFound is returned when a layer ID has no stored header
var ErrLayerNotFound = errors.New("layer not found")

// Catalog is a BadgerDB-backed layer store. It serves both collaborator
// roles the relational adapter depends on: the metadata store (headers and
// layout metadata) and the layer reader (keyed tile scans).
type Catalog struct {
	db      *badger.DB
	encoder KeyEncoder
}

// Open opens or creates a catalog at the given path
func Open(path string) (*Catalog, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable BadgerDB logs

	// Read-heavy workload: tiles are written once and scanned many times
	opts.BlockCacheSize = 128 << 20
	opts.IndexCacheSize = 64 << 20
	opts.DetectConflicts = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &Catalog{
		db:      db,
		encoder: &BinaryKeyEncoder{},
	}, nil
}

// Close closes the underlying store
func (c *Catalog) Close() error {
	return c.db.Close()
}

// CreateLayer writes a layer's header and layout metadata. Existing records
// for the same ID are overwritten.
func (c *Catalog) CreateLayer(id layer.ID, header layer.Header, md layer.Metadata) error {
	headerBytes, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}
	layoutBytes, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("failed to encode layout metadata: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(metaKey(id, headerTag), headerBytes); err != nil {
			return err
		}
		return txn.Set(metaKey(id, layoutTag), layoutBytes)
	})
}

// ReadHeader reads a layer's declared key/value type names
func (c *Catalog) ReadHeader(id layer.ID) (layer.Header, error) {
	var header layer.Header
	err := c.readMetaRecord(id, headerTag, &header)
	return header, err
}

// ReadMetadata reads a layer's layout metadata. The result is variant-typed:
// *layer.SpatialMetadata or *layer.SpaceTimeMetadata depending on variant.
func (c *Catalog) ReadMetadata(id layer.ID, variant layer.KeyVariant) (layer.Metadata, error) {
	switch variant {
	case layer.SpatialVariant:
		md := &layer.SpatialMetadata{}
		if err := c.readMetaRecord(id, layoutTag, md); err != nil {
			return nil, err
		}
		return md, nil

	case layer.SpaceTimeVariant:
		md := &layer.SpaceTimeMetadata{}
		if err := c.readMetaRecord(id, layoutTag, md); err != nil {
			return nil, err
		}
		return md, nil

	default:
		return nil, fmt.Errorf("unknown key variant: %v", variant)
	}
}

func (c *Catalog) readMetaRecord(id layer.ID, tag byte, out interface{}) error {
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(id, tag))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	return err
}

// Layers lists the IDs of all stored layers in key order
func (c *Catalog) Layers() ([]layer.ID, error) {
	var ids []layer.ID

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte{metaNamespace}

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			id, tag, err := decodeMetaKey(it.Item().Key())
			if err != nil {
				return err
			}
			if tag == headerTag {
				ids = append(ids, id)
			}
		}
		return nil
	})

	return ids, err
}

// TileEntry pairs a layer key with its tile value
type TileEntry struct {
	Key  layer.Key
	Tile *layer.Tile
}

// WriteTiles writes tile entries to a layer in a single transaction
func (c *Catalog) WriteTiles(id layer.ID, entries []TileEntry) error {
	return c.db.Update(func(txn *badger.Txn) error {
		for _, e := range entries {
			key := c.encoder.EncodeKey(id, e.Key)
			if err := txn.Set(key, e.Tile.Bytes()); err != nil {
				return fmt.Errorf("failed to write tile %s: %w", e.Key, err)
			}
		}
		return nil
	})
}

// OpenQuery starts a query over a layer's entries. The returned query is
// unnarrowed: executing it scans every entry of the layer.
func (c *Catalog) OpenQuery(id layer.ID, keyVariant layer.KeyVariant, valueVariant layer.ValueVariant) Query {
	return Query{
		catalog:      c,
		id:           id,
		keyVariant:   keyVariant,
		valueVariant: valueVariant,
	}
}
