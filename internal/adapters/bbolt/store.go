// Package bbolt implements the ports.Storage interface using bbolt (embedded B+ tree).
// Each catalog gets its own top-level bucket holding a JSON-serialized record
// list and a small metadata blob. Writes are transactional: a crash mid-write
// cannot corrupt previously committed data.
package bbolt

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/carbot/internal/ports"
)

// Bucket keys
var (
	keyRecords = []byte("records")
	keyMeta    = []byte("meta")
)

var _ ports.Storage = (*Store)(nil)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// NewReadOnlyStore opens an existing database without taking the write lock,
// so several readers (the daemon and one-shot asks) can share it.
func NewReadOnlyStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0400, &bolt.Options{Timeout: 1 * time.Second, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDataset persists a full dataset under ds.Catalog.
func (s *Store) SaveDataset(ds *ports.Dataset) error {
	if ds == nil {
		return fmt.Errorf("nil dataset")
	}
	if ds.Catalog == "" {
		return fmt.Errorf("dataset has no catalog name")
	}

	recsJSON, err := json.Marshal(ds.Records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	metaJSON, err := json.Marshal(ports.DatasetInfo{
		Catalog:    ds.Catalog,
		Records:    len(ds.Records),
		Source:     ds.Source,
		ImportedAt: s.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(ds.Catalog))
		if err != nil {
			return err
		}
		if err := b.Put(keyRecords, recsJSON); err != nil {
			return err
		}
		return b.Put(keyMeta, metaJSON)
	})
}

// LoadDataset retrieves the dataset stored for a catalog.
// Returns nil, nil if nothing was imported for it.
func (s *Store) LoadDataset(catalog string) (*ports.Dataset, error) {
	var recsJSON, metaJSON []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(catalog))
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get(keyRecords); v != nil {
			recsJSON = make([]byte, len(v))
			copy(recsJSON, v)
		}
		if v := b.Get(keyMeta); v != nil {
			metaJSON = make([]byte, len(v))
			copy(metaJSON, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if recsJSON == nil {
		return nil, nil
	}

	ds := &ports.Dataset{Catalog: catalog}
	if err := json.Unmarshal(recsJSON, &ds.Records); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	if metaJSON != nil {
		var info ports.DatasetInfo
		if err := json.Unmarshal(metaJSON, &info); err != nil {
			return nil, fmt.Errorf("unmarshal meta: %w", err)
		}
		ds.Source = info.Source
	}
	return ds, nil
}

// ListDatasets returns a summary of every stored dataset, sorted by catalog.
func (s *Store) ListDatasets() ([]ports.DatasetInfo, error) {
	var out []ports.DatasetInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
			info := ports.DatasetInfo{Catalog: string(name)}
			if v := b.Get(keyMeta); v != nil {
				if err := json.Unmarshal(v, &info); err != nil {
					return fmt.Errorf("unmarshal meta %q: %w", name, err)
				}
			}
			out = append(out, info)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Catalog < out[j].Catalog })
	return out, nil
}

// DeleteDataset removes a catalog's dataset.
// Idempotent: deleting a nonexistent catalog is not an error.
func (s *Store) DeleteDataset(catalog string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(catalog))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil // idempotent
		}
		return err
	})
}
