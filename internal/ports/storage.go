// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// Storage persists imported datasets to durable storage.
// The backing store (bbolt) is catalog-scoped: each catalog name gets its own
// namespace. Concurrent reads are safe; writes are serialized by the adapter.
//
// Crash safety: SaveDataset must be transactional. A crash mid-write must not
// corrupt a previously committed dataset.
type Storage interface {
	// SaveDataset persists a full dataset under ds.Catalog.
	// Overwrites any prior dataset for that catalog.
	SaveDataset(ds *Dataset) error

	// LoadDataset retrieves the dataset stored for a catalog.
	// Returns nil, nil if nothing was imported for it.
	LoadDataset(catalog string) (*Dataset, error)

	// ListDatasets returns a summary of every stored dataset, sorted by catalog.
	ListDatasets() ([]DatasetInfo, error)

	// DeleteDataset removes a catalog's dataset.
	// Idempotent: deleting a nonexistent catalog is not an error.
	DeleteDataset(catalog string) error
}

// DatasetInfo summarizes a stored dataset without decoding its records.
type DatasetInfo struct {
	Catalog    string `json:"catalog"`
	Records    int    `json:"records"`
	Source     string `json:"source"`
	ImportedAt int64  `json:"imported_at"` // unix seconds
}
