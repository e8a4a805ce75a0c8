package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/corey/carbot/data"
	"github.com/corey/carbot/internal/adapters/bbolt"
	"github.com/corey/carbot/internal/adapters/yamlsource"
	"github.com/corey/carbot/internal/ports"
)

// openDataset resolves the dataset for cfg. A bbolt database takes priority,
// then an external YAML file, then the bundled data. When the dataset comes
// from bbolt the read-only store is returned too; the caller closes it.
func openDataset(cfg Config) (*ports.Dataset, *bbolt.Store, error) {
	switch {
	case cfg.DBPath != "":
		store, err := bbolt.NewReadOnlyStore(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		ds, err := store.LoadDataset(cfg.Catalog)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("load dataset: %w", err)
		}
		if ds == nil {
			store.Close()
			return nil, nil, fmt.Errorf("no %s dataset in %s (import one with: carbot load <file.yaml>)", cfg.Catalog, cfg.DBPath)
		}
		return ds, store, nil

	case cfg.DatasetPath != "":
		ds, err := yamlsource.Load(cfg.DatasetPath)
		if err != nil {
			return nil, nil, err
		}
		if ds.Catalog != cfg.Catalog {
			return nil, nil, fmt.Errorf("%s holds a %s dataset, want %s", cfg.DatasetPath, ds.Catalog, cfg.Catalog)
		}
		return ds, nil, nil

	default:
		ds, err := yamlsource.LoadEmbedded(data.FS, cfg.Catalog)
		if err != nil {
			return nil, nil, err
		}
		return ds, nil, nil
	}
}

// ImportDataset validates the YAML file at path, checks that its catalog can
// index it, and stores it in the database at dbPath, replacing any previous
// dataset of the same catalog.
func ImportDataset(dbPath, path string) (ports.DatasetInfo, error) {
	ds, err := yamlsource.Load(path)
	if err != nil {
		return ports.DatasetInfo{}, err
	}
	if _, _, err := buildRules(ds); err != nil {
		return ports.DatasetInfo{}, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return ports.DatasetInfo{}, fmt.Errorf("create db dir: %w", err)
	}
	store, err := bbolt.NewStore(dbPath)
	if err != nil {
		return ports.DatasetInfo{}, fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	return saveDataset(store, ds)
}

// saveDataset stores ds and reads back its summary.
func saveDataset(store ports.Storage, ds *ports.Dataset) (ports.DatasetInfo, error) {
	if err := store.SaveDataset(ds); err != nil {
		return ports.DatasetInfo{}, fmt.Errorf("save dataset: %w", err)
	}
	infos, err := store.ListDatasets()
	if err != nil {
		return ports.DatasetInfo{}, fmt.Errorf("list datasets: %w", err)
	}
	for _, info := range infos {
		if info.Catalog == ds.Catalog {
			return info, nil
		}
	}
	return ports.DatasetInfo{}, fmt.Errorf("dataset %s missing after save", ds.Catalog)
}

// ListDatasets returns the datasets stored at dbPath, sorted by catalog.
// A database that does not exist yet holds no datasets.
func ListDatasets(dbPath string) ([]ports.DatasetInfo, error) {
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	store, err := bbolt.NewReadOnlyStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	return store.ListDatasets()
}

// RemoveDataset deletes catalog's dataset from dbPath. Removing a missing
// dataset is not an error.
func RemoveDataset(dbPath, catalog string) error {
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	store, err := bbolt.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	return store.DeleteDataset(catalog)
}
