package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportDataset(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "carbot.db")
	src := writeDataset(t, tinyMovies)

	info, err := ImportDataset(dbPath, src)
	require.NoError(t, err)
	assert.Equal(t, "movies", info.Catalog)
	assert.Equal(t, 1, info.Records)
	assert.Equal(t, src, info.Source)
	assert.NotZero(t, info.ImportedAt)
}

func TestImportDataset_RejectsInvalid(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "carbot.db")

	// Schema violation: year must be an integer.
	_, err := ImportDataset(dbPath, writeDataset(t, `catalog: movies
records:
  - ["jaws", "steven spielberg", "1975", []]
`))
	require.Error(t, err)

	// Valid document, but no catalog can index it.
	_, err = ImportDataset(dbPath, writeDataset(t, `catalog: boats
records:
  - ["titanic", "1", 1912, []]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown catalog")

	// Cars records need at least one top seller.
	_, err = ImportDataset(dbPath, writeDataset(t, `catalog: cars
records:
  - ["india", "1", 2023, []]
`))
	require.Error(t, err)

	list, err := ListDatasets(dbPath)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListAndRemoveDatasets(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "carbot.db")

	list, err := ListDatasets(dbPath)
	require.NoError(t, err)
	assert.Empty(t, list, "missing database holds no datasets")

	_, err = ImportDataset(dbPath, writeDataset(t, tinyMovies))
	require.NoError(t, err)
	_, err = ImportDataset(dbPath, writeDataset(t, `catalog: cars
records:
  - ["india", "1", 2023, ["maruti suzuki swift"]]
`))
	require.NoError(t, err)

	list, err = ListDatasets(dbPath)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "cars", list[0].Catalog)
	assert.Equal(t, "movies", list[1].Catalog)

	require.NoError(t, RemoveDataset(dbPath, "cars"))
	require.NoError(t, RemoveDataset(dbPath, "cars"))

	list, err = ListDatasets(dbPath)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "movies", list[0].Catalog)
}

func TestCatalogs(t *testing.T) {
	assert.Equal(t, []string{"cars", "movies"}, Catalogs())
}
