package yamlsource

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/corey/carbot/data"
	"github.com/corey/carbot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// YAML dataset source: positional records, schema validation, bundled data
// =============================================================================

const validDoc = `
catalog: movies
fields: [title, director, year, actors]
records:
  - ["jaws", "steven spielberg", 1975, ["roy scheider", "robert shaw"]]
  - ["metropolis", "fritz lang", 1927, []]
`

func TestParse_Valid(t *testing.T) {
	ds, err := Parse([]byte(validDoc), "inline")
	require.NoError(t, err)

	assert.Equal(t, "movies", ds.Catalog)
	assert.Equal(t, "inline", ds.Source)
	assert.Equal(t, []ports.Record{
		{Name: "jaws", Label: "steven spielberg", Year: 1975, Items: []string{"roy scheider", "robert shaw"}},
		{Name: "metropolis", Label: "fritz lang", Year: 1927, Items: []string{}},
	}, ds.Records)
}

func TestParse_FieldsOptional(t *testing.T) {
	ds, err := Parse([]byte("catalog: cars\nrecords:\n  - [japan, \"12\", 2023, [toyota yaris]]\n"), "inline")
	require.NoError(t, err)
	require.Len(t, ds.Records, 1)
	assert.Equal(t, "12", ds.Records[0].Label)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := map[string]string{
		"missing catalog":   "records: []\n",
		"missing records":   "catalog: movies\n",
		"short record":      "catalog: movies\nrecords:\n  - [jaws, spielberg, 1975]\n",
		"long record":       "catalog: movies\nrecords:\n  - [jaws, spielberg, 1975, [], extra]\n",
		"year not a number": "catalog: movies\nrecords:\n  - [jaws, spielberg, \"1975\", []]\n",
		"items not a list":  "catalog: movies\nrecords:\n  - [jaws, spielberg, 1975, roy scheider]\n",
		"empty name":        "catalog: movies\nrecords:\n  - [\"\", spielberg, 1975, []]\n",
		"unknown key":       "catalog: movies\nrecords: []\nowner: me\n",
		"bad catalog name":  "catalog: Movies!\nrecords: []\n",
		"empty document":    "",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), "inline")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "inline")
		})
	}
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("catalog: [unclosed"), "broken.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml: parse yaml")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, ds.Source)
	assert.Len(t, ds.Records, 2)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEmbedded_Bundled(t *testing.T) {
	for _, catalog := range []string{"cars", "movies"} {
		ds, err := LoadEmbedded(data.FS, catalog)
		require.NoError(t, err, catalog)
		assert.Equal(t, catalog, ds.Catalog)
		assert.Equal(t, EmbeddedSource, ds.Source)
		assert.NotEmpty(t, ds.Records)
	}
}

func TestLoadEmbedded_Errors(t *testing.T) {
	_, err := LoadEmbedded(data.FS, "boats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no bundled dataset for catalog "boats"`)

	fsys := fstest.MapFS{"cars.yaml": {Data: []byte(validDoc)}}
	_, err = LoadEmbedded(fsys, "cars")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `declares catalog "movies"`)
}
