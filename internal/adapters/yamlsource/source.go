// Package yamlsource reads datasets from YAML documents.
//
// A document names its catalog and lists each record as a four element
// sequence in the catalog's field order:
//
//	catalog: movies
//	fields: [title, director, year, actors]
//	records:
//	  - ["jaws", "steven spielberg", 1975, ["roy scheider", "robert shaw"]]
//
// Documents are validated against the bundled JSON Schema before decoding.
package yamlsource

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/corey/carbot/data"
	"github.com/corey/carbot/internal/ports"
)

// EmbeddedSource is the Dataset.Source value for bundled datasets.
const EmbeddedSource = "embedded"

// document is the YAML layout of a dataset file.
type document struct {
	Catalog string       `yaml:"catalog"`
	Fields  []string     `yaml:"fields"`
	Records []recordYAML `yaml:"records"`
}

// recordYAML decodes a record from its positional sequence form.
type recordYAML ports.Record

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *recordYAML) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 4 {
		return fmt.Errorf("line %d: record must be a sequence of 4 values", node.Line)
	}
	if err := node.Content[0].Decode(&r.Name); err != nil {
		return fmt.Errorf("line %d: field 1: %w", node.Line, err)
	}
	if err := node.Content[1].Decode(&r.Label); err != nil {
		return fmt.Errorf("line %d: field 2: %w", node.Line, err)
	}
	if err := node.Content[2].Decode(&r.Year); err != nil {
		return fmt.Errorf("line %d: field 3: %w", node.Line, err)
	}
	if err := node.Content[3].Decode(&r.Items); err != nil {
		return fmt.Errorf("line %d: field 4: %w", node.Line, err)
	}
	if r.Items == nil {
		r.Items = []string{}
	}
	return nil
}

// Parse validates and decodes a YAML document. source is recorded on the
// returned Dataset and used in error messages.
func Parse(raw []byte, source string) (*ports.Dataset, error) {
	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%s: parse yaml: %w", source, err)
	}
	if err := validate(generic); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", source, err)
	}

	ds := &ports.Dataset{
		Catalog: doc.Catalog,
		Source:  source,
		Records: make([]ports.Record, len(doc.Records)),
	}
	for i, r := range doc.Records {
		ds.Records[i] = ports.Record(r)
	}
	return ds, nil
}

// Load reads and parses a dataset file.
func Load(path string) (*ports.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(raw, path)
}

// LoadEmbedded parses the bundled dataset for catalog from fsys.
func LoadEmbedded(fsys fs.FS, catalog string) (*ports.Dataset, error) {
	raw, err := fs.ReadFile(fsys, catalog+".yaml")
	if err != nil {
		return nil, fmt.Errorf("no bundled dataset for catalog %q: %w", catalog, err)
	}
	ds, err := Parse(raw, EmbeddedSource)
	if err != nil {
		return nil, err
	}
	if ds.Catalog != catalog {
		return nil, fmt.Errorf("bundled %s.yaml declares catalog %q", catalog, ds.Catalog)
	}
	return ds, nil
}

// validate checks a decoded document against the bundled schema.
func validate(doc interface{}) error {
	schema, err := fs.ReadFile(data.FS, data.SchemaFile)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("dataset validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
