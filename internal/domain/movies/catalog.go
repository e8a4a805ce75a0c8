// Package movies answers questions about a small film archive.
//
// A record is (title, director, year, actors).
package movies

import (
	"fmt"

	"github.com/corey/carbot/internal/domain/records"
	"github.com/corey/carbot/internal/ports"
)

// Name is the catalog name used in config and storage.
const Name = "movies"

func title(r ports.Record) string    { return r.Name }
func director(r ports.Record) string { return r.Label }
func year(r ports.Record) int        { return r.Year }
func actors(r ports.Record) []string { return r.Items }

// Catalog is an indexed, read-only view of a movies dataset.
type Catalog struct {
	recs       []ports.Record
	byTitle    records.FieldIndex
	byDirector records.FieldIndex
	byActor    records.FieldIndex
	byYear     *records.YearIndex
}

// New indexes ds.
func New(ds *ports.Dataset) (*Catalog, error) {
	if ds == nil {
		return nil, fmt.Errorf("movies: nil dataset")
	}
	for i, r := range ds.Records {
		if title(r) == "" {
			return nil, fmt.Errorf("movies: record %d: empty title", i)
		}
	}

	recs := make([]ports.Record, len(ds.Records))
	copy(recs, ds.Records)
	return &Catalog{
		recs:       recs,
		byTitle:    records.ByField(recs, title),
		byDirector: records.ByField(recs, director),
		byActor:    records.ByItem(recs),
		byYear:     records.ByYear(recs),
	}, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.recs) }
