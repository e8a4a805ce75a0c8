// Package cars answers questions about the best-selling cars of each country.
//
// A record is (country, population rank, year, top sellers). The top sellers
// list is ordered best first, so its head is the country's most sold car.
package cars

import (
	"fmt"

	"github.com/corey/carbot/internal/domain/records"
	"github.com/corey/carbot/internal/ports"
)

// Name is the catalog name used in config and storage.
const Name = "cars"

// Projectors over the record tuple.
func country(r ports.Record) string        { return r.Name }
func populationRank(r ports.Record) string { return r.Label }
func year(r ports.Record) int              { return r.Year }
func topCars(r ports.Record) []string      { return r.Items }

// Catalog is an indexed, read-only view of a cars dataset.
type Catalog struct {
	recs      []ports.Record
	byCountry records.FieldIndex
	byRank    records.FieldIndex
	byCar     records.FieldIndex
	byYear    *records.YearIndex
}

// New indexes ds. Every record needs at least one top seller.
func New(ds *ports.Dataset) (*Catalog, error) {
	if ds == nil {
		return nil, fmt.Errorf("cars: nil dataset")
	}
	for i, r := range ds.Records {
		if country(r) == "" {
			return nil, fmt.Errorf("cars: record %d: empty country", i)
		}
		if len(topCars(r)) == 0 {
			return nil, fmt.Errorf("cars: record %d (%s): no top cars", i, country(r))
		}
	}

	recs := make([]ports.Record, len(ds.Records))
	copy(recs, ds.Records)
	return &Catalog{
		recs:      recs,
		byCountry: records.ByField(recs, country),
		byRank:    records.ByField(recs, populationRank),
		byCar:     records.ByItem(recs),
		byYear:    records.ByYear(recs),
	}, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.recs) }
