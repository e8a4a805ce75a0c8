package cars

import (
	"strconv"

	"github.com/corey/carbot/internal/domain/records"
)

// Every action takes the wildcard captures of its pattern and returns the
// answers; an empty result is reported as "No answers" by the dispatcher.

// TopCarByCountry: captures [country] -> the most sold car of each matching record.
func (c *Catalog) TopCarByCountry(m []string) ([]string, error) {
	var out []string
	for _, i := range c.byCountry.Lookup(m[0]) {
		out = append(out, topCars(c.recs[i])[0])
	}
	return out, nil
}

// CarsByCountry: captures [country] -> every top car of the country.
func (c *Catalog) CarsByCountry(m []string) ([]string, error) {
	return c.allCars(c.byCountry.Lookup(m[0])), nil
}

// CountryByCar: captures [car] -> countries where the car is a top seller.
func (c *Catalog) CountryByCar(m []string) ([]string, error) {
	var out []string
	for _, i := range c.byCar.Lookup(m[0]) {
		out = append(out, country(c.recs[i]))
	}
	return out, nil
}

// CountryByPopulationRank: captures [rank] -> countries holding that rank.
func (c *Catalog) CountryByPopulationRank(m []string) ([]string, error) {
	var out []string
	for _, i := range c.byRank.Lookup(m[0]) {
		out = append(out, country(c.recs[i]))
	}
	return records.Distinct(out), nil
}

// CarsByPopulationRank: captures [rank] -> top cars of the country with that rank.
func (c *Catalog) CarsByPopulationRank(m []string) ([]string, error) {
	return c.allCars(c.byRank.Lookup(m[0])), nil
}

// TopCarByPopulationRank: captures [rank] -> the most sold car of that country.
func (c *Catalog) TopCarByPopulationRank(m []string) ([]string, error) {
	var out []string
	for _, i := range c.byRank.Lookup(m[0]) {
		out = append(out, topCars(c.recs[i])[0])
	}
	return out, nil
}

// PopulationRankByCar: captures [car] -> population ranks of the countries selling it.
func (c *Catalog) PopulationRankByCar(m []string) ([]string, error) {
	var out []string
	for _, i := range c.byCar.Lookup(m[0]) {
		out = append(out, populationRank(c.recs[i]))
	}
	return out, nil
}

// CarsAlongside: captures [car] -> every car on the same top sellers lists.
func (c *Catalog) CarsAlongside(m []string) ([]string, error) {
	return c.allCars(c.byCar.Lookup(m[0])), nil
}

// YearByCar: captures [car] -> years in which the car was a top seller.
func (c *Catalog) YearByCar(m []string) ([]string, error) {
	var out []string
	for _, i := range c.byCar.Lookup(m[0]) {
		out = append(out, strconv.Itoa(year(c.recs[i])))
	}
	return records.Distinct(out), nil
}

// CarsBetweenYears: captures [from, to] -> top cars of the years in [from, to].
func (c *Catalog) CarsBetweenYears(m []string) ([]string, error) {
	lo, err := records.ParseYear(m[0])
	if err != nil {
		return nil, err
	}
	hi, err := records.ParseYear(m[1])
	if err != nil {
		return nil, err
	}
	return records.Distinct(c.allCars(c.byYear.Between(lo, hi))), nil
}

// CarsBeforeYear: captures [year] -> top cars of years strictly before it.
func (c *Catalog) CarsBeforeYear(m []string) ([]string, error) {
	y, err := records.ParseYear(m[0])
	if err != nil {
		return nil, err
	}
	return records.Distinct(c.allCars(c.byYear.Before(y))), nil
}

// CarsAfterYear: captures [year] -> top cars of years strictly after it.
func (c *Catalog) CarsAfterYear(m []string) ([]string, error) {
	y, err := records.ParseYear(m[0])
	if err != nil {
		return nil, err
	}
	return records.Distinct(c.allCars(c.byYear.After(y))), nil
}

func (c *Catalog) allCars(positions []int) []string {
	var out []string
	for _, i := range positions {
		out = append(out, topCars(c.recs[i])...)
	}
	return out
}
