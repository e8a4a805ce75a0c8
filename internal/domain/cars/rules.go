package cars

import "github.com/corey/carbot/internal/domain/dispatch"

// Rules returns the pattern table in precedence order.
// "_" captures one word, "%" any number of words.
func (c *Catalog) Rules() []dispatch.Rule {
	return []dispatch.Rule{
		{Pattern: "what cars were made in _", Action: c.CarsByCountry},
		{Pattern: "what cars were made between _ and _", Action: c.CarsBetweenYears},
		{Pattern: "what cars were made before _", Action: c.CarsBeforeYear},
		{Pattern: "what cars were made after _", Action: c.CarsAfterYear},
		{Pattern: "what was the most sold car in _", Action: c.TopCarByCountry},
		{Pattern: "what were the top 3 most sold cars in _", Action: c.CarsByCountry},
		{Pattern: "what country was % made in", Action: c.CountryByCar},
		{Pattern: "what country is ranked _ in population", Action: c.CountryByPopulationRank},
		{Pattern: "what cars were sold in the country ranked _", Action: c.CarsByPopulationRank},
		{Pattern: "what was the most sold car in the country ranked _", Action: c.TopCarByPopulationRank},
		{Pattern: "what is the population rank of the country that sells %", Action: c.PopulationRankByCar},
		{Pattern: "what cars sold alongside %", Action: c.CarsAlongside},
		{Pattern: "when was % a top seller", Action: c.YearByCar},
		{Pattern: "bye", Action: dispatch.Bye},
	}
}
