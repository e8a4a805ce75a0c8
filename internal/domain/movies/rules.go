package movies

import "github.com/corey/carbot/internal/domain/dispatch"

// Rules returns the pattern table in precedence order. Two phrasings ask for
// a director by title.
func (c *Catalog) Rules() []dispatch.Rule {
	return []dispatch.Rule{
		{Pattern: "what movies were made in _", Action: c.TitleByYear},
		{Pattern: "what movies were made between _ and _", Action: c.TitleByYearRange},
		{Pattern: "what movies were made before _", Action: c.TitleBeforeYear},
		{Pattern: "what movies were made after _", Action: c.TitleAfterYear},
		{Pattern: "what directors made movies between _ and _", Action: c.DirectorByYearRange},
		{Pattern: "who directed %", Action: c.DirectorByTitle},
		{Pattern: "who was the director of %", Action: c.DirectorByTitle},
		{Pattern: "what movies were directed by %", Action: c.TitleByDirector},
		{Pattern: "who acted in %", Action: c.ActorsByTitle},
		{Pattern: "when was % made", Action: c.YearByTitle},
		{Pattern: "in what movies did % appear", Action: c.TitleByActor},
		{Pattern: "bye", Action: dispatch.Bye},
	}
}
