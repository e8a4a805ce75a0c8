package movies

import (
	"strconv"

	"github.com/corey/carbot/internal/domain/records"
)

// TitleByYear: captures [year] -> titles made that year.
func (c *Catalog) TitleByYear(m []string) ([]string, error) {
	y, err := records.ParseYear(m[0])
	if err != nil {
		return nil, err
	}
	return c.titles(c.byYear.Exactly(y)), nil
}

// TitleByYearRange: captures [from, to] -> titles made in [from, to].
func (c *Catalog) TitleByYearRange(m []string) ([]string, error) {
	lo, hi, err := parseRange(m)
	if err != nil {
		return nil, err
	}
	return c.titles(c.byYear.Between(lo, hi)), nil
}

// TitleBeforeYear: captures [year] -> titles made strictly before it.
func (c *Catalog) TitleBeforeYear(m []string) ([]string, error) {
	y, err := records.ParseYear(m[0])
	if err != nil {
		return nil, err
	}
	return c.titles(c.byYear.Before(y)), nil
}

// TitleAfterYear: captures [year] -> titles made strictly after it.
func (c *Catalog) TitleAfterYear(m []string) ([]string, error) {
	y, err := records.ParseYear(m[0])
	if err != nil {
		return nil, err
	}
	return c.titles(c.byYear.After(y)), nil
}

// DirectorByYearRange: captures [from, to] -> directors of films made in [from, to].
func (c *Catalog) DirectorByYearRange(m []string) ([]string, error) {
	lo, hi, err := parseRange(m)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, i := range c.byYear.Between(lo, hi) {
		out = append(out, director(c.recs[i]))
	}
	return records.Distinct(out), nil
}

// DirectorByTitle: captures [title] -> its director.
func (c *Catalog) DirectorByTitle(m []string) ([]string, error) {
	var out []string
	for _, i := range c.byTitle.Lookup(m[0]) {
		out = append(out, director(c.recs[i]))
	}
	return out, nil
}

// TitleByDirector: captures [director] -> their titles.
func (c *Catalog) TitleByDirector(m []string) ([]string, error) {
	return c.titles(c.byDirector.Lookup(m[0])), nil
}

// ActorsByTitle: captures [title] -> its cast.
func (c *Catalog) ActorsByTitle(m []string) ([]string, error) {
	var out []string
	for _, i := range c.byTitle.Lookup(m[0]) {
		out = append(out, actors(c.recs[i])...)
	}
	return out, nil
}

// YearByTitle: captures [title] -> release year.
func (c *Catalog) YearByTitle(m []string) ([]string, error) {
	var out []string
	for _, i := range c.byTitle.Lookup(m[0]) {
		out = append(out, strconv.Itoa(year(c.recs[i])))
	}
	return out, nil
}

// TitleByActor: captures [actor] -> titles they appear in.
func (c *Catalog) TitleByActor(m []string) ([]string, error) {
	return records.Distinct(c.titles(c.byActor.Lookup(m[0]))), nil
}

func (c *Catalog) titles(positions []int) []string {
	var out []string
	for _, i := range positions {
		out = append(out, title(c.recs[i]))
	}
	return out
}

func parseRange(m []string) (int, int, error) {
	lo, err := records.ParseYear(m[0])
	if err != nil {
		return 0, 0, err
	}
	hi, err := records.ParseYear(m[1])
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}
