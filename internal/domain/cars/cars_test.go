package cars

import (
	"strings"
	"testing"

	"github.com/corey/carbot/internal/domain/dispatch"
	"github.com/corey/carbot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Cars catalog: lookup actions and pattern table over top sellers per country
// =============================================================================

func fixture() *ports.Dataset {
	return &ports.Dataset{Catalog: Name, Records: []ports.Record{
		{Name: "india", Label: "1", Year: 2023, Items: []string{"maruti suzuki swift", "maruti suzuki baleno", "tata nexon"}},
		{Name: "china", Label: "2", Year: 2023, Items: []string{"tesla model y", "byd song", "byd qin plus"}},
		{Name: "usa", Label: "3", Year: 2023, Items: []string{"ford f-series", "chevrolet silverado", "ram pickup"}},
		{Name: "japan", Label: "12", Year: 2023, Items: []string{"toyota yaris", "toyota corolla", "honda n-box"}},
		{Name: "uk", Label: "21", Year: 2023, Items: []string{"ford puma", "nissan qashqai", "kia sportage"}},
		{Name: "usa", Label: "3", Year: 2022, Items: []string{"ford f-series", "chevrolet silverado", "ram pickup"}},
		{Name: "uk", Label: "21", Year: 2022, Items: []string{"vauxhall corsa", "nissan qashqai", "tesla model y"}},
	}}
}

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(fixture())
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&ports.Dataset{Records: []ports.Record{{Name: "nowhere", Label: "9", Year: 2023}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no top cars")

	_, err = New(&ports.Dataset{Records: []ports.Record{{Label: "9", Items: []string{"x"}}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty country")

	assert.Equal(t, 7, newCatalog(t).Len())
}

func TestActions(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		name   string
		action dispatch.Action
		args   []string
		want   []string
	}{
		{"top car by country", c.TopCarByCountry, []string{"japan"}, []string{"toyota yaris"}},
		{"top car by country over years", c.TopCarByCountry, []string{"uk"}, []string{"ford puma", "vauxhall corsa"}},
		{"cars by country", c.CarsByCountry, []string{"india"}, []string{"maruti suzuki swift", "maruti suzuki baleno", "tata nexon"}},
		{"cars by unknown country", c.CarsByCountry, []string{"2020"}, nil},
		{"country by car", c.CountryByCar, []string{"tesla model y"}, []string{"china", "uk"}},
		{"country by population rank", c.CountryByPopulationRank, []string{"3"}, []string{"usa"}},
		{"cars by population rank", c.CarsByPopulationRank, []string{"12"}, []string{"toyota yaris", "toyota corolla", "honda n-box"}},
		{"top car by population rank", c.TopCarByPopulationRank, []string{"2"}, []string{"tesla model y"}},
		{"population rank by car", c.PopulationRankByCar, []string{"nissan qashqai"}, []string{"21", "21"}},
		{"cars alongside", c.CarsAlongside, []string{"byd song"}, []string{"tesla model y", "byd song", "byd qin plus"}},
		{"year by car", c.YearByCar, []string{"ford f-series"}, []string{"2023", "2022"}},
		{"cars between years", c.CarsBetweenYears, []string{"2022", "2022"}, []string{"ford f-series", "chevrolet silverado", "ram pickup", "vauxhall corsa", "nissan qashqai", "tesla model y"}},
		{"cars before year", c.CarsBeforeYear, []string{"2023"}, []string{"ford f-series", "chevrolet silverado", "ram pickup", "vauxhall corsa", "nissan qashqai", "tesla model y"}},
		{"cars after year", c.CarsAfterYear, []string{"2023"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.action(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActions_NonNumericYear(t *testing.T) {
	c := newCatalog(t)
	_, err := c.CarsBeforeYear([]string{"soon"})
	assert.Error(t, err)
	_, err = c.CarsAfterYear([]string{"soon"})
	assert.Error(t, err)
	_, err = c.CarsBetweenYears([]string{"2020", "soon"})
	assert.Error(t, err)
}

func TestRules_EndToEnd(t *testing.T) {
	table, err := dispatch.NewTable(newCatalog(t).Rules())
	require.NoError(t, err)
	d := dispatch.NewDispatcher(table)

	ask := func(s string) ports.Reply {
		reply, err := d.Dispatch(strings.Fields(s))
		require.NoError(t, err, s)
		return reply
	}

	assert.Equal(t, []string{dispatch.NoAnswers}, ask("what cars were made in 2020").Answers)
	assert.Equal(t, []string{"toyota yaris"}, ask("what was the most sold car in japan").Answers)
	assert.Equal(t, []string{"tesla model y"}, ask("what was the most sold car in the country ranked 2").Answers)
	assert.Equal(t, []string{"china", "uk"}, ask("what country was tesla model y made in").Answers)
	assert.Equal(t, []string{"usa"}, ask("what country is ranked 3 in population").Answers)
	assert.Equal(t, []string{"1"}, ask("what is the population rank of the country that sells tata nexon").Answers)
	assert.Equal(t, []string{"2023", "2022"}, ask("when was ram pickup a top seller").Answers)
	assert.Equal(t, []string{dispatch.NotUnderstood}, ask("what cars were made in united states").Answers)

	reply := ask("what cars were made between 1970 and 1972")
	assert.Equal(t, []string{"1970", "1972"}, reply.Captures)
	assert.Equal(t, []string{dispatch.NoAnswers}, reply.Answers)

	assert.True(t, ask("bye").Terminate)
}
