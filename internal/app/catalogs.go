package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corey/carbot/internal/domain/cars"
	"github.com/corey/carbot/internal/domain/dispatch"
	"github.com/corey/carbot/internal/domain/movies"
	"github.com/corey/carbot/internal/ports"
)

// catalogFactory indexes a dataset and returns its ordered rules and record count.
type catalogFactory func(ds *ports.Dataset) ([]dispatch.Rule, int, error)

var catalogs = map[string]catalogFactory{
	cars.Name: func(ds *ports.Dataset) ([]dispatch.Rule, int, error) {
		c, err := cars.New(ds)
		if err != nil {
			return nil, 0, err
		}
		return c.Rules(), c.Len(), nil
	},
	movies.Name: func(ds *ports.Dataset) ([]dispatch.Rule, int, error) {
		c, err := movies.New(ds)
		if err != nil {
			return nil, 0, err
		}
		return c.Rules(), c.Len(), nil
	},
}

// Catalogs returns the known catalog names, sorted.
func Catalogs() []string {
	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupCatalog returns the factory registered under name.
func lookupCatalog(name string) (catalogFactory, error) {
	factory, ok := catalogs[name]
	if !ok {
		return nil, fmt.Errorf("unknown catalog %q (available: %s)", name, strings.Join(Catalogs(), ", "))
	}
	return factory, nil
}

// buildRules indexes ds with its catalog and returns the catalog's rules.
func buildRules(ds *ports.Dataset) ([]dispatch.Rule, int, error) {
	factory, err := lookupCatalog(ds.Catalog)
	if err != nil {
		return nil, 0, err
	}
	return factory(ds)
}
