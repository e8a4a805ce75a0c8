// Package records indexes a read-only dataset for the lookup actions.
//
// Every lookup returns record positions in dataset order, so an indexed action
// produces its answers in the same order a linear scan would.
package records

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/corey/carbot/internal/ports"
)

// Projector reads one string field of a record.
type Projector func(ports.Record) string

// FieldIndex maps a field value to the positions of the records holding it.
type FieldIndex map[string][]int

// ByField builds an exact-match index over one projected field.
func ByField(recs []ports.Record, field Projector) FieldIndex {
	idx := make(FieldIndex)
	for i, r := range recs {
		k := field(r)
		idx[k] = append(idx[k], i)
	}
	return idx
}

// ByItem indexes the list-valued field. A record listing the same item twice
// appears twice, matching a scan that visits every item.
func ByItem(recs []ports.Record) FieldIndex {
	idx := make(FieldIndex)
	for i, r := range recs {
		for _, item := range r.Items {
			idx[item] = append(idx[item], i)
		}
	}
	return idx
}

// Lookup returns the positions for key (nil if absent).
func (f FieldIndex) Lookup(key string) []int {
	return f[key]
}

// YearIndex answers year range queries with binary search.
type YearIndex struct {
	years []int // sorted ascending
	pos   []int // pos[i] is the record position holding years[i]
}

// ByYear builds a YearIndex.
func ByYear(recs []ports.Record) *YearIndex {
	pos := make([]int, len(recs))
	for i := range pos {
		pos[i] = i
	}
	sort.SliceStable(pos, func(a, b int) bool {
		return recs[pos[a]].Year < recs[pos[b]].Year
	})
	years := make([]int, len(pos))
	for i, p := range pos {
		years[i] = recs[p].Year
	}
	return &YearIndex{years: years, pos: pos}
}

// Between returns records with lo <= year <= hi.
func (y *YearIndex) Between(lo, hi int) []int {
	if lo > hi {
		return nil
	}
	start := sort.SearchInts(y.years, lo)
	end := sort.SearchInts(y.years, hi+1)
	return y.slice(start, end)
}

// Exactly returns records made in year.
func (y *YearIndex) Exactly(year int) []int {
	return y.Between(year, year)
}

// Before returns records with year < limit.
func (y *YearIndex) Before(limit int) []int {
	return y.slice(0, sort.SearchInts(y.years, limit))
}

// After returns records with year > limit.
func (y *YearIndex) After(limit int) []int {
	return y.slice(sort.SearchInts(y.years, limit+1), len(y.years))
}

func (y *YearIndex) slice(start, end int) []int {
	if start >= end {
		return nil
	}
	out := make([]int, end-start)
	copy(out, y.pos[start:end])
	sort.Ints(out)
	return out
}

// ParseYear converts a captured token to a year.
func ParseYear(s string) (int, error) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("year %q: %w", s, err)
	}
	return y, nil
}

// Distinct drops repeated values, keeping the first occurrence.
func Distinct(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]bool, len(values))
	out := values[:0:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
