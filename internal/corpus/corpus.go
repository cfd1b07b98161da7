package corpus

import (
	"slices"

	"github.com/samber/lo"
)

// New builds a Corpus from rows. The rows and their hints are copied.
func New(rows []Row) *Corpus {
	owned := cloneRows(rows)
	return &Corpus{
		rows:   owned,
		themes: lo.Uniq(lo.Map(owned, func(r Row, _ int) string { return r.Theme })),
	}
}

// Len returns the number of rows.
func (c *Corpus) Len() int {
	return len(c.rows)
}

// Rows returns a copy of every row in source order.
func (c *Corpus) Rows() []Row {
	return cloneRows(c.rows)
}

// clone copies r including its Hints backing array. A nil Hints stays nil.
func (r Row) clone() Row {
	r.Hints = slices.Clone(r.Hints)
	return r
}

func cloneRows(rows []Row) []Row {
	return lo.Map(rows, func(r Row, _ int) Row { return r.clone() })
}

// DistinctThemes returns each theme once, in order of first appearance.
func (c *Corpus) DistinctThemes() []string {
	return slices.Clone(c.themes)
}

// CountByTheme returns the number of rows per theme.
func (c *Corpus) CountByTheme() map[string]int {
	groups := lo.GroupBy(c.rows, func(r Row) string { return r.Theme })
	return lo.MapValues(groups, func(rows []Row, _ string) int { return len(rows) })
}

// Filter returns the rows belonging to theme, in source order. AllThemes
// returns every row. The corpus itself is never modified.
func (c *Corpus) Filter(theme string) ([]Row, error) {
	var out []Row
	if theme == AllThemes {
		out = cloneRows(c.rows)
	} else {
		out = lo.FilterMap(c.rows, func(r Row, _ int) (Row, bool) { return r.clone(), r.Theme == theme })
	}
	if len(out) == 0 {
		return nil, &EmptyFilterError{Theme: theme}
	}
	return out, nil
}
