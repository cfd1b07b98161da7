package corpus

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Source yields the raw grid of a tabular corpus, header row included.
type Source interface {
	FetchAllRows(ctx context.Context) ([][]string, error)
}

// Column names accepted in the header row, matched case-insensitively.
var (
	themeColumns       = []string{"theme"}
	sentenceColumns    = []string{"sentence", "sentences"}
	translationColumns = []string{"translation", "japanese"}
	hintsColumns       = []string{"hints", "hint"}
)

// header maps the known columns to their grid index; -1 when absent.
type header struct {
	theme, sentence, translation, hints int
}

// Load fetches the grid from src and builds a Corpus. The first grid row
// is the header. Data rows keep their order; rows whose cells are all blank
// are skipped.
func Load(ctx context.Context, src Source) (*Corpus, error) {
	name := describe(src)

	grid, err := src.FetchAllRows(ctx)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	if len(grid) == 0 {
		return nil, &LoadError{Source: name, Err: errors.New("no header row")}
	}

	h, err := parseHeader(grid[0])
	if err != nil {
		return nil, &LoadError{Source: name, Row: 1, Err: err}
	}

	rows := make([]Row, 0, len(grid)-1)
	for i, record := range grid[1:] {
		lineNo := i + 2
		if isBlank(record) {
			continue
		}

		row := Row{
			Theme:       strings.TrimSpace(cell(record, h.theme)),
			Sentence:    cell(record, h.sentence),
			Translation: strings.TrimSpace(cell(record, h.translation)),
			RawHints:    cell(record, h.hints),
		}
		if row.Theme == "" {
			return nil, &LoadError{Source: name, Row: lineNo, Err: errors.New("empty theme")}
		}
		if row.Theme == AllThemes {
			return nil, &LoadError{Source: name, Row: lineNo, Err: ErrReservedTheme}
		}
		if strings.TrimSpace(row.Sentence) == "" {
			return nil, &LoadError{Source: name, Row: lineNo, Err: errors.New("empty sentence")}
		}

		hints, err := DecodeHints(row.RawHints)
		if err != nil {
			return nil, &LoadError{Source: name, Row: lineNo, Err: err}
		}
		row.Hints = hints

		rows = append(rows, row)
	}

	return New(rows), nil
}

func parseHeader(cols []string) (header, error) {
	h := header{
		theme:       findColumn(cols, themeColumns),
		sentence:    findColumn(cols, sentenceColumns),
		translation: findColumn(cols, translationColumns),
		hints:       findColumn(cols, hintsColumns),
	}
	var missing []string
	if h.theme < 0 {
		missing = append(missing, "theme")
	}
	if h.sentence < 0 {
		missing = append(missing, "sentence")
	}
	if len(missing) > 0 {
		return h, fmt.Errorf("header missing required column(s): %s", strings.Join(missing, ", "))
	}
	return h, nil
}

func findColumn(cols []string, names []string) int {
	for i, c := range cols {
		c = strings.ToLower(strings.TrimSpace(c))
		for _, n := range names {
			if c == n {
				return i
			}
		}
	}
	return -1
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func describe(src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}
