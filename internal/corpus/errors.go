package corpus

import "fmt"

// ErrReservedTheme rejects a data row whose theme would collide with the
// AllThemes selector.
var ErrReservedTheme = fmt.Errorf("reserved theme name %q", AllThemes)

// LoadError indicates the corpus could not be built from its source.
// Row is the 1-based grid row that caused the failure, or 0 when the
// failure is not tied to a row.
type LoadError struct {
	Source string
	Row    int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("load corpus from %s: row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("load corpus from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// EmptyFilterError indicates a theme selection matched no rows.
type EmptyFilterError struct {
	Theme string
}

func (e *EmptyFilterError) Error() string {
	if e.Theme == AllThemes {
		return "corpus is empty"
	}
	return fmt.Sprintf("no sentences for theme %q", e.Theme)
}

// HintDecodeError indicates a hints cell is not a JSON object of strings.
type HintDecodeError struct {
	Raw string
	Err error
}

func (e *HintDecodeError) Error() string {
	return fmt.Sprintf("decode hints: %v", e.Err)
}

func (e *HintDecodeError) Unwrap() error { return e.Err }
