package corpus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// DecodeHints parses a hints cell such as {"sat": "past tense of sit"}.
// Key order is preserved. A repeated key keeps its first position and
// takes the last value. An empty cell decodes to an empty, non-nil slice.
func DecodeHints(raw string) ([]Hint, error) {
	if strings.TrimSpace(raw) == "" {
		return []Hint{}, nil
	}
	if !gjson.Valid(raw) {
		return nil, &HintDecodeError{Raw: raw, Err: errors.New("invalid JSON")}
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return nil, &HintDecodeError{Raw: raw, Err: fmt.Errorf("expected object, got %s", parsed.Type)}
	}

	hints := []Hint{}
	index := make(map[string]int)
	var decodeErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			decodeErr = fmt.Errorf("hint %q: expected string, got %s", key.String(), value.Type)
			return false
		}
		term := key.String()
		if i, ok := index[term]; ok {
			hints[i].Note = value.String()
			return true
		}
		index[term] = len(hints)
		hints = append(hints, Hint{Term: term, Note: value.String()})
		return true
	})
	if decodeErr != nil {
		return nil, &HintDecodeError{Raw: raw, Err: decodeErr}
	}
	return hints, nil
}

// ResolveHints returns the row's decoded hints, decoding RawHints when the
// row has not been decoded yet.
func (r Row) ResolveHints() ([]Hint, error) {
	if r.Hints != nil {
		return r.Hints, nil
	}
	return DecodeHints(r.RawHints)
}
