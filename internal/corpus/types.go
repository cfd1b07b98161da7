package corpus

// AllThemes selects every row regardless of theme.
const AllThemes = "ALL"

// Hint is one vocabulary or idiom note attached to a sentence.
type Hint struct {
	Term string
	Note string
}

// Row is a single practice item.
type Row struct {
	Theme       string
	Sentence    string
	Translation string

	// Hints holds the decoded notes in the order they appear in the source.
	// A nil slice means the row has not been decoded yet and RawHints should
	// be consulted instead.
	Hints []Hint

	// RawHints is the undecoded hints cell.
	RawHints string
}

// Corpus is the ordered, read-only set of rows loaded for a run.
// It is safe to share between sessions.
type Corpus struct {
	rows   []Row
	themes []string
}
