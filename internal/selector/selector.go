// Package selector draws practice rows uniformly at random.
package selector

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/dictaz/internal/corpus"
)

// EmptyInputError is returned when asked to pick from no rows.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "cannot select from an empty set of rows"
}

// Selector picks one row per call. Draws are independent and with
// replacement; the same row may come up twice in a row.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Selector drawing from src.
func New(src rand.Source) *Selector {
	return &Selector{rng: rand.New(src)}
}

// NewSeeded creates a Selector with a PCG source. A zero seed uses the
// current time.
func NewSeeded(seed uint64) *Selector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Pick returns one of rows, each with probability 1/len(rows).
func (s *Selector) Pick(rows []corpus.Row) (corpus.Row, error) {
	if len(rows) == 0 {
		return corpus.Row{}, &EmptyInputError{}
	}
	s.mu.Lock()
	i := s.rng.IntN(len(rows))
	s.mu.Unlock()
	return rows[i], nil
}
