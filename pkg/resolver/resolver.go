// Package resolver turns interactive user input into one or more stop
// identifiers using a stopindex.Index and an external prompt capability.
package resolver

import (
	"context"

	"github.com/travigo/departures/pkg/stopindex"
)

// Candidate is one line offered by a prompt.
type Candidate struct {
	Label       string
	Value       string
	Description string
}

// SourceFunc produces the candidates for the current partial input.
type SourceFunc func(input string) []Candidate

// Searcher is an incremental search prompt. It returns the chosen Value, or
// an empty string when the user made no selection.
type Searcher interface {
	Search(ctx context.Context, message string, source SourceFunc) (string, error)
}

// MultiSelector presents a fixed list and returns the Values the user checked.
type MultiSelector interface {
	MultiSelect(ctx context.Context, message string, candidates []Candidate) ([]string, error)
}

// Strategy resolves stop identifiers. An empty result with a nil error means
// nothing was chosen.
type Strategy interface {
	Resolve(ctx context.Context, index *stopindex.Index) ([]string, error)
}

// Prompter is what the terminal UI provides.
type Prompter interface {
	Searcher
	MultiSelector
}

// ForMode returns the station-then-quay workflow when multi is set, otherwise
// the single stop search.
func ForMode(multi bool, prompter Prompter) Strategy {
	if multi {
		return &StationThenQuay{
			Searcher: prompter,
			Selector: prompter,
		}
	}

	return &SingleStop{
		Searcher: prompter,
	}
}
