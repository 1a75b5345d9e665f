package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/departures/pkg/ctdf"
	"github.com/travigo/departures/pkg/stopindex"
)

// SingleStop searches over every quay and returns the one picked.
type SingleStop struct {
	Searcher Searcher
}

func (s *SingleStop) Resolve(ctx context.Context, index *stopindex.Index) ([]string, error) {
	source := func(input string) []Candidate {
		stops := index.FilterStops(input)

		candidates := make([]Candidate, 0, len(stops))
		for _, stop := range stops {
			candidates = append(candidates, Candidate{
				Label:       stopLabel(stop),
				Value:       stop.PrimaryIdentifier,
				Description: stop.PrimaryName,
			})
		}

		return candidates
	}

	stopID, err := s.Searcher.Search(ctx, "Search for a stop:", source)
	if err != nil {
		return nil, fmt.Errorf("stop search: %w", err)
	}

	if stopID == "" {
		log.Debug().Msg("Stop search cancelled")
		return nil, nil
	}

	return []string{stopID}, nil
}

func stopLabel(stop *ctdf.Stop) string {
	label := fmt.Sprintf("%s — %s%s (%s", stop.PrimaryName, stop.TransportType, connectionsSuffix(stop), stop.PrimaryIdentifier)

	if stop.HasParent() {
		label += " " + stop.ParentStopGroupRef
	}

	return label + ")"
}

func connectionsSuffix(stop *ctdf.Stop) string {
	if len(stop.OtherTransportTypes) == 0 {
		return ""
	}

	return " — connections: " + strings.Join(stop.OtherTransportTypeNames(), ", ")
}
