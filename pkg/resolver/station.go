package resolver

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/departures/pkg/ctdf"
	"github.com/travigo/departures/pkg/stopindex"
)

type State int

const (
	StateAwaitingStationQuery State = iota
	StateStationChosen
	StateAwaitingQuaySelection
	StateResolved
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateAwaitingStationQuery:
		return "AwaitingStationQuery"
	case StateStationChosen:
		return "StationChosen"
	case StateAwaitingQuaySelection:
		return "AwaitingQuaySelection"
	case StateResolved:
		return "Resolved"
	case StateCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StationThenQuay first searches stations, then lets the user tick any number
// of that station's quays.
type StationThenQuay struct {
	Searcher Searcher
	Selector MultiSelector

	// OnTransition is called on every state change when set.
	OnTransition func(from State, to State)
}

func (s *StationThenQuay) Resolve(ctx context.Context, index *stopindex.Index) ([]string, error) {
	stations := index.GroupByStation()
	state := StateAwaitingStationQuery

	transition := func(to State) {
		log.Debug().Str("from", state.String()).Str("to", to.String()).Msg("Station resolution")

		if s.OnTransition != nil {
			s.OnTransition(state, to)
		}
		state = to
	}

	source := func(input string) []Candidate {
		matches := index.FilterStations(input)

		candidates := make([]Candidate, 0, len(matches))
		for _, station := range matches {
			candidates = append(candidates, Candidate{
				Label:       stationLabel(station),
				Value:       station.PrimaryIdentifier,
				Description: station.Name,
			})
		}

		return candidates
	}

	stationID, err := s.Searcher.Search(ctx, "Search for a station:", source)
	if err != nil {
		return nil, fmt.Errorf("station search: %w", err)
	}

	station := stations[stationID]
	if station == nil {
		transition(StateCancelled)
		return nil, nil
	}
	transition(StateStationChosen)

	candidates := make([]Candidate, 0, len(station.Stops))
	for _, stop := range station.Stops {
		candidates = append(candidates, Candidate{
			Label:       quayLabel(stop),
			Value:       stop.PrimaryIdentifier,
			Description: stop.PrimaryName,
		})
	}

	transition(StateAwaitingQuaySelection)

	stopIDs, err := s.Selector.MultiSelect(ctx, fmt.Sprintf("Quays at %s:", station.Name), candidates)
	if err != nil {
		return nil, fmt.Errorf("quay selection: %w", err)
	}

	if len(stopIDs) == 0 {
		transition(StateCancelled)
		return nil, nil
	}
	transition(StateResolved)

	return stopIDs, nil
}

func stationLabel(station *ctdf.StopGroup) string {
	return fmt.Sprintf("%s (%d quays)", station.Name, len(station.Stops))
}

func quayLabel(stop *ctdf.Stop) string {
	return fmt.Sprintf("%s — %s — %s%s", stop.PrimaryName, stop.PrimaryIdentifier, stop.TransportType, connectionsSuffix(stop))
}
