package stopindex

import (
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/departures/pkg/ctdf"
	"github.com/travigo/departures/pkg/textnorm"
	"golang.org/x/exp/slices"
)

// Index is an immutable view over the loaded stops. All methods are safe to
// call concurrently.
type Index struct {
	stops    []*ctdf.Stop
	stations []*ctdf.StopGroup

	stationNames map[string]string
}

func New(stops []*ctdf.Stop) *Index {
	index := &Index{
		stops: slices.Clone(stops),
	}
	index.stations = groupByStation(index.stops)

	index.stationNames = make(map[string]string, len(index.stations))
	for _, station := range index.stations {
		index.stationNames[station.PrimaryIdentifier] = textnorm.Normalise(station.Name)
	}

	log.Debug().Int("stops", len(index.stops)).Int("stations", len(index.stations)).Msg("Built stop index")

	return index
}

func (index *Index) Len() int {
	return len(index.stops)
}

func (index *Index) All() []*ctdf.Stop {
	return slices.Clone(index.stops)
}

// FilterStops returns every stop whose normalised name or identifier contains
// the normalised search term, in load order. An empty term matches everything.
func (index *Index) FilterStops(searchTerm string) []*ctdf.Stop {
	term := textnorm.Normalise(searchTerm)

	var matches []*ctdf.Stop
	for _, stop := range index.stops {
		if stop.MatchesNormalised(term) {
			matches = append(matches, stop)
		}
	}

	return matches
}

// GroupByStation maps each parent station identifier to its group. Stops
// without a parent are left out. The returned groups are copies.
func (index *Index) GroupByStation() map[string]*ctdf.StopGroup {
	groups := make(map[string]*ctdf.StopGroup, len(index.stations))

	for _, station := range index.stations {
		group := &ctdf.StopGroup{}
		if err := deepCopyStation(group, station); err != nil {
			log.Warn().Err(err).Str("station", station.PrimaryIdentifier).Msg("Deep copy failed, copying station group field by field")
			group = copyStation(station)
		}

		groups[station.PrimaryIdentifier] = group
	}

	return groups
}

var deepCopyStation = func(to *ctdf.StopGroup, from *ctdf.StopGroup) error {
	return copier.CopyWithOption(to, from, copier.Option{DeepCopy: true})
}

func copyStation(station *ctdf.StopGroup) *ctdf.StopGroup {
	group := &ctdf.StopGroup{
		PrimaryIdentifier: station.PrimaryIdentifier,
		Name:              station.Name,
		Stops:             make([]*ctdf.Stop, 0, len(station.Stops)),
	}

	for _, stop := range station.Stops {
		stopCopy := *stop
		stopCopy.OtherTransportTypes = slices.Clone(stop.OtherTransportTypes)

		group.Stops = append(group.Stops, &stopCopy)
	}

	return group
}

// Stations lists the station groups in order of first appearance.
func (index *Index) Stations() []*ctdf.StopGroup {
	return slices.Clone(index.stations)
}

// FilterStations returns the stations whose derived name contains the
// normalised search term.
func (index *Index) FilterStations(searchTerm string) []*ctdf.StopGroup {
	term := textnorm.Normalise(searchTerm)

	var matches []*ctdf.StopGroup
	for _, station := range index.stations {
		if strings.Contains(index.stationNames[station.PrimaryIdentifier], term) {
			matches = append(matches, station)
		}
	}

	return matches
}

func groupByStation(stops []*ctdf.Stop) []*ctdf.StopGroup {
	var stations []*ctdf.StopGroup
	stationsByRef := map[string]*ctdf.StopGroup{}

	for _, stop := range stops {
		if !stop.HasParent() {
			continue
		}

		station, exists := stationsByRef[stop.ParentStopGroupRef]
		if !exists {
			station = &ctdf.StopGroup{
				PrimaryIdentifier: stop.ParentStopGroupRef,
				Name:              ctdf.StopGroupNameFromStop(stop),
			}

			stationsByRef[stop.ParentStopGroupRef] = station
			stations = append(stations, station)
		}

		station.Stops = append(station.Stops, stop)
	}

	return stations
}
