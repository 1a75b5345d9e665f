package ctdf

import (
	"strings"

	"github.com/travigo/departures/pkg/textnorm"
)

// Stop is a single boarding point (a NeTEx Quay).
type Stop struct {
	PrimaryIdentifier string `groups:"basic"`
	PrimaryName       string `groups:"basic"`

	TransportType       TransportType   `groups:"basic"`
	OtherTransportTypes []TransportType `groups:"basic"`

	ParentStopGroupRef string `groups:"basic"`

	NormalisedName       string `groups:"internal"`
	NormalisedIdentifier string `groups:"internal"`
}

// NewStop is the only place the normalised search keys are computed.
func NewStop(identifier string, name string, transportType TransportType, otherTransportTypes []TransportType, parentStopGroupRef string) *Stop {
	if otherTransportTypes == nil {
		otherTransportTypes = []TransportType{}
	}

	return &Stop{
		PrimaryIdentifier:    identifier,
		PrimaryName:          name,
		TransportType:        transportType,
		OtherTransportTypes:  otherTransportTypes,
		ParentStopGroupRef:   parentStopGroupRef,
		NormalisedName:       textnorm.Normalise(name),
		NormalisedIdentifier: textnorm.Normalise(identifier),
	}
}

func (stop *Stop) HasParent() bool {
	return stop.ParentStopGroupRef != ""
}

// MatchesNormalised expects an already normalised search term.
func (stop *Stop) MatchesNormalised(term string) bool {
	return strings.Contains(stop.NormalisedName, term) || strings.Contains(stop.NormalisedIdentifier, term)
}

func (stop *Stop) OtherTransportTypeNames() []string {
	names := make([]string, 0, len(stop.OtherTransportTypes))
	for _, transportType := range stop.OtherTransportTypes {
		names = append(names, transportType.String())
	}

	return names
}

