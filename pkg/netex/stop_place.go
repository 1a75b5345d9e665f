package netex

import (
	"strings"

	"github.com/travigo/departures/pkg/ctdf"
)

type StopPlace struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`

	Name                string
	TransportMode       string
	OtherTransportModes string
	StopPlaceType       string

	Quays []*Quay `xml:"quays>Quay"`
}

// OtherTransportTypes splits the space separated OtherTransportModes list,
// keeping document order.
func (orig *StopPlace) OtherTransportTypes() []ctdf.TransportType {
	return ctdf.TransportTypesFromFields(strings.Fields(orig.OtherTransportModes))
}
