package netex

import (
	"strings"

	"github.com/travigo/departures/pkg/ctdf"
)

type Quay struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`

	Name          string
	ShortName     string
	PublicCode    string
	TransportMode string

	SiteRef Reference
}

type Reference struct {
	Ref     string `xml:"ref,attr"`
	Version string `xml:"version,attr"`
}

// ToCTDF builds the Stop for this quay. stopPlace is nil when the SiteRef
// could not be resolved.
func (orig *Quay) ToCTDF(stopPlace *StopPlace) *ctdf.Stop {
	var parentRef string
	otherTransportTypes := []ctdf.TransportType{}

	if stopPlace != nil {
		parentRef = stopPlace.ID
		otherTransportTypes = stopPlace.OtherTransportTypes()
	}

	return ctdf.NewStop(
		strings.TrimSpace(orig.ID),
		strings.TrimSpace(orig.Name),
		ctdf.TransportType(strings.TrimSpace(orig.TransportMode)),
		otherTransportTypes,
		parentRef,
	)
}
