package netex

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/departures/pkg/ctdf"
)

// PublicationDelivery holds the members of a NeTEx document that matter for
// stop lookup. Quays and StopPlaces are always slices regardless of how many
// elements the document contained.
type PublicationDelivery struct {
	Version              string
	PublicationTimestamp string

	// MembersFound is false when no GeneralFrame members container was seen.
	MembersFound bool

	Quays      []*Quay
	StopPlaces []*StopPlace
}

// ToCTDF converts every Quay into a Stop in document order, resolving the
// parent StopPlace through the SiteRef cross-reference.
func (doc *PublicationDelivery) ToCTDF() []*ctdf.Stop {
	stopPlaces := doc.stopPlacesByID()
	stops := make([]*ctdf.Stop, 0, len(doc.Quays))

	var unresolved int

	for _, quay := range doc.Quays {
		stopPlace := stopPlaces[quay.SiteRef.Ref]

		if stopPlace == nil && quay.SiteRef.Ref != "" {
			unresolved += 1
			log.Debug().Str("quay", quay.ID).Str("ref", quay.SiteRef.Ref).Msg("Quay SiteRef does not match any StopPlace")
		}

		stops = append(stops, quay.ToCTDF(stopPlace))
	}

	if unresolved > 0 {
		log.Warn().Int("count", unresolved).Msg("Quays with an unresolved StopPlace reference")
	}

	return stops
}

// The first StopPlace with a given id wins, same as a linear scan would.
func (doc *PublicationDelivery) stopPlacesByID() map[string]*StopPlace {
	stopPlaces := make(map[string]*StopPlace, len(doc.StopPlaces))

	for _, stopPlace := range doc.StopPlaces {
		if stopPlace.ID == "" {
			continue
		}

		if _, exists := stopPlaces[stopPlace.ID]; !exists {
			stopPlaces[stopPlace.ID] = stopPlace
		}
	}

	return stopPlaces
}
