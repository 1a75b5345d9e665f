package netex

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

func (doc *PublicationDelivery) ParseFile(reader io.Reader) error {
	doc.Quays = []*Quay{}
	doc.StopPlaces = []*StopPlace{}

	var path []string

	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := d.Token()
		if tok == nil || err == io.EOF {
			// EOF means we're done.
			break
		} else if err != nil {
			return fmt.Errorf("decoding NeTEx token: %w", err)
		}

		switch ty := tok.(type) {
		case xml.StartElement:
			if isMembersContainer(path) {
				if ty.Name.Local == "Quay" {
					var quay Quay

					if err = d.DecodeElement(&quay, &ty); err != nil {
						return fmt.Errorf("decoding Quay: %w", err)
					}
					doc.Quays = append(doc.Quays, &quay)

					continue
				} else if ty.Name.Local == "StopPlace" {
					var stopPlace StopPlace

					if err = d.DecodeElement(&stopPlace, &ty); err != nil {
						return fmt.Errorf("decoding StopPlace: %w", err)
					}
					doc.StopPlaces = append(doc.StopPlaces, &stopPlace)

					// Quays nested in their StopPlace carry no SiteRef of their own
					for _, quay := range stopPlace.Quays {
						if quay.SiteRef.Ref == "" {
							quay.SiteRef.Ref = stopPlace.ID
						}
						doc.Quays = append(doc.Quays, quay)
					}

					continue
				}
			}

			if len(path) == 0 && ty.Name.Local == "PublicationDelivery" {
				for _, attr := range ty.Attr {
					if attr.Name.Local == "version" {
						doc.Version = attr.Value
					}
				}
			}

			path = append(path, ty.Name.Local)

			if isMembersContainer(path) {
				doc.MembersFound = true
			}
		case xml.EndElement:
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
		case xml.CharData:
			if len(path) == 2 && path[0] == "PublicationDelivery" && path[1] == "PublicationTimestamp" {
				doc.PublicationTimestamp = strings.TrimSpace(string(ty))
			}
		default:
		}
	}

	if !doc.MembersFound {
		log.Warn().Msg("Document has no PublicationDelivery/dataObjects/GeneralFrame/members container")
	}

	log.Info().Msgf("Successfully parsed document")
	log.Info().Msgf(" - NeTEx version %s", doc.Version)
	log.Info().Msgf(" - Published %s", doc.PublicationTimestamp)
	log.Info().Msgf(" - Contains %d quays", len(doc.Quays))
	log.Info().Msgf(" - Contains %d stop places", len(doc.StopPlaces))

	return nil
}

// isMembersContainer matches PublicationDelivery/dataObjects/GeneralFrame/members,
// optionally with the GeneralFrame inside CompositeFrame/frames.
func isMembersContainer(path []string) bool {
	n := len(path)
	if n < 4 || path[0] != "PublicationDelivery" || path[1] != "dataObjects" {
		return false
	}
	if path[n-2] != "GeneralFrame" || path[n-1] != "members" {
		return false
	}

	between := path[2 : n-2]
	switch len(between) {
	case 0:
		return true
	case 2:
		return between[0] == "CompositeFrame" && between[1] == "frames"
	default:
		return false
	}
}
