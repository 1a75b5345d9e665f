package ctdf

import "strings"

const stopGroupNameSeparator = " - "

// StopGroup is every Stop sharing one parent station (a NeTEx StopPlace).
type StopGroup struct {
	PrimaryIdentifier string `groups:"basic"`
	Name              string `groups:"basic"`

	Stops []*Stop `groups:"detailed"`
}

// StopGroupNameFromStop derives the station name from a platform name such as
// "Central Station - Platform 2".
func StopGroupNameFromStop(stop *Stop) string {
	name, _, _ := strings.Cut(stop.PrimaryName, stopGroupNameSeparator)

	return name
}
