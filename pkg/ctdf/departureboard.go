package ctdf

import "time"

type DepartureBoard struct {
	LineRef            string `groups:"basic"`
	LineName           string `groups:"basic"`
	DirectionRef       string `groups:"detailed"`
	DestinationDisplay string `groups:"basic"`

	Type DepartureBoardRecordType `groups:"basic"`

	StopRef  string `groups:"basic"`
	Platform string `groups:"basic"`

	// nil when the source gave no such time
	AimedTime    *time.Time `json:",omitempty" groups:"basic"`
	ExpectedTime *time.Time `json:",omitempty" groups:"basic"`
}

type DepartureBoardRecordType string

const (
	DepartureBoardRecordTypeScheduled       DepartureBoardRecordType = "Scheduled"
	DepartureBoardRecordTypeRealtimeTracked DepartureBoardRecordType = "RealtimeTracked"
	DepartureBoardRecordTypeCancelled       DepartureBoardRecordType = "Cancelled"
)

// Time is the best known departure time, zero when none is known.
func (departure *DepartureBoard) Time() time.Time {
	if departure.ExpectedTime != nil {
		return *departure.ExpectedTime
	}
	if departure.AimedTime != nil {
		return *departure.AimedTime
	}

	return time.Time{}
}

// Delay is zero unless both aimed and expected times are known.
func (departure *DepartureBoard) Delay() time.Duration {
	if departure.AimedTime == nil || departure.ExpectedTime == nil {
		return 0
	}

	return departure.ExpectedTime.Sub(*departure.AimedTime)
}
