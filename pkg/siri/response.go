package siri

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/departures/pkg/ctdf"
	"golang.org/x/net/html/charset"
)

var ErrInvalidResponse = errors.New("invalid SIRI response format")

type Response struct {
	XMLName xml.Name `xml:"Siri"`

	ServiceDelivery *ServiceDelivery
}

type ServiceDelivery struct {
	ResponseTimestamp string
	ProducerRef       string

	StopMonitoringDeliveries []*StopMonitoringDelivery `xml:"StopMonitoringDelivery"`
}

type StopMonitoringDelivery struct {
	Version           string `xml:"version,attr"`
	ResponseTimestamp string

	Status         string
	ErrorCondition *ErrorCondition

	MonitoredStopVisits []*MonitoredStopVisit `xml:"MonitoredStopVisit"`
}

// Failed is true only for an explicit false status, a missing Status element
// is treated as success.
func (d *StopMonitoringDelivery) Failed() bool {
	return strings.EqualFold(strings.TrimSpace(d.Status), "false")
}

type ErrorCondition struct {
	Errors      []ErrorDetail `xml:",any"`
	Description string
}

type ErrorDetail struct {
	XMLName   xml.Name
	ErrorText string
}

func (e *ErrorCondition) Error() string {
	var parts []string

	for _, detail := range e.Errors {
		if detail.XMLName.Local == "Description" {
			continue
		}

		if detail.ErrorText != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", detail.XMLName.Local, detail.ErrorText))
		} else {
			parts = append(parts, detail.XMLName.Local)
		}
	}

	if e.Description != "" {
		parts = append(parts, e.Description)
	}

	if len(parts) == 0 {
		return "unspecified error condition"
	}

	return strings.Join(parts, "; ")
}

type MonitoredStopVisit struct {
	RecordedAtTime string
	MonitoringRef  string
	ItemIdentifier string

	MonitoredVehicleJourney MonitoredVehicleJourney
}

type MonitoredVehicleJourney struct {
	LineRef           string
	DirectionRef      string
	PublishedLineName []NaturalLanguageString
	DestinationName   []NaturalLanguageString
	OperatorRef       string

	MonitoredCall MonitoredCall
}

type NaturalLanguageString struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

type MonitoredCall struct {
	StopPointRef  string
	StopPointName []NaturalLanguageString

	AimedArrivalTime      string
	ExpectedArrivalTime   string
	AimedDepartureTime    string
	ExpectedDepartureTime string

	ArrivalStatus         string
	DepartureStatus       string
	DeparturePlatformName []NaturalLanguageString
	ArrivalPlatformName   []NaturalLanguageString
}

func firstText(values []NaturalLanguageString) string {
	for _, value := range values {
		if text := strings.TrimSpace(value.Value); text != "" {
			return text
		}
	}

	return ""
}

func ParseResponse(reader io.Reader) (*Response, error) {
	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel

	var response Response
	if err := d.Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding SIRI response: %w", err)
	}

	if response.ServiceDelivery == nil {
		return nil, ErrInvalidResponse
	}

	return &response, nil
}

// ToCTDF flattens every delivery into departure records in response order.
// The first failed delivery turns into an error.
func (r *Response) ToCTDF() ([]*ctdf.DepartureBoard, error) {
	var departures []*ctdf.DepartureBoard

	for _, delivery := range r.ServiceDelivery.StopMonitoringDeliveries {
		if delivery.Failed() {
			if delivery.ErrorCondition != nil {
				return nil, fmt.Errorf("stop monitoring delivery failed: %w", delivery.ErrorCondition)
			}

			return nil, errors.New("stop monitoring delivery failed")
		}

		for _, visit := range delivery.MonitoredStopVisits {
			departures = append(departures, visit.ToCTDF())
		}
	}

	return departures, nil
}

func (v *MonitoredStopVisit) ToCTDF() *ctdf.DepartureBoard {
	journey := v.MonitoredVehicleJourney
	call := journey.MonitoredCall

	aimedTime := parseTime(call.AimedDepartureTime)
	expectedTime := parseTime(call.ExpectedDepartureTime)
	if aimedTime == nil && expectedTime == nil {
		aimedTime = parseTime(call.AimedArrivalTime)
		expectedTime = parseTime(call.ExpectedArrivalTime)
	}

	recordType := ctdf.DepartureBoardRecordTypeScheduled
	if expectedTime != nil {
		recordType = ctdf.DepartureBoardRecordTypeRealtimeTracked
	}
	if strings.EqualFold(call.DepartureStatus, "cancelled") || strings.EqualFold(call.ArrivalStatus, "cancelled") {
		recordType = ctdf.DepartureBoardRecordTypeCancelled
	}

	platform := firstText(call.DeparturePlatformName)
	if platform == "" {
		platform = firstText(call.ArrivalPlatformName)
	}

	stopRef := strings.TrimSpace(call.StopPointRef)
	if stopRef == "" {
		stopRef = strings.TrimSpace(v.MonitoringRef)
	}

	return &ctdf.DepartureBoard{
		LineRef:            strings.TrimSpace(journey.LineRef),
		LineName:           firstText(journey.PublishedLineName),
		DirectionRef:       strings.TrimSpace(journey.DirectionRef),
		DestinationDisplay: firstText(journey.DestinationName),
		Type:               recordType,
		StopRef:            stopRef,
		Platform:           platform,
		AimedTime:          aimedTime,
		ExpectedTime:       expectedTime,
	}
}

// parseTime returns nil for missing or unparseable timestamps.
func parseTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Debug().Err(err).Str("value", value).Msg("Unparseable SIRI timestamp")
		return nil
	}

	return &parsed
}
