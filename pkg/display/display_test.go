package display

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/departures/pkg/ctdf"
	"github.com/travigo/departures/pkg/siri"
)

var (
	aimed    = time.Date(2024, 5, 1, 8, 5, 0, 0, time.UTC)
	expected = time.Date(2024, 5, 1, 8, 6, 30, 0, time.UTC)
)

func sampleResults() []siri.StopDepartures {
	return []siri.StopDepartures{
		{
			StopRef: "Q1",
			Departures: []*ctdf.DepartureBoard{
				{
					LineRef:            "T1",
					LineName:           "Tram 1",
					DirectionRef:       "Aller",
					DestinationDisplay: "Gare",
					Type:               ctdf.DepartureBoardRecordTypeRealtimeTracked,
					StopRef:            "Q1",
					Platform:           "A",
					AimedTime:          &aimed,
					ExpectedTime:       &expected,
				},
				{
					LineRef:            "B12",
					DestinationDisplay: "Port",
					Type:               ctdf.DepartureBoardRecordTypeCancelled,
					StopRef:            "Q1",
					AimedTime:          &aimed,
				},
			},
		},
		{StopRef: "Q2"},
		{StopRef: "Q3", Err: errors.New("SIRI endpoint returned 500 Internal Server Error: boom")},
	}
}

func TestDeparturesText(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, Departures(&buffer, sampleResults(), FormatText))

	output := buffer.String()
	assert.Contains(t, output, "Stop Q1\n")
	assert.Contains(t, output, "Line T1 (Tram 1) to Gare\n")
	assert.Contains(t, output, "Expected departure: "+expected.Local().Format("15:04:05")+"\n")
	assert.Contains(t, output, "Aimed departure: "+aimed.Local().Format("15:04:05")+"\n")
	assert.Contains(t, output, "Platform: A\n")
	assert.Contains(t, output, "Line B12 to Port (cancelled)\nAimed departure: ")
	assert.Equal(t, 1, strings.Count(output, "Expected departure: "))
	assert.Equal(t, 2, strings.Count(output, "---\n"))
	assert.Contains(t, output, "Stop Q2\nNo departures scheduled for this stop.\n")
	assert.Contains(t, output, "Stop Q3\nCould not get departures: SIRI endpoint returned 500")
}

func TestDeparturesTextSingleStop(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, Departures(&buffer, []siri.StopDepartures{{StopRef: "Q2"}}, FormatText))

	assert.Equal(t, "No departures scheduled for this stop.\n", buffer.String())
}

func TestDeparturesJSON(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, Departures(&buffer, sampleResults(), FormatJSON))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	require.Len(t, decoded, 3)

	assert.Equal(t, "Q1", decoded[0]["stop_ref"])
	departures := decoded[0]["departures"].([]interface{})
	require.Len(t, departures, 2)

	tram := departures[0].(map[string]interface{})
	assert.Equal(t, "T1", tram["LineRef"])
	assert.Equal(t, "Gare", tram["DestinationDisplay"])
	assert.Equal(t, "RealtimeTracked", tram["Type"])
	assert.Equal(t, "2024-05-01T08:06:30Z", tram["ExpectedTime"])
	assert.NotContains(t, tram, "DirectionRef")

	cancelled := departures[1].(map[string]interface{})
	assert.Equal(t, "Cancelled", cancelled["Type"])
	assert.Equal(t, "2024-05-01T08:05:00Z", cancelled["AimedTime"])
	assert.NotContains(t, cancelled, "ExpectedTime")

	assert.Empty(t, decoded[1]["departures"])
	assert.NotContains(t, decoded[1], "error")
	assert.Contains(t, decoded[2]["error"], "500")
}

func TestDeparturesUnknownFormat(t *testing.T) {
	assert.Error(t, Departures(&bytes.Buffer{}, nil, "yaml"))
}

func sampleStops() []*ctdf.Stop {
	return []*ctdf.Stop{
		ctdf.NewStop("Q1", "Central - A", ctdf.TransportTypeTram, []ctdf.TransportType{ctdf.TransportTypeBus, ctdf.TransportTypeFerry}, "S1"),
		ctdf.NewStop("Q3", "Depot", ctdf.TransportTypeBus, nil, ""),
	}
}

func TestStopsText(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, Stops(&buffer, sampleStops(), FormatText))

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Q1", "Central", "-", "A", "tram", "bus", "ferry", "S1"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Q3", "Depot", "bus", "-", "-"}, strings.Fields(lines[1]))
	assert.Equal(t, "2 stops", lines[2])
}

func TestStopsCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, Stops(&buffer, sampleStops(), FormatCSV))

	var rows []*stopRow
	require.NoError(t, gocsv.UnmarshalString(buffer.String(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "identifier,name,transport_type,connections,parent", strings.SplitN(buffer.String(), "\n", 2)[0])
	assert.Equal(t, &stopRow{Identifier: "Q1", Name: "Central - A", TransportType: "tram", Connections: "bus ferry", Parent: "S1"}, rows[0])
	assert.Equal(t, &stopRow{Identifier: "Q3", Name: "Depot", TransportType: "bus"}, rows[1])
}

func TestStopsUnknownFormat(t *testing.T) {
	assert.Error(t, Stops(&bytes.Buffer{}, sampleStops(), FormatJSON))
}
