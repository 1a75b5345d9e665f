package display

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/liip/sheriff"
	"github.com/travigo/departures/pkg/ctdf"
	"github.com/travigo/departures/pkg/siri"
)

type stopDeparturesOutput struct {
	StopRef    string                 `json:"stop_ref" groups:"basic"`
	Departures []*ctdf.DepartureBoard `json:"departures" groups:"basic"`
	Error      string                 `json:"error,omitempty" groups:"basic"`
}

func Departures(w io.Writer, results []siri.StopDepartures, format string) error {
	switch format {
	case FormatText, "":
		return departuresText(w, results)
	case FormatJSON:
		return departuresJSON(w, results)
	default:
		return unsupportedFormat(format, FormatText, FormatJSON)
	}
}

func departuresText(w io.Writer, results []siri.StopDepartures) error {
	for i, result := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "Stop %s\n", result.StopRef)
		}

		if result.Err != nil {
			fmt.Fprintf(w, "Could not get departures: %s\n", result.Err)
			continue
		}

		if len(result.Departures) == 0 {
			fmt.Fprintln(w, "No departures scheduled for this stop.")
			continue
		}

		fmt.Fprint(w, "\nNext departures:\n\n")

		for _, departure := range result.Departures {
			writeDeparture(w, departure)
		}
	}

	return nil
}

func writeDeparture(w io.Writer, departure *ctdf.DepartureBoard) {
	line := departure.LineRef
	if departure.LineName != "" && departure.LineName != departure.LineRef {
		line = fmt.Sprintf("%s (%s)", departure.LineRef, departure.LineName)
	}

	heading := fmt.Sprintf("Line %s to %s", line, departure.DestinationDisplay)
	if departure.Type == ctdf.DepartureBoardRecordTypeCancelled {
		heading += " (cancelled)"
	}
	fmt.Fprintln(w, heading)

	if departure.ExpectedTime != nil {
		fmt.Fprintf(w, "Expected departure: %s\n", formatTime(*departure.ExpectedTime))
	}
	if departure.AimedTime != nil {
		fmt.Fprintf(w, "Aimed departure: %s\n", formatTime(*departure.AimedTime))
	}
	if departure.Platform != "" {
		fmt.Fprintf(w, "Platform: %s\n", departure.Platform)
	}

	fmt.Fprintln(w, "---")
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

func departuresJSON(w io.Writer, results []siri.StopDepartures) error {
	output := make([]stopDeparturesOutput, 0, len(results))
	for _, result := range results {
		item := stopDeparturesOutput{
			StopRef:    result.StopRef,
			Departures: result.Departures,
		}
		if item.Departures == nil {
			item.Departures = []*ctdf.DepartureBoard{}
		}
		if result.Err != nil {
			item.Error = result.Err.Error()
		}

		output = append(output, item)
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, output)
	if err != nil {
		return fmt.Errorf("reducing departures: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(reduced)
}
