package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/travigo/departures/pkg/ctdf"
)

type stopRow struct {
	Identifier    string `csv:"identifier"`
	Name          string `csv:"name"`
	TransportType string `csv:"transport_type"`
	Connections   string `csv:"connections"`
	Parent        string `csv:"parent"`
}

func newStopRow(stop *ctdf.Stop) *stopRow {
	return &stopRow{
		Identifier:    stop.PrimaryIdentifier,
		Name:          stop.PrimaryName,
		TransportType: stop.TransportType.String(),
		Connections:   strings.Join(stop.OtherTransportTypeNames(), " "),
		Parent:        stop.ParentStopGroupRef,
	}
}

func Stops(w io.Writer, stops []*ctdf.Stop, format string) error {
	rows := make([]*stopRow, 0, len(stops))
	for _, stop := range stops {
		rows = append(rows, newStopRow(stop))
	}

	switch format {
	case FormatText, "":
		return stopsText(w, rows)
	case FormatCSV:
		if err := gocsv.Marshal(rows, w); err != nil {
			return fmt.Errorf("writing stops CSV: %w", err)
		}
		return nil
	default:
		return unsupportedFormat(format, FormatText, FormatCSV)
	}
}

func stopsText(w io.Writer, rows []*stopRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, row := range rows {
		connections := row.Connections
		if connections == "" {
			connections = "-"
		}
		parent := row.Parent
		if parent == "" {
			parent = "-"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.Identifier, row.Name, row.TransportType, connections, parent)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d stops\n", len(rows))

	return nil
}
