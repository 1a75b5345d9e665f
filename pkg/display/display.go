// Package display renders departures and stop listings to the console.
package display

import (
	"fmt"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

const timeLayout = "15:04:05"

func unsupportedFormat(format string, supported ...string) error {
	return fmt.Errorf("unsupported output format %q, expected one of %s", format, strings.Join(supported, ", "))
}
