package netex

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/travigo/departures/pkg/ctdf"
)

// Load parses a NeTEx document and returns its quays as Stops in document order.
// A document without a members container yields no stops and no error.
func Load(reader io.Reader) ([]*ctdf.Stop, error) {
	doc := PublicationDelivery{}

	if err := doc.ParseFile(reader); err != nil {
		return nil, err
	}

	return doc.ToCTDF(), nil
}

func LoadFile(path string) ([]*ctdf.Stop, error) {
	log.Info().Str("path", path).Msg("Loading stops")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening NeTEx file: %w", err)
	}
	defer file.Close()

	stops, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("reading NeTEx file %s: %w", path, err)
	}

	log.Info().Int("stops", len(stops)).Msg("Stops loaded")

	return stops, nil
}
