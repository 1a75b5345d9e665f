package stopindex

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/departures/pkg/ctdf"
	"github.com/travigo/departures/pkg/util"
)

// filterEnv is what a stop filter expression sees. Plain strings keep
// comparisons against literals working.
type filterEnv struct {
	Identifier          string
	Name                string
	TransportType       string
	OtherTransportTypes []string
	Parent              string
	HasParent           bool
}

func newFilterEnv(stop *ctdf.Stop) filterEnv {
	return filterEnv{
		Identifier:          stop.PrimaryIdentifier,
		Name:                stop.PrimaryName,
		TransportType:       stop.TransportType.String(),
		OtherTransportTypes: stop.OtherTransportTypeNames(),
		Parent:              stop.ParentStopGroupRef,
		HasParent:           stop.HasParent(),
	}
}

// Where returns a new Index holding only the stops for which expression
// evaluates to true, eg. `TransportType == "tram" || "ferry" in OtherTransportTypes`.
// An empty expression returns the receiver unchanged.
func (index *Index) Where(expression string) (*Index, error) {
	if expression == "" {
		return index, nil
	}

	program, err := expr.Compile(expression, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling stop filter: %w", err)
	}

	var evalErr error
	stops := index.All()

	util.InPlaceFilter(&stops, func(stop *ctdf.Stop) bool {
		matches, err := runFilter(program, stop)
		if err != nil && evalErr == nil {
			evalErr = err
		}

		return matches
	})

	if evalErr != nil {
		return nil, fmt.Errorf("evaluating stop filter: %w", evalErr)
	}

	log.Debug().Str("filter", expression).Int("before", index.Len()).Int("after", len(stops)).Msg("Applied stop filter")

	return New(stops), nil
}

func runFilter(program *vm.Program, stop *ctdf.Stop) (bool, error) {
	output, err := expr.Run(program, newFilterEnv(stop))
	if err != nil {
		return false, err
	}

	return output.(bool), nil
}
