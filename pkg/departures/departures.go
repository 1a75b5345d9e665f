// Package departures wires configuration, stop loading, interactive
// resolution and the SIRI client into the command line actions.
package departures

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/departures/pkg/config"
	"github.com/travigo/departures/pkg/display"
	"github.com/travigo/departures/pkg/netex"
	"github.com/travigo/departures/pkg/prompt"
	"github.com/travigo/departures/pkg/resolver"
	"github.com/travigo/departures/pkg/siri"
	"github.com/travigo/departures/pkg/stopindex"
	"github.com/travigo/departures/pkg/util"
	"github.com/urfave/cli/v2"
)

// NewPrompter builds the interactive prompt, swapped out in tests.
var NewPrompter = func(cfg config.Config) resolver.Prompter {
	return prompt.NewTerminal(cfg.PageSize)
}

func loadConfig(c *cli.Context) (config.Config, error) {
	return config.Load(config.Source{
		File: c.String("config"),
		Overrides: []func(*config.Config){
			func(cfg *config.Config) {
				if c.IsSet("limit") {
					cfg.Limit = c.Int("limit")
				}
				if c.IsSet("preview") {
					cfg.PreviewInterval = c.String("preview")
				}
				if c.IsSet("where") {
					cfg.StopFilter = c.String("where")
				}
				if c.IsSet("netex") {
					cfg.NetexFile = c.String("netex")
				}
			},
		},
	})
}

func loadIndex(cfg config.Config) (*stopindex.Index, error) {
	stops, err := netex.LoadFile(cfg.NetexFile)
	if err != nil {
		return nil, err
	}

	index := stopindex.New(stops)

	if cfg.StopFilter != "" {
		index, err = index.Where(cfg.StopFilter)
		if err != nil {
			return nil, err
		}

		log.Info().Str("filter", cfg.StopFilter).Int("stops", index.Len()).Msg("Filtered stops")
	}

	return index, nil
}

func departuresAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	format := c.String("format")
	if format != display.FormatText && format != display.FormatJSON {
		return fmt.Errorf("unsupported output format %q, expected text or json", format)
	}

	stopRefs := util.SplitList(c.StringSlice("stop"))

	if c.Bool("find") || len(stopRefs) == 0 {
		index, err := loadIndex(cfg)
		if err != nil {
			return err
		}

		strategy := resolver.ForMode(c.Bool("multi"), NewPrompter(cfg))

		stopRefs, err = strategy.Resolve(c.Context, index)
		if err != nil {
			return err
		}

		if len(stopRefs) == 0 {
			log.Info().Msg("No stop chosen")
			return nil
		}
	}

	log.Info().Strs("stops", stopRefs).Int("limit", cfg.Limit).Msg("Requesting departures")

	client := siri.NewClient(cfg, nil)
	results := client.Departures(c.Context, stopRefs, cfg.Limit)

	return display.Departures(c.App.Writer, results, format)
}

func stopsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	index, err := loadIndex(cfg)
	if err != nil {
		return err
	}

	stops := index.FilterStops(c.Args().First())

	return display.Stops(c.App.Writer, stops, c.String("format"))
}
