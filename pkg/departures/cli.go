package departures

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/departures/pkg/display"
	"github.com/urfave/cli/v2"
)

func NewApp() *cli.App {
	return &cli.App{
		Name:        "departures",
		Usage:       "Next departures from a SIRI StopMonitoring endpoint",
		Description: "Find a stop in a NeTEx topology file and list its upcoming departures",

		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "stop",
				Aliases: []string{"s"},
				Usage:   "stop identifier to query, repeatable or comma separated",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "maximum number of departures per stop",
			},
			&cli.BoolFlag{
				Name:    "find",
				Aliases: []string{"f"},
				Usage:   "search for a stop interactively",
			},
			&cli.BoolFlag{
				Name:    "multi",
				Aliases: []string{"m"},
				Usage:   "pick a station first, then one or more of its quays",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: display.FormatText,
				Usage: "output format (text or json)",
			},
			&cli.StringFlag{
				Name:  "preview",
				Usage: "ISO-8601 preview interval, eg. PT30M",
			},
			whereFlag(),
			configFlag(),
			netexFlag(),
			debugFlag(),
		},

		Before: setupLogging,
		Action: departuresAction,

		Commands: []*cli.Command{
			RegisterStopsCLI(),
		},
	}
}

func RegisterStopsCLI() *cli.Command {
	return &cli.Command{
		Name:      "stops",
		Usage:     "List the stops loaded from the NeTEx file",
		ArgsUsage: "[search term]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: display.FormatText,
				Usage: "output format (text or csv)",
			},
			whereFlag(),
		},
		Action: stopsAction,
	}
}

func whereFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "where",
		Usage: "only keep stops matching an expression, eg. 'TransportType == \"tram\"'",
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "config",
		Usage: "YAML configuration file",
	}
}

func netexFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "netex",
		Usage: "NeTEx file, overrides NETEX_FILE",
	}
}

func debugFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug logging",
	}
}

func setupLogging(c *cli.Context) error {
	if c.Bool("debug") {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}

	return nil
}
