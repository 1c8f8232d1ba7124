package main

import (
	"fmt"
	"strings"

	"github.com/revelaction/relex/render"

	"github.com/urfave/cli/v2"
)

// Flag constructors shared by the commands. Every command declares its
// own instances, urfave/cli flags are not reusable across commands.

func docPathFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "doc-path",
		Aliases: []string{"d"},
		Usage:   "Path to the doc storage, a directory of JSON exports or a sqlite file",
		EnvVars: []string{"RELEX_DOC_PATH"},
	}
}

func patternPathFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "pattern-path",
		Aliases: []string{"p"},
		Usage:   "Path to the pattern storage, a directory of JSON files or a sqlite file",
		EnvVars: []string{"RELEX_PATTERN_PATH"},
	}
}

func noColorFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "no-color",
		Aliases: []string{"c"},
		Usage:   "Show matched sentences without color",
	}
}

func noPrefixFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "no-prefix",
		Aliases: []string{"x"},
		Usage:   "Show matched sentences without the metadata prefix",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Show the whole sentence (all), the span surroundings (part), only the spans (span) or span counts (aggr)",
		Action: func(ctx *cli.Context, v string) error {
			for _, f := range render.SupportedFormats() {
				if f == v {
					return nil
				}
			}

			return fmt.Errorf("unsupported format %q, allowed: %s", v, strings.Join(render.SupportedFormats(), ", "))
		},
	}
}

func nmatchesFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "nmatches",
		Aliases: []string{"n"},
		Usage:   "Only show sentences with at least this many matched spans",
	}
}

func labelFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "label",
		Aliases: []string{"l"},
		Usage:   "Only scan docs whose labels contain every given label",
	}
}

func jsonFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "json",
		Aliases: []string{"j"},
		Usage:   "Write results as JSON",
	}
}
