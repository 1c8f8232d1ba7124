package main

import (
	"fmt"
	"io"
	"os"

	"github.com/revelaction/relex/config"

	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// App carries the state shared by all commands: the output streams,
// the loaded configuration and the lazily opened sqlite pool.
type App struct {
	ui   UI
	cfg  *config.Config
	pool *Pool
}

func NewApp(ui UI) *App {
	return &App{
		ui:   ui,
		cfg:  config.Default(),
		pool: &Pool{},
	}
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	app := NewApp(ui)
	if err := app.Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "relex: %v\n", err)
}

// Run builds the command tree and executes it.
func (a *App) Run(args []string) error {
	app := &cli.App{
		Name:      "relex",
		Usage:     "Hypernym and relation extraction over annotated sentence corpora",
		Version:   BuildTag,
		Writer:    a.ui.Out,
		ErrWriter: a.ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML config file",
				EnvVars: []string{"RELEX_CONFIG"},
			},
		},
		Before: func(ctx *cli.Context) error {
			cfg, err := config.Load(ctx.String("config"))
			if err != nil {
				return err
			}

			a.cfg = cfg
			setupLogging(a.ui.Err, cfg.Logging)
			return nil
		},
		After: func(ctx *cli.Context) error {
			return a.pool.Close()
		},
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			a.docCommand(),
			a.labelsCommand(),
			a.sentenceCommand(),
			a.exprCommand(),
			a.hyperCommand(),
			a.patternsCommand(),
			a.patternCommand(),
			a.relCommand(),
			a.queryCommand(),
			a.editCommand(),
			a.statCommand(),
			a.importDocCommand(),
			a.exportDocCommand(),
			a.importPatternCommand(),
			a.exportPatternCommand(),
			a.migrateCommand(),
			a.versionCommand(),
		},
	}

	return app.Run(args)
}
