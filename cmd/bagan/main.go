package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/api"
	"github.com/urfave/cli/v2"
)

const (
	apiURLFlag     = "api-url"
	tokenFlag      = "token"
	kompetisiFlag  = "kompetisi"
	kelasFlag      = "kelas"
	formatFlag     = "format"
	logLevelFlag   = "log-level"
	yesFlag        = "yes"
	separationFlag = "dojang-separation"
	matchFlag      = "match"
)

var errUnknownFormat = errors.New("unknown output format")

var build string
var semanticVersion = "v0.1.0-dev" + build

func newApp() *cli.App {
	return &cli.App{
		Name:    "bagan",
		Usage:   "Inspect and manage single-elimination taekwondo brackets",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    apiURLFlag,
				Usage:   "Base URL of the competition backend",
				EnvVars: []string{"BAGAN_API_URL"},
			},
			&cli.StringFlag{
				Name:    tokenFlag,
				Usage:   "Bearer token sent to the backend",
				EnvVars: []string{"BAGAN_API_TOKEN"},
			},
			&cli.IntFlag{
				Name:    kompetisiFlag,
				Aliases: []string{"k"},
				Usage:   "Competition ID",
			},
			&cli.IntFlag{
				Name:    kelasFlag,
				Aliases: []string{"c"},
				Usage:   "Competition class (kelas kejuaraan) ID",
			},
			&cli.StringFlag{
				Name:    formatFlag,
				Aliases: []string{"f"},
				Usage:   "Output format: json or yaml",
				Value:   "yaml",
			},
			&cli.StringFlag{
				Name:    logLevelFlag,
				Usage:   "Log level written to stderr",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "warn",
			},
		},
		Before: func(cCtx *cli.Context) error {
			switch cCtx.String(formatFlag) {
			case formatJSON, formatYAML:
				return nil
			}
			return fmt.Errorf("%w %q, use json or yaml", errUnknownFormat, cCtx.String(formatFlag))
		},
		Commands: []*cli.Command{
			showCommand(),
			standingsCommand(),
			structureCommand(),
			generateCommand(),
			shuffleCommand(),
			clearResultsCommand(),
			deleteCommand(),
			clearScheduleCommand(),
			resultCommand(),
			assignCommand(),
			serveCommand(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", api.UserMessage(err))
		stop()
		os.Exit(1)
	}
}
