package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/api"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/config"
	fxmodules "github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/fx"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/logger"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/server"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/service"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/utils"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

var errMissingIDs = errors.New("--kompetisi and --kelas are required")

func loadConfig(cCtx *cli.Context) (*config.Config, zerolog.Logger, error) {
	log := logger.Console(cCtx.String(logLevelFlag))
	cfg, err := config.Load(log)
	if err != nil {
		return nil, log, err
	}
	applyFlags(cCtx, cfg)
	return cfg, log, nil
}

// applyFlags lets command line flags win over the environment.
func applyFlags(cCtx *cli.Context, cfg *config.Config) {
	if cCtx.IsSet(apiURLFlag) {
		cfg.APIBaseURL = strings.TrimRight(cCtx.String(apiURLFlag), "/")
	}
	if cCtx.IsSet(tokenFlag) {
		cfg.APIToken = cCtx.String(tokenFlag)
	}
}

// openSession loads the bracket named by --kompetisi and --kelas.
func openSession(cCtx *cli.Context) (*service.BracketSession, *config.Config, error) {
	kompetisiID, kelasID := cCtx.Int(kompetisiFlag), cCtx.Int(kelasFlag)
	if kompetisiID <= 0 || kelasID <= 0 {
		return nil, nil, errMissingIDs
	}

	cfg, log, err := loadConfig(cCtx)
	if err != nil {
		return nil, nil, err
	}

	session := service.NewBracketSession(api.NewClient(cfg, log), kompetisiID, kelasID, log)
	if _, err := session.Load(cCtx.Context); err != nil {
		session.Close()
		return nil, nil, err
	}
	return session, cfg, nil
}

// mutate loads the session, runs op and prints its notice.
func mutate(cCtx *cli.Context, op func(*service.BracketSession) (service.Notice, error)) error {
	session, _, err := openSession(cCtx)
	if err != nil {
		return err
	}
	defer session.Close()

	notice, err := op(session)
	if err != nil {
		return err
	}
	return write(cCtx, notice)
}

func parseSeparation(mode string) (*api.DojangSeparation, error) {
	switch strings.ToUpper(strings.TrimSpace(mode)) {
	case "":
		return nil, nil
	case string(api.SeparationStrict):
		return &api.DojangSeparation{Enabled: true, Mode: api.SeparationStrict}, nil
	case string(api.SeparationBalanced):
		return &api.DojangSeparation{Enabled: true, Mode: api.SeparationBalanced}, nil
	}
	return nil, fmt.Errorf("unknown dojang separation mode %q, use strict or balanced", mode)
}

func matchFlagDef() cli.Flag {
	return &cli.IntFlag{
		Name:     matchFlag,
		Aliases:  []string{"m"},
		Usage:    "Match ID",
		Required: true,
	}
}

func separationFlagDef() cli.Flag {
	return &cli.StringFlag{
		Name:  separationFlag,
		Usage: "Keep athletes of the same dojang apart: strict or balanced",
	}
}

func yesFlagDef() cli.Flag {
	return &cli.BoolFlag{
		Name:    yesFlag,
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the bracket laid out round by round",
		Action: func(cCtx *cli.Context) error {
			session, cfg, err := openSession(cCtx)
			if err != nil {
				return err
			}
			defer session.Close()
			return write(cCtx, newBracketView(session, cfg.Layout))
		},
	}
}

func standingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "Print the podium of a decided bracket",
		Action: func(cCtx *cli.Context) error {
			session, _, err := openSession(cCtx)
			if err != nil {
				return err
			}
			defer session.Close()
			if session.Bracket() == nil {
				return write(cCtx, bracketView{Generated: false})
			}
			return write(cCtx, session.Standings())
		},
	}
}

type structureView struct {
	bracket.RoundStructure `yaml:",inline"`
	Names                  []string `json:"roundNames" yaml:"roundNames"`
}

func structureCommand() *cli.Command {
	return &cli.Command{
		Name:      "structure",
		Usage:     "Print the rounds a bracket of N participants will have",
		ArgsUsage: "N",
		Action: func(cCtx *cli.Context) error {
			count, err := strconv.Atoi(cCtx.Args().First())
			if err != nil || count < 0 {
				return fmt.Errorf("expected a participant count, got %q", cCtx.Args().First())
			}

			rs := bracket.Structure(count)
			view := structureView{RoundStructure: rs, Names: []string{}}
			for round := 1; round <= rs.TotalRounds; round++ {
				view.Names = append(view.Names, bracket.RoundName(round, rs.TotalRounds, count, nil))
			}
			return write(cCtx, view)
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate the bracket, or show the existing one",
		Flags: []cli.Flag{
			separationFlagDef(),
			&cli.StringFlag{
				Name:  "bye",
				Usage: "Comma separated participant IDs that receive a bye",
			},
		},
		Action: func(cCtx *cli.Context) error {
			separation, err := parseSeparation(cCtx.String(separationFlag))
			if err != nil {
				return err
			}
			byes, err := utils.ParseIDs(cCtx.String("bye"))
			if err != nil {
				return fmt.Errorf("invalid --bye: %w", err)
			}
			return mutate(cCtx, func(s *service.BracketSession) (service.Notice, error) {
				return s.Generate(cCtx.Context, service.GenerateOptions{
					ByeParticipantIDs: byes,
					DojangSeparation:  separation,
				})
			})
		},
	}
}

func shuffleCommand() *cli.Command {
	return &cli.Command{
		Name:  "shuffle",
		Usage: "Redraw the bracket with new bye assignments",
		Flags: []cli.Flag{
			separationFlagDef(),
			&cli.BoolFlag{
				Name:  "pemula",
				Usage: "Shuffle as a beginner (pemula) class",
			},
		},
		Action: func(cCtx *cli.Context) error {
			separation, err := parseSeparation(cCtx.String(separationFlag))
			if err != nil {
				return err
			}
			return mutate(cCtx, func(s *service.BracketSession) (service.Notice, error) {
				return s.Shuffle(cCtx.Context, service.ShuffleOptions{
					IsPemula:         cCtx.Bool("pemula"),
					DojangSeparation: separation,
				})
			})
		},
	}
}

// confirmed wraps an irreversible command behind a prompt.
func confirmed(question string, op func(*cli.Context, *service.BracketSession) (service.Notice, error)) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		ok, err := confirm(cCtx, question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cCtx.App.ErrWriter, "Aborted")
			return nil
		}
		return mutate(cCtx, func(s *service.BracketSession) (service.Notice, error) {
			return op(cCtx, s)
		})
	}
}

func clearResultsCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear-results",
		Usage: "Reset every score to zero, keeping the draw",
		Flags: []cli.Flag{yesFlagDef()},
		Action: confirmed("Clear all match results?", func(cCtx *cli.Context, s *service.BracketSession) (service.Notice, error) {
			return s.ClearResults(cCtx.Context)
		}),
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete the bracket and all of its matches",
		Flags: []cli.Flag{yesFlagDef()},
		Action: confirmed("Delete the bracket? This cannot be undone.", func(cCtx *cli.Context, s *service.BracketSession) (service.Notice, error) {
			return s.Delete(cCtx.Context)
		}),
	}
}

func clearScheduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear-schedule",
		Usage: "Remove queue, court and date from every match",
		Flags: []cli.Flag{yesFlagDef()},
		Action: confirmed("Clear the match schedule?", func(cCtx *cli.Context, s *service.BracketSession) (service.Notice, error) {
			return s.ClearScheduling(cCtx.Context)
		}),
	}
}

func resultCommand() *cli.Command {
	return &cli.Command{
		Name:  "result",
		Usage: "Record the score and/or schedule of a match",
		Flags: []cli.Flag{
			matchFlagDef(),
			&cli.StringFlag{Name: "score-a", Usage: "Score of slot A"},
			&cli.StringFlag{Name: "score-b", Usage: "Score of slot B"},
			&cli.StringFlag{Name: "queue", Usage: "Queue number (nomor antrian)"},
			&cli.StringFlag{Name: "court", Usage: "Court number (nomor lapangan)"},
			&cli.StringFlag{Name: "date", Usage: "Match date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "winner", Usage: "Winning slot when the scores are level: A or B"},
		},
		Action: func(cCtx *cli.Context) error {
			form, err := service.ParseMatchForm(service.MatchFields{
				ScoreA:      cCtx.String("score-a"),
				ScoreB:      cCtx.String("score-b"),
				QueueNumber: cCtx.String("queue"),
				CourtNumber: cCtx.String("court"),
				Date:        cCtx.String("date"),
				Winner:      strings.ToUpper(cCtx.String("winner")),
			})
			if err != nil {
				return err
			}
			// Reject a bad form before touching the backend
			if err := form.Validate(); err != nil {
				return err
			}
			return mutate(cCtx, func(s *service.BracketSession) (service.Notice, error) {
				return s.UpdateMatch(cCtx.Context, cCtx.Int(matchFlag), form)
			})
		},
	}
}

func assignCommand() *cli.Command {
	return &cli.Command{
		Name:  "assign",
		Usage: "Place a participant into a slot of a match",
		Flags: []cli.Flag{
			matchFlagDef(),
			&cli.StringFlag{Name: "slot", Usage: "A or B", Required: true},
			&cli.IntFlag{Name: "participant", Usage: "Participant ID", Required: true},
		},
		Action: func(cCtx *cli.Context) error {
			slot, err := bracket.ParseSlot(strings.ToUpper(cCtx.String("slot")))
			if err != nil {
				return err
			}
			return mutate(cCtx, func(s *service.BracketSession) (service.Notice, error) {
				return s.Assign(cCtx.Context, cCtx.Int(matchFlag), slot, cCtx.Int("participant"))
			})
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the bracket layout HTTP service",
		Action: func(cCtx *cli.Context) error {
			app := fx.New(
				fxmodules.Module,
				fx.Decorate(func(cfg *config.Config) *config.Config {
					applyFlags(cCtx, cfg)
					return cfg
				}),
				fx.Invoke(server.Register),
			)
			app.Run()
			return nil
		},
	}
}
