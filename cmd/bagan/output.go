package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/api"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/service"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func write(cCtx *cli.Context, v any) error {
	w := cCtx.App.Writer
	if cCtx.String(formatFlag) == formatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}

	yamlEncoder := yaml.NewEncoder(w)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(v); err != nil {
		return fmt.Errorf("encoding to YAML failed: %w", err)
	}
	if err := yamlEncoder.Close(); err != nil {
		return fmt.Errorf("encoding to YAML failed on close: %w", err)
	}
	return nil
}

// confirm asks before an irreversible operation unless --yes was given.
func confirm(cCtx *cli.Context, question string) (bool, error) {
	if cCtx.Bool(yesFlag) {
		return true, nil
	}

	fmt.Fprintf(cCtx.App.ErrWriter, "%s [y/N]: ", question)
	line, err := bufio.NewReader(cCtx.App.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

type matchView struct {
	ID     int                `json:"id" yaml:"id"`
	Side   bracket.Side       `json:"side,omitempty" yaml:"side,omitempty"`
	Column int                `json:"column" yaml:"column"`
	Top    float64            `json:"top" yaml:"top"`
	State  bracket.MatchState `json:"state" yaml:"state"`
	A      string             `json:"a,omitempty" yaml:"a,omitempty"`
	B      string             `json:"b,omitempty" yaml:"b,omitempty"`
	ScoreA int                `json:"scoreA" yaml:"scoreA"`
	ScoreB int                `json:"scoreB" yaml:"scoreB"`
	Queue  *int               `json:"queue,omitempty" yaml:"queue,omitempty"`
	Court  *int               `json:"court,omitempty" yaml:"court,omitempty"`
	Date   string             `json:"date,omitempty" yaml:"date,omitempty"`
}

type roundView struct {
	Round   int         `json:"round" yaml:"round"`
	Name    string      `json:"name" yaml:"name"`
	Matches []matchView `json:"matches" yaml:"matches"`
}

type bracketView struct {
	Generated    bool                 `json:"generated" yaml:"generated"`
	Participants int                  `json:"participants,omitempty" yaml:"participants,omitempty"`
	MatchDate    string               `json:"matchDate,omitempty" yaml:"matchDate,omitempty"`
	Rounds       []roundView          `json:"rounds,omitempty" yaml:"rounds,omitempty"`
	Standings    *bracket.Standings   `json:"standings,omitempty" yaml:"standings,omitempty"`
	Diagnostics  []bracket.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func newBracketView(session *service.BracketSession, cfg bracket.LayoutConfig) bracketView {
	b := session.Bracket()
	if b == nil {
		return bracketView{Generated: false}
	}

	layout := session.Layout(cfg)
	standings := session.Standings()
	view := bracketView{
		Generated:    true,
		Participants: layout.ParticipantCount,
		Standings:    &standings,
		Diagnostics:  layout.Diagnostics,
	}
	if date := session.MatchDate(); date != nil {
		view.MatchDate = api.FormatDate(*date)
	}

	rounds, _ := bracket.ByRound(b.Matches)
	for _, lr := range layout.Rounds {
		rv := roundView{Round: lr.Round, Name: lr.Name, Matches: []matchView{}}
		for _, m := range rounds[lr.Round] {
			rv.Matches = append(rv.Matches, newMatchView(m, layout.Positions[m.ID]))
		}
		view.Rounds = append(view.Rounds, rv)
	}
	return view
}

func newMatchView(m bracket.Match, pos bracket.Position) matchView {
	view := matchView{
		ID:     m.ID,
		Side:   pos.Side,
		Column: pos.Column,
		Top:    pos.Top,
		State:  m.State(),
		ScoreA: m.ScoreA,
		ScoreB: m.ScoreB,
		Queue:  m.Schedule.QueueNumber,
		Court:  m.Schedule.CourtNumber,
	}
	if m.ParticipantA != nil {
		view.A = m.ParticipantA.DisplayName
	}
	if m.ParticipantB != nil {
		view.B = m.ParticipantB.DisplayName
	}
	if m.Schedule.Date != nil {
		view.Date = api.FormatDate(*m.Schedule.Date)
	}
	return view
}
