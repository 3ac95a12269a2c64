package bracket

import "fmt"

type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideCenter Side = "center"
)

type LayoutConfig struct {
	CardHeight float64
	CardGap    float64
	// Top of the final when the bracket is a single match (2 participants)
	DirectFinalTop float64
}

func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		CardHeight:     120,
		CardGap:        40,
		DirectFinalTop: 0,
	}
}

// Position is a view annotation for one match card. Column counts from the
// left edge of the whole bracket, so the right half is mirrored.
type Position struct {
	Side   Side    `json:"side" yaml:"side"`
	Column int     `json:"column" yaml:"column"`
	Top    float64 `json:"top" yaml:"top"`
	Center float64 `json:"center" yaml:"center"`
}

type Diagnostic struct {
	MatchID int    `json:"matchId" yaml:"matchId"`
	Side    Side   `json:"side" yaml:"side"`
	Round   int    `json:"round" yaml:"round"`
	Message string `json:"message" yaml:"message"`
}

// PositionSide lays out one half of the bracket. rounds[0] is the first round
// drawn on this side; every later match is centered between its two parents
// (2m and 2m+1 of the previous round), or on its only parent after a bye.
func PositionSide(side Side, rounds [][]Match, cfg LayoutConfig) (map[int]Position, []Diagnostic) {
	positions := make(map[int]Position)
	var diags []Diagnostic

	// Leading empty rounds happen when a side only joins the draw later
	start := 0
	for start < len(rounds) && len(rounds[start]) == 0 {
		start++
	}

	var prevTops []*float64
	for r := start; r < len(rounds); r++ {
		tops := make([]*float64, len(rounds[r]))

		for m, match := range rounds[r] {
			var top float64
			if r == start {
				top = float64(m) * (cfg.CardHeight + cfg.CardGap)
			} else {
				p1 := parentTop(prevTops, 2*m)
				if p1 == nil {
					diags = append(diags, Diagnostic{
						MatchID: match.ID,
						Side:    side,
						Round:   match.Round,
						Message: fmt.Sprintf("parent position %d not found", 2*m),
					})
					continue
				}
				p2 := parentTop(prevTops, 2*m+1)
				if p2 == nil {
					p2 = p1
				}
				// (p1 + p2 + H)/2 is the midpoint of both card spans, minus H/2 for the top edge
				top = (*p1+*p2+cfg.CardHeight)/2 - cfg.CardHeight/2
			}

			tops[m] = &top
			positions[match.ID] = Position{
				Side:   side,
				Column: r,
				Top:    top,
				Center: top + cfg.CardHeight/2,
			}
		}

		prevTops = tops
	}

	return positions, diags
}

func parentTop(tops []*float64, idx int) *float64 {
	if idx < 0 || idx >= len(tops) {
		return nil
	}
	return tops[idx]
}

type LayoutRound struct {
	Round  int    `json:"round" yaml:"round"`
	Name   string `json:"name" yaml:"name"`
	Left   []int  `json:"left" yaml:"left"`
	Right  []int  `json:"right" yaml:"right"`
	Center []int  `json:"center" yaml:"center"`
}

type Layout struct {
	TotalRounds      int              `json:"totalRounds" yaml:"totalRounds"`
	ParticipantCount int              `json:"participantCount" yaml:"participantCount"`
	Rounds           []LayoutRound    `json:"rounds" yaml:"rounds"`
	Positions        map[int]Position `json:"positions" yaml:"positions"`
	Diagnostics      []Diagnostic     `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// ComputeLayout positions every match of a bracket. It never mutates the matches.
func ComputeLayout(b Bracket, cfg LayoutConfig) Layout {
	participantCount := b.ParticipantCount()
	totalRounds := TotalRounds(participantCount, b.Matches)
	rounds, _ := ByRound(b.Matches)

	layout := Layout{
		TotalRounds:      totalRounds,
		ParticipantCount: participantCount,
		Rounds:           make([]LayoutRound, 0, totalRounds),
		Positions:        make(map[int]Position),
	}
	if totalRounds == 0 {
		return layout
	}

	split := Split(b.Matches, totalRounds, participantCount)
	var left, right [][]Match
	for _, sr := range split {
		lr := LayoutRound{
			Round:  sr.Round,
			Name:   RoundName(sr.Round, totalRounds, participantCount, rounds[sr.Round]),
			Left:   matchIDs(sr.Left),
			Right:  matchIDs(sr.Right),
			Center: []int{},
		}
		if sr.Round == totalRounds {
			lr.Center = matchIDs(rounds[sr.Round])
		} else {
			left = append(left, sr.Left)
			right = append(right, sr.Right)
		}
		layout.Rounds = append(layout.Rounds, lr)
	}

	leftPos, leftDiags := PositionSide(SideLeft, left, cfg)
	rightPos, rightDiags := PositionSide(SideRight, right, cfg)
	layout.Diagnostics = append(leftDiags, rightDiags...)

	finalColumn := totalRounds - 1
	for id, p := range leftPos {
		layout.Positions[id] = p
	}
	for id, p := range rightPos {
		p.Column = 2*finalColumn - p.Column
		layout.Positions[id] = p
	}

	finalTop := cfg.DirectFinalTop
	if totalRounds > 1 {
		var centers []float64
		if c, ok := lastCenter(left, leftPos); ok {
			centers = append(centers, c)
		}
		if c, ok := lastCenter(right, rightPos); ok {
			centers = append(centers, c)
		}
		if len(centers) > 0 {
			finalTop = average(centers) - cfg.CardHeight/2
		}
	}

	for i, m := range rounds[totalRounds] {
		top := finalTop + float64(i)*(cfg.CardHeight+cfg.CardGap)
		layout.Positions[m.ID] = Position{
			Side:   SideCenter,
			Column: finalColumn,
			Top:    top,
			Center: top + cfg.CardHeight/2,
		}
	}

	return layout
}

// lastCenter averages the centers of the deepest positioned round of a side.
func lastCenter(rounds [][]Match, positions map[int]Position) (float64, bool) {
	for r := len(rounds) - 1; r >= 0; r-- {
		var centers []float64
		for _, m := range rounds[r] {
			if p, ok := positions[m.ID]; ok {
				centers = append(centers, p.Center)
			}
		}
		if len(centers) > 0 {
			return average(centers), true
		}
	}
	return 0, false
}

func average(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func matchIDs(matches []Match) []int {
	ids := make([]int, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	return ids
}
