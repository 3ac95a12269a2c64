package bracket

type Placement struct {
	ParticipantID int    `json:"participantId" yaml:"participantId"`
	Name          string `json:"name" yaml:"name"`
	Dojo          string `json:"dojo" yaml:"dojo"`
}

func placementOf(p *Participant) Placement {
	return Placement{ParticipantID: p.ID, Name: p.DisplayName, Dojo: p.DojoName}
}

// Standings is the podium of a bracket. Both semifinal losers share bronze.
type Standings struct {
	First  *Placement  `json:"first" yaml:"first"`
	Second []Placement `json:"second" yaml:"second"`
	Third  []Placement `json:"third" yaml:"third"`
	// Decided matches with level scores and no recorded winner
	Unresolved []int `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

func (s Standings) Empty() bool {
	return s.First == nil && len(s.Second) == 0 && len(s.Third) == 0
}

func DeriveStandings(matches []Match, totalRounds int) Standings {
	standings := Standings{Second: []Placement{}, Third: []Placement{}}
	if totalRounds < 1 {
		return standings
	}

	rounds, _ := ByRound(matches)
	finals := rounds[totalRounds]
	if len(finals) == 0 {
		return standings
	}

	final := finals[0]
	if !final.Decided() {
		return standings
	}

	winner, err := final.Winner()
	if err != nil {
		standings.Unresolved = append(standings.Unresolved, final.ID)
		return standings
	}

	placed := make(map[int]struct{})
	if winner != nil {
		p := placementOf(winner)
		standings.First = &p
		placed[winner.ID] = struct{}{}
	}
	if loser, _ := final.Loser(); loser != nil {
		if _, ok := placed[loser.ID]; !ok {
			standings.Second = append(standings.Second, placementOf(loser))
			placed[loser.ID] = struct{}{}
		}
	}

	// Semifinal losers only ever get bronze
	for _, semi := range rounds[totalRounds-1] {
		if !semi.Decided() {
			continue
		}
		loser, err := semi.Loser()
		if err != nil {
			standings.Unresolved = append(standings.Unresolved, semi.ID)
			continue
		}
		if loser == nil {
			continue
		}
		if _, ok := placed[loser.ID]; ok {
			continue
		}
		standings.Third = append(standings.Third, placementOf(loser))
		placed[loser.ID] = struct{}{}
	}

	return standings
}
