package bracket

import "sort"

// Bracket is the full single-elimination draw of one competition class (kelas kejuaraan).
type Bracket struct {
	ID               int           `json:"id" yaml:"id"`
	KompetisiID      int           `json:"kompetisiId" yaml:"kompetisiId"`
	KelasKejuaraanID int           `json:"kelasKejuaraanId" yaml:"kelasKejuaraanId"`
	Participants     []Participant `json:"participants" yaml:"participants"`
	Matches          []Match       `json:"matches" yaml:"matches"`
}

func (b Bracket) TotalRounds() int {
	return TotalRounds(b.ParticipantCount(), b.Matches)
}

// ParticipantCount counts approved participants. Brackets fetched without a
// participant list fall back to the distinct participants seen in the matches.
func (b Bracket) ParticipantCount() int {
	if len(b.Participants) > 0 {
		return len(EligibleParticipants(b.Participants))
	}

	seen := make(map[int]struct{})
	for _, m := range b.Matches {
		if m.ParticipantA != nil {
			seen[m.ParticipantA.ID] = struct{}{}
		}
		if m.ParticipantB != nil {
			seen[m.ParticipantB.ID] = struct{}{}
		}
	}
	return len(seen)
}

func (b Bracket) Match(id int) (*Match, bool) {
	for i := range b.Matches {
		if b.Matches[i].ID == id {
			return &b.Matches[i], true
		}
	}
	return nil, false
}

// ByRound groups matches per round, each round in draw order.
func ByRound(matches []Match) (map[int][]Match, []int) {
	rounds := make(map[int][]Match)
	var roundNums []int

	for _, m := range matches {
		if _, exists := rounds[m.Round]; !exists {
			roundNums = append(roundNums, m.Round)
		}
		rounds[m.Round] = append(rounds[m.Round], m)
	}

	sort.Ints(roundNums)
	for _, r := range roundNums {
		sortRound(rounds[r])
	}

	return rounds, roundNums
}

func sortRound(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Order != matches[j].Order {
			return matches[i].Order < matches[j].Order
		}
		return matches[i].ID < matches[j].ID
	})
}
