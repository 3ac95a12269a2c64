package bracket

import "math"

// Gets the nearest power of 2 while rounding up, so with input 5 it returns 8 and so on
func calcBracketSize(count int) int {
	if count <= 0 {
		return 0
	}

	// Log2 -> Ceil -> 2^^log2 to round up
	log2 := math.Ceil(math.Log2(float64(count)))
	return int(math.Pow(2, log2))
}

// EstimateRounds is the pre-generation round count for a participant count.
// The power-of-two formula already yields 1 round for 2 participants and
// 2 rounds for 3 or 4, so only counts below 2 need guarding.
func EstimateRounds(count int) int {
	if count < 2 {
		return 0
	}
	return int(math.Log2(float64(calcBracketSize(count))))
}

// TotalRounds prefers the rounds present in real match data over the estimate.
func TotalRounds(participantCount int, matches []Match) int {
	maxRound := 0
	for _, m := range matches {
		if m.Round > maxRound {
			maxRound = m.Round
		}
	}
	if maxRound > 0 {
		return maxRound
	}
	return EstimateRounds(participantCount)
}

type RoundStructure struct {
	ParticipantCount int   `json:"participantCount" yaml:"participantCount"`
	BracketSize      int   `json:"bracketSize" yaml:"bracketSize"`
	Byes             int   `json:"byes" yaml:"byes"`
	TotalRounds      int   `json:"totalRounds" yaml:"totalRounds"`
	MatchesPerRound  []int `json:"matchesPerRound" yaml:"matchesPerRound"`
}

// Structure describes the expected rounds of a bracket before it is generated.
func Structure(count int) RoundStructure {
	rs := RoundStructure{
		ParticipantCount: count,
		TotalRounds:      EstimateRounds(count),
	}
	if rs.TotalRounds == 0 {
		rs.MatchesPerRound = []int{}
		return rs
	}

	rs.BracketSize = calcBracketSize(count)
	rs.Byes = rs.BracketSize - count

	// Three participants play a single first-round match, the bye goes straight to the final
	if count == 3 {
		rs.MatchesPerRound = []int{1, 1}
		return rs
	}

	rs.MatchesPerRound = make([]int, 0, rs.TotalRounds)
	for r := 1; r <= rs.TotalRounds; r++ {
		rs.MatchesPerRound = append(rs.MatchesPerRound, rs.BracketSize>>r)
	}
	return rs
}
