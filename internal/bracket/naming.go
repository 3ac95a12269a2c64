package bracket

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var stageDisplayNames = map[string]string{
	"ROUND_OF_64":   "Round of 64",
	"ROUND_OF_32":   "Round of 32",
	"ROUND_OF_16":   "Round of 16",
	"QUARTER_FINAL": "Quarter Final",
	"SEMI_FINAL":    "Semi Final",
	"FINAL":         "Final",
}

// Ordered by match count, the name of a round holding at most that many matches
var matchCountNames = []struct {
	matches int
	name    string
}{
	{1, "Final"},
	{2, "Semi Final"},
	{4, "Quarter Final"},
	{8, "Round of 16"},
	{16, "Round of 32"},
	{32, "Round of 64"},
}

// StageDisplayName maps a backend stage enum to its label. Unknown stages are
// title cased with underscores turned into spaces.
func StageDisplayName(stage string) string {
	stage = strings.TrimSpace(stage)
	if name, ok := stageDisplayNames[strings.ToUpper(stage)]; ok {
		return name
	}
	return cases.Title(language.English).String(strings.ToLower(strings.ReplaceAll(stage, "_", " ")))
}

// RoundName picks the label of a round: a backend stage name wins, then the
// three participant override, then the number of matches in the round.
// A count between table entries takes the next larger bucket, so a round of
// 3 matches is a "Quarter Final" and one of 5 to 8 is a "Round of 16".
func RoundName(round, totalRounds, participantCount int, matches []Match) string {
	for _, m := range matches {
		if m.StageName != "" {
			return StageDisplayName(m.StageName)
		}
	}

	if participantCount == 3 {
		switch round {
		case 1:
			return "Semi Final"
		case 2:
			return "Final"
		}
	}

	count := len(matches)
	if count == 0 && round >= 1 && round <= totalRounds {
		// Not generated yet, assume a full power of two draw
		count = 1 << (totalRounds - round)
	}
	return roundNameByMatchCount(round, count)
}

func roundNameByMatchCount(round, count int) string {
	if count <= 0 {
		return fmt.Sprintf("Round %d", round)
	}
	for _, entry := range matchCountNames {
		if count <= entry.matches {
			return entry.name
		}
	}
	return "Round of 64"
}
