package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageDisplayName(t *testing.T) {
	testCases := map[string]string{
		"ROUND_OF_64":       "Round of 64",
		"ROUND_OF_32":       "Round of 32",
		"ROUND_OF_16":       "Round of 16",
		"QUARTER_FINAL":     "Quarter Final",
		"SEMI_FINAL":        "Semi Final",
		"FINAL":             "Final",
		"semi_final":        "Semi Final",
		"PRELIMINARY_ROUND": "Preliminary Round",
		"THIRD_PLACE":       "Third Place",
	}

	for stage, expected := range testCases {
		t.Run(stage, func(t *testing.T) {
			assert.Equal(t, expected, StageDisplayName(stage))
		})
	}
}

func TestRoundNameBackendLabelWins(t *testing.T) {
	matches := make([]Match, 8)
	matches[3].StageName = "QUARTER_FINAL"

	// Eight matches would otherwise be named "Round of 16"
	assert.Equal(t, "Quarter Final", RoundName(1, 4, 16, matches))
	assert.Equal(t, "Round of 16", RoundName(1, 4, 16, make([]Match, 8)))
}

func TestRoundNameThreeParticipants(t *testing.T) {
	semi := []Match{{ID: 1, Round: 1}}
	final := []Match{{ID: 2, Round: 2}}

	assert.Equal(t, "Semi Final", RoundName(1, 2, 3, semi))
	assert.Equal(t, "Final", RoundName(2, 2, 3, final))

	// A backend label still takes precedence
	labelled := []Match{{ID: 1, Round: 1, StageName: "ELIMINATION"}}
	assert.Equal(t, "Elimination", RoundName(1, 2, 3, labelled))
}

func TestRoundNameByMatchCount(t *testing.T) {
	testCases := []struct {
		count    int
		expected string
	}{
		{1, "Final"},
		{2, "Semi Final"},
		{3, "Quarter Final"},
		{4, "Quarter Final"},
		{5, "Round of 16"},
		{8, "Round of 16"},
		{16, "Round of 32"},
		{17, "Round of 64"},
		{32, "Round of 64"},
		{40, "Round of 64"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, RoundName(1, 6, 64, make([]Match, tc.count)), "%d matches", tc.count)
	}
}

func TestRoundNameBeforeGeneration(t *testing.T) {
	assert.Equal(t, "Quarter Final", RoundName(1, 3, 8, nil))
	assert.Equal(t, "Semi Final", RoundName(2, 3, 8, nil))
	assert.Equal(t, "Final", RoundName(3, 3, 8, nil))
	assert.Equal(t, "Round 4", RoundName(4, 3, 8, nil))
}
