package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayout = LayoutConfig{CardHeight: 120, CardGap: 40, DirectFinalTop: 24}

func roundsOf(counts ...int) [][]Match {
	id := 1
	rounds := make([][]Match, 0, len(counts))
	for r, count := range counts {
		round := make([]Match, 0, count)
		for i := 0; i < count; i++ {
			round = append(round, Match{ID: id, Round: r + 1, Order: i + 1})
			id++
		}
		rounds = append(rounds, round)
	}
	return rounds
}

func TestPositionSideFirstRoundIsSequential(t *testing.T) {
	rounds := roundsOf(4)
	positions, diags := PositionSide(SideLeft, rounds, testLayout)
	assert.Empty(t, diags)

	for i, m := range rounds[0] {
		assert.Equal(t, float64(i)*160, positions[m.ID].Top)
		assert.Equal(t, float64(i)*160+60, positions[m.ID].Center)
		assert.Equal(t, 0, positions[m.ID].Column)
	}
}

func TestPositionSideChildCenteredBetweenParents(t *testing.T) {
	rounds := roundsOf(8, 4, 2, 1)
	positions, diags := PositionSide(SideLeft, rounds, testLayout)
	require.Empty(t, diags)
	require.Len(t, positions, 15)

	for r := 1; r < len(rounds); r++ {
		for m, child := range rounds[r] {
			p1 := positions[rounds[r-1][2*m].ID]
			p2 := positions[rounds[r-1][2*m+1].ID]
			assert.InDelta(t, (p1.Center+p2.Center)/2, positions[child.ID].Center, 1e-9,
				"round %d match %d", r+1, m)
			assert.Equal(t, r, positions[child.ID].Column)
		}
	}

	// 8 first-round cards span 0..1240, the last card is centered on the middle
	assert.Equal(t, 620.0, positions[15].Center)
}

func TestPositionSideByeKeepsParentCenter(t *testing.T) {
	rounds := roundsOf(3, 2)
	positions, diags := PositionSide(SideLeft, rounds, testLayout)
	assert.Empty(t, diags)

	// Match 5 only has match 3 above it
	assert.Equal(t, positions[3].Center, positions[5].Center)
	assert.Equal(t, positions[3].Top, positions[5].Top)
}

func TestPositionSideMissingParentIsDiagnosed(t *testing.T) {
	rounds := roundsOf(1, 2)
	positions, diags := PositionSide(SideRight, rounds, testLayout)

	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].MatchID)
	assert.Equal(t, SideRight, diags[0].Side)
	assert.Contains(t, positions, 2)
	assert.NotContains(t, positions, 3)
}

func TestPositionSideSkipsLeadingEmptyRounds(t *testing.T) {
	rounds := [][]Match{{}, {{ID: 9, Round: 2}}}
	positions, diags := PositionSide(SideRight, rounds, testLayout)
	assert.Empty(t, diags)
	assert.Equal(t, Position{Side: SideRight, Column: 1, Top: 0, Center: 60}, positions[9])
}

func TestComputeLayoutEightParticipants(t *testing.T) {
	b := eightBracket()
	before := make([]Match, len(b.Matches))
	copy(before, b.Matches)

	layout := ComputeLayout(b, testLayout)

	assert.Equal(t, before, b.Matches, "layout must not touch the matches")
	assert.Equal(t, 3, layout.TotalRounds)
	assert.Equal(t, 8, layout.ParticipantCount)
	assert.Empty(t, layout.Diagnostics)
	require.Len(t, layout.Positions, 7)

	assert.Equal(t, Position{Side: SideLeft, Column: 0, Top: 0, Center: 60}, layout.Positions[1])
	assert.Equal(t, Position{Side: SideLeft, Column: 0, Top: 160, Center: 220}, layout.Positions[2])
	assert.Equal(t, Position{Side: SideLeft, Column: 1, Top: 80, Center: 140}, layout.Positions[5])
	assert.Equal(t, Position{Side: SideRight, Column: 4, Top: 0, Center: 60}, layout.Positions[3])
	assert.Equal(t, Position{Side: SideRight, Column: 3, Top: 80, Center: 140}, layout.Positions[6])
	assert.Equal(t, Position{Side: SideCenter, Column: 2, Top: 80, Center: 140}, layout.Positions[7])

	require.Len(t, layout.Rounds, 3)
	assert.Equal(t, "Quarter Final", layout.Rounds[0].Name)
	assert.Equal(t, "Semi Final", layout.Rounds[1].Name)
	assert.Equal(t, "Final", layout.Rounds[2].Name)
	assert.Equal(t, []int{7}, layout.Rounds[2].Center)
}

func TestComputeLayoutFinalAveragesUnevenSides(t *testing.T) {
	var ps []*Participant
	var participants []Participant
	for i := 1; i <= 6; i++ {
		p := athlete(i, "A", "D")
		ps = append(ps, p)
		participants = append(participants, *p)
	}
	b := Bracket{
		Participants: participants,
		Matches: []Match{
			match(1, 1, 1, ps[0], ps[1], 0, 0),
			match(2, 1, 2, ps[2], ps[3], 0, 0),
			match(3, 1, 3, ps[4], ps[5], 0, 0),
			match(4, 2, 1, nil, nil, 0, 0),
			match(5, 2, 2, nil, nil, 0, 0),
			match(6, 3, 1, nil, nil, 0, 0),
		},
	}

	layout := ComputeLayout(b, testLayout)

	// Left semifinal sits between 0 and 160, right semifinal directly on its single parent
	assert.Equal(t, 140.0, layout.Positions[4].Center)
	assert.Equal(t, 60.0, layout.Positions[5].Center)
	assert.Equal(t, 100.0, layout.Positions[6].Center)
	assert.Equal(t, 40.0, layout.Positions[6].Top)
}

func TestComputeLayoutSmallBrackets(t *testing.T) {
	p1 := athlete(1, "A", "D")
	p2 := athlete(2, "B", "D")
	p3 := athlete(3, "C", "E")

	t.Run("two participants are a direct final", func(t *testing.T) {
		b := Bracket{
			Participants: []Participant{*p1, *p2},
			Matches:      []Match{match(1, 1, 1, p1, p2, 0, 0)},
		}
		layout := ComputeLayout(b, testLayout)

		assert.Equal(t, 1, layout.TotalRounds)
		assert.Equal(t, Position{Side: SideCenter, Column: 0, Top: 24, Center: 84}, layout.Positions[1])
		assert.Equal(t, "Final", layout.Rounds[0].Name)
	})

	t.Run("three participants", func(t *testing.T) {
		b := Bracket{
			Participants: []Participant{*p1, *p2, *p3},
			Matches: []Match{
				match(1, 1, 1, p1, p2, 0, 0),
				match(2, 2, 1, nil, p3, 0, 0),
			},
		}
		layout := ComputeLayout(b, testLayout)

		assert.Equal(t, 2, layout.TotalRounds)
		require.Len(t, layout.Rounds, 2)
		assert.Equal(t, []int{1}, layout.Rounds[0].Left)
		assert.Empty(t, layout.Rounds[0].Right)
		assert.Equal(t, "Semi Final", layout.Rounds[0].Name)
		assert.Equal(t, "Final", layout.Rounds[1].Name)

		// The final lines up with the single semifinal
		assert.Equal(t, layout.Positions[1].Center, layout.Positions[2].Center)
		assert.Equal(t, SideCenter, layout.Positions[2].Side)
	})

	t.Run("no matches and too few participants", func(t *testing.T) {
		layout := ComputeLayout(Bracket{Participants: []Participant{*p1}}, testLayout)
		assert.Zero(t, layout.TotalRounds)
		assert.Empty(t, layout.Positions)
		assert.Empty(t, layout.Rounds)
	})
}
