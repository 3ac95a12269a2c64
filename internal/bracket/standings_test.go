package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourBracket(final Match) []Match {
	p1 := athlete(1, "Budi", "Garuda")
	p2 := athlete(2, "Sari", "Rajawali")
	p3 := athlete(3, "Dewi", "Elang")
	p4 := athlete(4, "Rudi", "Garuda")

	final.ParticipantA = p1
	final.ParticipantB = p4
	return []Match{
		match(1, 1, 1, p1, p2, 5, 3),
		match(2, 1, 2, p3, p4, 2, 7),
		final,
	}
}

func TestDeriveStandingsSemifinalLosersGetBronze(t *testing.T) {
	matches := fourBracket(Match{ID: 3, Round: 2, Order: 1, ScoreA: 4, ScoreB: 6})

	standings := DeriveStandings(matches, 2)

	require.NotNil(t, standings.First)
	assert.Equal(t, Placement{ParticipantID: 4, Name: "Rudi", Dojo: "Garuda"}, *standings.First)
	assert.Equal(t, []Placement{{ParticipantID: 1, Name: "Budi", Dojo: "Garuda"}}, standings.Second)
	assert.Equal(t, []Placement{
		{ParticipantID: 2, Name: "Sari", Dojo: "Rajawali"},
		{ParticipantID: 3, Name: "Dewi", Dojo: "Elang"},
	}, standings.Third)
	assert.Empty(t, standings.Unresolved)
}

func TestDeriveStandingsUndecidedFinal(t *testing.T) {
	matches := fourBracket(Match{ID: 3, Round: 2, Order: 1})

	standings := DeriveStandings(matches, 2)
	assert.True(t, standings.Empty())
}

func TestDeriveStandingsTiedFinalIsFlagged(t *testing.T) {
	matches := fourBracket(Match{ID: 3, Round: 2, Order: 1, ScoreA: 5, ScoreB: 5})

	standings := DeriveStandings(matches, 2)
	assert.True(t, standings.Empty())
	assert.Equal(t, []int{3}, standings.Unresolved)

	winner := 1
	matches[2].WinnerID = &winner
	standings = DeriveStandings(matches, 2)
	require.NotNil(t, standings.First)
	assert.Equal(t, 1, standings.First.ParticipantID)
}

func TestDeriveStandingsExclusive(t *testing.T) {
	p1 := athlete(1, "A", "X")
	p2 := athlete(2, "B", "X")
	p3 := athlete(3, "C", "Y")

	// p3 loses two semifinals and p2 loses a semifinal and the final
	matches := []Match{
		match(1, 1, 1, p1, p2, 3, 1),
		match(2, 1, 2, p3, p2, 1, 3),
		match(3, 1, 3, p2, p3, 4, 0),
		match(4, 2, 1, p1, p2, 9, 2),
	}

	standings := DeriveStandings(matches, 2)

	seen := map[int]int{}
	if standings.First != nil {
		seen[standings.First.ParticipantID]++
	}
	for _, p := range standings.Second {
		seen[p.ParticipantID]++
	}
	for _, p := range standings.Third {
		seen[p.ParticipantID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "participant %d placed more than once", id)
	}

	assert.Equal(t, 1, standings.First.ParticipantID)
	assert.Equal(t, 2, standings.Second[0].ParticipantID)
	assert.Equal(t, []Placement{{ParticipantID: 3, Name: "C", Dojo: "Y"}}, standings.Third)
}

func TestDeriveStandingsThreeParticipants(t *testing.T) {
	p1 := athlete(1, "A", "X")
	p2 := athlete(2, "B", "X")
	p3 := athlete(3, "C", "Y")

	matches := []Match{
		match(1, 1, 1, p1, p2, 6, 2),
		match(2, 2, 1, p1, p3, 1, 4),
	}

	standings := DeriveStandings(matches, 2)
	assert.Equal(t, 3, standings.First.ParticipantID)
	assert.Equal(t, 1, standings.Second[0].ParticipantID)
	require.Len(t, standings.Third, 1)
	assert.Equal(t, 2, standings.Third[0].ParticipantID)
}

func TestDeriveStandingsDirectFinal(t *testing.T) {
	p1 := athlete(1, "A", "X")
	p2 := athlete(2, "B", "X")

	standings := DeriveStandings([]Match{match(1, 1, 1, p1, p2, 0, 3)}, 1)
	assert.Equal(t, 2, standings.First.ParticipantID)
	assert.Equal(t, 1, standings.Second[0].ParticipantID)
	assert.Empty(t, standings.Third)
}
