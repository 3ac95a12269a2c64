package bracket

func athlete(id int, name, dojang string) *Participant {
	p := NewParticipant(id, false, StatusApproved, []Athlete{{ID: id * 10, Name: name, Dojang: dojang}})
	return &p
}

func match(id, round, order int, a, b *Participant, scoreA, scoreB int) Match {
	return Match{
		ID:           id,
		Round:        round,
		Order:        order,
		ParticipantA: a,
		ParticipantB: b,
		ScoreA:       scoreA,
		ScoreB:       scoreB,
	}
}

// eightBracket is a full 8 participant draw with nothing played yet: ids 1-4
// are the first round, 5-6 the semifinals and 7 the final.
func eightBracket() Bracket {
	var participants []Participant
	var ps []*Participant
	for i := 1; i <= 8; i++ {
		p := athlete(i, "Athlete", "Dojang")
		participants = append(participants, *p)
		ps = append(ps, p)
	}

	return Bracket{
		Participants: participants,
		Matches: []Match{
			match(1, 1, 1, ps[0], ps[7], 0, 0),
			match(2, 1, 2, ps[3], ps[4], 0, 0),
			match(3, 1, 3, ps[2], ps[5], 0, 0),
			match(4, 1, 4, ps[1], ps[6], 0, 0),
			match(5, 2, 1, nil, nil, 0, 0),
			match(6, 2, 2, nil, nil, 0, 0),
			match(7, 3, 1, nil, nil, 0, 0),
		},
	}
}
