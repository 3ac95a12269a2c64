package bracket

import (
	"errors"
	"time"
)

type MatchState string

const (
	MatchReady    MatchState = "ready"
	MatchBye      MatchState = "bye"
	MatchAwaiting MatchState = "awaiting"
)

type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

var (
	ErrUndecided   = errors.New("match has no recorded score")
	ErrTiedScore   = errors.New("match score is tied and no winner was recorded")
	ErrInvalidSlot = errors.New("slot must be A or B")
)

func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotA, SlotB:
		return Slot(s), nil
	}
	return "", ErrInvalidSlot
}

// Schedule is the queue/court/date metadata of a match, independent of bracket structure.
type Schedule struct {
	QueueNumber *int       `json:"queueNumber,omitempty" yaml:"queueNumber,omitempty"`
	CourtNumber *int       `json:"courtNumber,omitempty" yaml:"courtNumber,omitempty"`
	Date        *time.Time `json:"date,omitempty" yaml:"date,omitempty"`
}

func (s Schedule) Empty() bool {
	return s.QueueNumber == nil && s.CourtNumber == nil && s.Date == nil
}

type Match struct {
	ID    int `json:"id" yaml:"id"`
	Round int `json:"round" yaml:"round"`
	// Position inside the round, used to keep the draw order stable
	Order int `json:"order" yaml:"order"`

	ParticipantA *Participant `json:"participantA,omitempty" yaml:"participantA,omitempty"`
	ParticipantB *Participant `json:"participantB,omitempty" yaml:"participantB,omitempty"`

	ScoreA int `json:"scoreA" yaml:"scoreA"`
	ScoreB int `json:"scoreB" yaml:"scoreB"`

	StageName string `json:"stageName,omitempty" yaml:"stageName,omitempty"`
	WinnerID  *int   `json:"winnerId,omitempty" yaml:"winnerId,omitempty"`

	Schedule Schedule `json:"schedule" yaml:"schedule"`
}

func (m Match) Decided() bool {
	return m.ScoreA > 0 || m.ScoreB > 0
}

func (m Match) State() MatchState {
	switch {
	case m.ParticipantA != nil && m.ParticipantB != nil:
		return MatchReady
	case m.ParticipantA != nil || m.ParticipantB != nil:
		return MatchBye
	default:
		return MatchAwaiting
	}
}

func (m Match) Participant(slot Slot) *Participant {
	if slot == SlotA {
		return m.ParticipantA
	}
	return m.ParticipantB
}

// WinnerSlot resolves the winning side of a decided match. A recorded WinnerID
// only matters when the scores are level.
func (m Match) WinnerSlot() (Slot, error) {
	if !m.Decided() {
		return "", ErrUndecided
	}
	if m.ScoreA > m.ScoreB {
		return SlotA, nil
	}
	if m.ScoreB > m.ScoreA {
		return SlotB, nil
	}
	if m.WinnerID != nil {
		if m.ParticipantA != nil && m.ParticipantA.ID == *m.WinnerID {
			return SlotA, nil
		}
		if m.ParticipantB != nil && m.ParticipantB.ID == *m.WinnerID {
			return SlotB, nil
		}
	}
	return "", ErrTiedScore
}

func (m Match) Winner() (*Participant, error) {
	slot, err := m.WinnerSlot()
	if err != nil {
		return nil, err
	}
	return m.Participant(slot), nil
}

func (m Match) Loser() (*Participant, error) {
	slot, err := m.WinnerSlot()
	if err != nil {
		return nil, err
	}
	if slot == SlotA {
		return m.ParticipantB, nil
	}
	return m.ParticipantA, nil
}
