package api

import (
	"strings"
	"time"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type DojangPayload struct {
	ID   int    `json:"id"`
	Nama string `json:"nama"`
}

type AtletPayload struct {
	ID     int            `json:"id"`
	Nama   string         `json:"nama"`
	Dojang *DojangPayload `json:"dojang,omitempty"`
}

type AnggotaTimPayload struct {
	Atlet AtletPayload `json:"atlet"`
}

type ParticipantPayload struct {
	ID         int                 `json:"id"`
	IsTeam     bool                `json:"isTeam"`
	Status     string              `json:"status"`
	Atlet      *AtletPayload       `json:"atlet,omitempty"`
	AnggotaTim []AnggotaTimPayload `json:"anggotaTim,omitempty"`
}

type MatchPayload struct {
	ID                  int                 `json:"id"`
	Round               int                 `json:"round"`
	Position            int                 `json:"position"`
	ParticipantA        *ParticipantPayload `json:"participantA"`
	ParticipantB        *ParticipantPayload `json:"participantB"`
	ScoreA              *int                `json:"scoreA"`
	ScoreB              *int                `json:"scoreB"`
	StageName           string              `json:"stageName,omitempty"`
	WinnerID            *int                `json:"winnerId,omitempty"`
	NomorAntrian        *int                `json:"nomorAntrian,omitempty"`
	NomorLapangan       *int                `json:"nomorLapangan,omitempty"`
	TanggalPertandingan *string             `json:"tanggalPertandingan,omitempty"`
}

type BracketPayload struct {
	ID               int                  `json:"id"`
	KompetisiID      int                  `json:"kompetisiId"`
	KelasKejuaraanID int                  `json:"kelasKejuaraanId"`
	Participants     []ParticipantPayload `json:"participants"`
	Matches          []MatchPayload       `json:"matches"`
}

type MatchDatePayload struct {
	TanggalPertandingan *string `json:"tanggalPertandingan"`
}

type DojangSeparationMode string

const (
	SeparationStrict   DojangSeparationMode = "STRICT"
	SeparationBalanced DojangSeparationMode = "BALANCED"
)

type DojangSeparation struct {
	Enabled bool                 `json:"enabled"`
	Mode    DojangSeparationMode `json:"mode"`
}

type GenerateRequest struct {
	KelasKejuaraanID  int               `json:"kelasKejuaraanId"`
	ByeParticipantIDs []int             `json:"byeParticipantIds"`
	DojangSeparation  *DojangSeparation `json:"dojangSeparation,omitempty"`
}

type ShuffleRequest struct {
	KelasKejuaraanID int               `json:"kelasKejuaraanId"`
	IsPemula         bool              `json:"isPemula"`
	DojangSeparation *DojangSeparation `json:"dojangSeparation,omitempty"`
}

type UpdateMatchRequest struct {
	TanggalPertandingan *string `json:"tanggalPertandingan,omitempty"`
	NomorAntrian        *int    `json:"nomorAntrian,omitempty"`
	NomorLapangan       *int    `json:"nomorLapangan,omitempty"`
	ScoreA              *int    `json:"scoreA,omitempty"`
	ScoreB              *int    `json:"scoreB,omitempty"`
	WinnerID            *int    `json:"winnerId,omitempty"`
}

type AssignRequest struct {
	Slot          bracket.Slot `json:"slot"`
	ParticipantID int          `json:"participantId"`
}

const dateLayout = "2006-01-02"

// ParseDate accepts the backend's RFC 3339 timestamps as well as bare dates.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func ToParticipant(p ParticipantPayload) bracket.Participant {
	status := bracket.ParticipantStatus(strings.ToUpper(p.Status))
	if status == "" {
		// Participants placed in a bracket have already been approved
		status = bracket.StatusApproved
	}

	var members []bracket.Athlete
	if p.IsTeam {
		for _, anggota := range p.AnggotaTim {
			members = append(members, toAthlete(anggota.Atlet))
		}
	} else if p.Atlet != nil {
		members = append(members, toAthlete(*p.Atlet))
	}

	return bracket.NewParticipant(p.ID, p.IsTeam, status, members)
}

func toAthlete(a AtletPayload) bracket.Athlete {
	athlete := bracket.Athlete{ID: a.ID, Name: strings.TrimSpace(a.Nama)}
	if a.Dojang != nil {
		athlete.Dojang = strings.TrimSpace(a.Dojang.Nama)
	}
	return athlete
}

func toParticipantPtr(p *ParticipantPayload) *bracket.Participant {
	if p == nil {
		return nil
	}
	participant := ToParticipant(*p)
	return &participant
}

func ToMatch(m MatchPayload) bracket.Match {
	match := bracket.Match{
		ID:           m.ID,
		Round:        m.Round,
		Order:        m.Position,
		ParticipantA: toParticipantPtr(m.ParticipantA),
		ParticipantB: toParticipantPtr(m.ParticipantB),
		StageName:    m.StageName,
		WinnerID:     m.WinnerID,
		Schedule: bracket.Schedule{
			QueueNumber: m.NomorAntrian,
			CourtNumber: m.NomorLapangan,
		},
	}
	if m.ScoreA != nil && *m.ScoreA > 0 {
		match.ScoreA = *m.ScoreA
	}
	if m.ScoreB != nil && *m.ScoreB > 0 {
		match.ScoreB = *m.ScoreB
	}
	if m.TanggalPertandingan != nil {
		if date, ok := ParseDate(*m.TanggalPertandingan); ok {
			match.Schedule.Date = &date
		}
	}
	return match
}

func ToBracket(p BracketPayload) bracket.Bracket {
	b := bracket.Bracket{
		ID:               p.ID,
		KompetisiID:      p.KompetisiID,
		KelasKejuaraanID: p.KelasKejuaraanID,
		Participants:     make([]bracket.Participant, 0, len(p.Participants)),
		Matches:          make([]bracket.Match, 0, len(p.Matches)),
	}
	for _, participant := range p.Participants {
		b.Participants = append(b.Participants, ToParticipant(participant))
	}
	for _, m := range p.Matches {
		b.Matches = append(b.Matches, ToMatch(m))
	}
	return b
}
