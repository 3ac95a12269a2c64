package api

import (
	"testing"
	"time"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToParticipant(t *testing.T) {
	tests := []struct {
		name       string
		payload    ParticipantPayload
		wantName   string
		wantDojo   string
		wantStatus bracket.ParticipantStatus
	}{
		{
			name: "individual",
			payload: ParticipantPayload{
				ID:     1,
				Status: "approved",
				Atlet:  &AtletPayload{ID: 10, Nama: " Budi ", Dojang: &DojangPayload{Nama: "Garuda"}},
			},
			wantName:   "Budi",
			wantDojo:   "Garuda",
			wantStatus: bracket.StatusApproved,
		},
		{
			name: "team skips blank member names",
			payload: ParticipantPayload{
				ID:     2,
				IsTeam: true,
				Status: "PENDING",
				AnggotaTim: []AnggotaTimPayload{
					{Atlet: AtletPayload{Nama: "Ayu", Dojang: &DojangPayload{Nama: "Elang"}}},
					{Atlet: AtletPayload{Nama: ""}},
					{Atlet: AtletPayload{Nama: "Citra"}},
				},
			},
			wantName:   "Ayu, Citra",
			wantDojo:   "Elang",
			wantStatus: bracket.StatusPending,
		},
		{
			name:       "missing status means approved",
			payload:    ParticipantPayload{ID: 3, Atlet: &AtletPayload{Nama: "Dewi"}},
			wantName:   "Dewi",
			wantDojo:   "",
			wantStatus: bracket.StatusApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ToParticipant(tt.payload)
			assert.Equal(t, tt.payload.ID, p.ID)
			assert.Equal(t, tt.wantName, p.DisplayName)
			assert.Equal(t, tt.wantDojo, p.DojoName)
			assert.Equal(t, tt.wantStatus, p.Status)
		})
	}
}

func TestToMatchClampsNegativeScores(t *testing.T) {
	m := ToMatch(MatchPayload{ID: 1, Round: 1, ScoreA: utils.Ptr(-2), ScoreB: nil})
	assert.Equal(t, 0, m.ScoreA)
	assert.Equal(t, 0, m.ScoreB)
	assert.False(t, m.Decided())
	assert.True(t, m.Schedule.Empty())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "2025-03-14", want: "2025-03-14", ok: true},
		{in: "2025-03-14T09:30:00Z", want: "2025-03-14", ok: true},
		{in: "2025-03-14T23:30:00+07:00", want: "2025-03-14", ok: true},
		{in: "  ", ok: false},
		{in: "14/03/2025", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, FormatDate(got))
			} else {
				assert.True(t, got.Equal(time.Time{}))
			}
		})
	}
}
