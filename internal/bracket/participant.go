package bracket

import (
	"errors"
	"strings"
)

type ParticipantStatus string

const (
	StatusPending  ParticipantStatus = "PENDING"
	StatusApproved ParticipantStatus = "APPROVED"
	StatusRejected ParticipantStatus = "REJECTED"
)

var (
	ErrTeamWithoutMembers = errors.New("team participant has no members")
	ErrIndividualAthlete  = errors.New("individual participant must have exactly one athlete")
	ErrUnknownStatus      = errors.New("unknown participant status")
)

type Athlete struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Dojang string `json:"dojang" yaml:"dojang"`
}

// Participant is either a single athlete or a team registered in a competition class.
type Participant struct {
	ID          int               `json:"id" yaml:"id"`
	IsTeam      bool              `json:"isTeam" yaml:"isTeam"`
	DisplayName string            `json:"displayName" yaml:"displayName"`
	DojoName    string            `json:"dojoName" yaml:"dojoName"`
	Status      ParticipantStatus `json:"status" yaml:"status"`
	Members     []Athlete         `json:"members,omitempty" yaml:"members,omitempty"`
}

// NewParticipant derives the display name and dojang from the underlying athletes.
func NewParticipant(id int, isTeam bool, status ParticipantStatus, members []Athlete) Participant {
	p := Participant{
		ID:      id,
		IsTeam:  isTeam,
		Status:  status,
		Members: members,
	}

	if len(members) == 0 {
		return p
	}

	if !isTeam {
		p.DisplayName = members[0].Name
		p.DojoName = members[0].Dojang
		return p
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	p.DisplayName = strings.Join(names, ", ")
	p.DojoName = members[0].Dojang
	return p
}

func (p Participant) Validate() error {
	switch p.Status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return ErrUnknownStatus
	}
	if p.IsTeam && len(p.Members) == 0 {
		return ErrTeamWithoutMembers
	}
	if !p.IsTeam && len(p.Members) != 1 {
		return ErrIndividualAthlete
	}
	return nil
}

// Eligible reports whether the participant may be placed in a bracket.
func (p Participant) Eligible() bool {
	return p.Status == StatusApproved
}

func EligibleParticipants(participants []Participant) []Participant {
	eligible := make([]Participant, 0, len(participants))
	for _, p := range participants {
		if p.Eligible() {
			eligible = append(eligible, p)
		}
	}
	return eligible
}
