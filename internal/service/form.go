package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/api"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/utils"
	"github.com/go-playground/validator/v10"
)

var (
	ErrIncompleteSchedule = errors.New("queue number and court number must be filled in together")
	ErrInvalidSchedule    = errors.New("queue number and court number must be at least 1")
	ErrNegativeScore      = errors.New("scores cannot be negative")
	ErrEmptyForm          = errors.New("nothing to update")
	ErrMissingWinner      = errors.New("winning slot has no participant")
	ErrWinnerMismatch     = errors.New("selected winner does not match the scores")
)

var validate = validator.New()

// MatchForm is the result and scheduling input for one match. Nil fields are
// left untouched on the backend.
type MatchForm struct {
	ScoreA      *int          `validate:"omitempty,min=0"`
	ScoreB      *int          `validate:"omitempty,min=0"`
	QueueNumber *int          `validate:"required_with=CourtNumber,omitempty,min=1"`
	CourtNumber *int          `validate:"required_with=QueueNumber,omitempty,min=1"`
	Date        *time.Time
	// Only needed when the scores are level
	WinnerSlot *bracket.Slot `validate:"omitempty,oneof=A B"`
}

// MatchFields are the raw text inputs of a match form.
type MatchFields struct {
	ScoreA      string
	ScoreB      string
	QueueNumber string
	CourtNumber string
	Date        string
	Winner      string
}

// ParseMatchForm binds raw inputs. Blank fields stay nil.
func ParseMatchForm(fields MatchFields) (MatchForm, error) {
	var form MatchForm
	var err error

	if form.ScoreA, err = utils.IntOrNil(fields.ScoreA); err != nil {
		return form, fmt.Errorf("score A: %w", err)
	}
	if form.ScoreB, err = utils.IntOrNil(fields.ScoreB); err != nil {
		return form, fmt.Errorf("score B: %w", err)
	}
	if form.QueueNumber, err = utils.IntOrNil(fields.QueueNumber); err != nil {
		return form, fmt.Errorf("queue number: %w", err)
	}
	if form.CourtNumber, err = utils.IntOrNil(fields.CourtNumber); err != nil {
		return form, fmt.Errorf("court number: %w", err)
	}
	if date := utils.StringOrNil(fields.Date); date != nil {
		parsed, ok := api.ParseDate(*date)
		if !ok {
			return form, fmt.Errorf("invalid date %q", *date)
		}
		form.Date = &parsed
	}
	if winner := utils.StringOrNil(fields.Winner); winner != nil {
		slot, err := bracket.ParseSlot(*winner)
		if err != nil {
			return form, err
		}
		form.WinnerSlot = &slot
	}
	return form, nil
}

func (f MatchForm) HasScores() bool {
	return f.ScoreA != nil || f.ScoreB != nil
}

func (f MatchForm) HasSchedule() bool {
	return f.QueueNumber != nil || f.CourtNumber != nil || f.Date != nil
}

func (f MatchForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("invalid match form: %w", err)
		}

		fe := validationErrors[0]
		switch fe.Field() {
		case "QueueNumber", "CourtNumber":
			if fe.Tag() == "required_with" {
				return ErrIncompleteSchedule
			}
			return ErrInvalidSchedule
		case "ScoreA", "ScoreB":
			return ErrNegativeScore
		case "WinnerSlot":
			return bracket.ErrInvalidSlot
		}
		return fmt.Errorf("invalid match form: field %s failed on %s", fe.Field(), fe.Tag())
	}

	if !f.HasScores() && !f.HasSchedule() {
		return ErrEmptyForm
	}
	return nil
}

// Request builds the backend payload. A winner is only sent when at least one
// score is above zero, and level scores need an explicit winner.
func (f MatchForm) Request(current *bracket.Match) (api.UpdateMatchRequest, error) {
	req := api.UpdateMatchRequest{
		NomorAntrian:  f.QueueNumber,
		NomorLapangan: f.CourtNumber,
	}
	if f.Date != nil {
		req.TanggalPertandingan = utils.Ptr(api.FormatDate(*f.Date))
	}
	if !f.HasScores() {
		return req, nil
	}

	scoreA, scoreB := utils.OrZero(f.ScoreA), utils.OrZero(f.ScoreB)
	req.ScoreA, req.ScoreB = &scoreA, &scoreB
	if scoreA == 0 && scoreB == 0 {
		return req, nil
	}

	slot, err := f.winnerSlot(scoreA, scoreB)
	if err != nil {
		return req, err
	}
	if current == nil {
		return req, ErrMatchNotFound
	}
	winner := current.Participant(slot)
	if winner == nil {
		return req, fmt.Errorf("%w: slot %s", ErrMissingWinner, slot)
	}
	req.WinnerID = &winner.ID
	return req, nil
}

func (f MatchForm) winnerSlot(scoreA, scoreB int) (bracket.Slot, error) {
	var slot bracket.Slot
	switch {
	case scoreA > scoreB:
		slot = bracket.SlotA
	case scoreB > scoreA:
		slot = bracket.SlotB
	case f.WinnerSlot == nil:
		return "", bracket.ErrTiedScore
	default:
		return *f.WinnerSlot, nil
	}

	if f.WinnerSlot != nil && *f.WinnerSlot != slot {
		return "", ErrWinnerMismatch
	}
	return slot, nil
}
