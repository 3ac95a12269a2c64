package service

import (
	"context"
	"fmt"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/api"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
)

type GenerateOptions struct {
	ByeParticipantIDs []int
	DojangSeparation  *api.DojangSeparation
}

type ShuffleOptions struct {
	IsPemula         bool
	DojangSeparation *api.DojangSeparation
}

// Generate creates the bracket. A bracket that already exists is fetched
// instead of failing.
func (s *BracketSession) Generate(ctx context.Context, opts GenerateOptions) (Notice, error) {
	return s.run(ctx, OpGenerate, string(OpGenerate), func(ctx context.Context) (string, error) {
		err := s.client.Generate(ctx, s.kompetisiID, api.GenerateRequest{
			KelasKejuaraanID:  s.kelasID,
			ByeParticipantIDs: opts.ByeParticipantIDs,
			DojangSeparation:  opts.DojangSeparation,
		})
		msg := "Bracket generated"
		if api.IsAlreadyExists(err) {
			s.logger.Info().Str("reason", api.UserMessage(err)).Msg("bracket already exists, fetching it")
			msg = "Bracket already exists, showing the current draw"
		} else if err != nil {
			return "", fmt.Errorf("failed to generate bracket: %w", err)
		}

		if err := s.refresh(ctx); err != nil {
			return "", err
		}
		return msg, nil
	})
}

// Shuffle redraws the bracket. When the backend refuses to overwrite the
// existing draw the bracket is deleted and generated again. There is no
// rollback: if the second step fails the class is left without a bracket.
func (s *BracketSession) Shuffle(ctx context.Context, opts ShuffleOptions) (Notice, error) {
	return s.run(ctx, OpShuffle, string(OpShuffle), func(ctx context.Context) (string, error) {
		err := s.client.Shuffle(ctx, s.kompetisiID, api.ShuffleRequest{
			KelasKejuaraanID: s.kelasID,
			IsPemula:         opts.IsPemula,
			DojangSeparation: opts.DojangSeparation,
		})
		switch {
		case api.IsAlreadyExists(err):
			s.logger.Warn().Str("reason", api.UserMessage(err)).Msg("shuffle refused, deleting and regenerating")
			if err := s.regenerate(ctx, opts); err != nil {
				return "", err
			}
		case err != nil:
			return "", fmt.Errorf("failed to shuffle bracket: %w", err)
		}

		if err := s.refresh(ctx); err != nil {
			return "", err
		}
		return "Bracket shuffled", nil
	})
}

func (s *BracketSession) regenerate(ctx context.Context, opts ShuffleOptions) error {
	if err := s.client.DeleteBracket(ctx, s.kompetisiID, s.kelasID); err != nil {
		return fmt.Errorf("%w: delete failed: %w", ErrShuffleCompensation, err)
	}
	if err := s.replace(nil, nil, false); err != nil {
		return err
	}

	err := s.client.Generate(ctx, s.kompetisiID, api.GenerateRequest{
		KelasKejuaraanID: s.kelasID,
		DojangSeparation: opts.DojangSeparation,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("bracket deleted but regenerating failed")
		return fmt.Errorf("%w: regenerate failed, bracket is deleted: %w", ErrShuffleCompensation, err)
	}
	return nil
}

// ClearResults resets every score while keeping the draw.
func (s *BracketSession) ClearResults(ctx context.Context) (Notice, error) {
	return s.run(ctx, OpClearResults, string(OpClearResults), func(ctx context.Context) (string, error) {
		if err := s.client.ClearResults(ctx, s.kompetisiID, s.kelasID); err != nil {
			return "", fmt.Errorf("failed to clear results: %w", err)
		}
		if err := s.refresh(ctx); err != nil {
			return "", err
		}
		return "Match results cleared", nil
	})
}

func (s *BracketSession) Delete(ctx context.Context) (Notice, error) {
	return s.run(ctx, OpDelete, string(OpDelete), func(ctx context.Context) (string, error) {
		if err := s.client.DeleteBracket(ctx, s.kompetisiID, s.kelasID); err != nil {
			return "", fmt.Errorf("failed to delete bracket: %w", err)
		}
		if err := s.replace(nil, nil, false); err != nil {
			return "", err
		}
		return "Bracket deleted", nil
	})
}

// ClearScheduling removes queue, court and date from every match.
func (s *BracketSession) ClearScheduling(ctx context.Context) (Notice, error) {
	return s.run(ctx, OpClearScheduling, string(OpClearScheduling), func(ctx context.Context) (string, error) {
		if err := s.client.ClearScheduling(ctx, s.kompetisiID, s.kelasID); err != nil {
			return "", fmt.Errorf("failed to clear scheduling: %w", err)
		}
		if err := s.refresh(ctx); err != nil {
			return "", err
		}
		return "Match scheduling cleared", nil
	})
}

// Assign places a participant into one slot of a match that has no scores yet.
func (s *BracketSession) Assign(ctx context.Context, matchID int, slot bracket.Slot, participantID int) (Notice, error) {
	if _, err := bracket.ParseSlot(string(slot)); err != nil {
		return Notice{}, err
	}
	m, err := s.match(matchID)
	if err != nil {
		return Notice{}, err
	}
	if m.Decided() {
		return Notice{}, ErrMatchHasScores
	}

	key := fmt.Sprintf("%s:%d:%s", OpAssign, matchID, slot)
	return s.run(ctx, OpAssign, key, func(ctx context.Context) (string, error) {
		err := s.client.AssignParticipant(ctx, s.kompetisiID, s.kelasID, matchID, api.AssignRequest{
			Slot:          slot,
			ParticipantID: participantID,
		})
		if err != nil {
			return "", fmt.Errorf("failed to assign participant: %w", err)
		}
		if err := s.refresh(ctx); err != nil {
			return "", err
		}
		return fmt.Sprintf("Participant %d placed in slot %s of match %d", participantID, slot, matchID), nil
	})
}

// UpdateMatch submits a result and/or scheduling change for one match. The
// form is checked before anything is sent.
func (s *BracketSession) UpdateMatch(ctx context.Context, matchID int, form MatchForm) (Notice, error) {
	if err := form.Validate(); err != nil {
		return Notice{}, err
	}

	var current *bracket.Match
	if form.HasScores() {
		m, err := s.match(matchID)
		if err != nil {
			return Notice{}, err
		}
		current = m
	}

	req, err := form.Request(current)
	if err != nil {
		return Notice{}, err
	}

	key := fmt.Sprintf("%s:%d", OpUpdateMatch, matchID)
	return s.run(ctx, OpUpdateMatch, key, func(ctx context.Context) (string, error) {
		if err := s.client.UpdateMatch(ctx, s.kompetisiID, matchID, req); err != nil {
			return "", fmt.Errorf("failed to update match: %w", err)
		}
		if err := s.refresh(ctx); err != nil {
			return "", err
		}
		return fmt.Sprintf("Match %d updated", matchID), nil
	})
}

func (s *BracketSession) match(matchID int) (*bracket.Match, error) {
	b := s.Bracket()
	if b == nil {
		return nil, ErrNotGenerated
	}
	m, ok := b.Match(matchID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, matchID)
	}
	return m, nil
}
