package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/api"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	ErrSessionClosed       = errors.New("bracket session is closed")
	ErrNotGenerated        = errors.New("bracket has not been generated yet")
	ErrMatchNotFound       = errors.New("match not found in bracket")
	ErrMatchHasScores      = errors.New("match already has recorded scores")
	ErrShuffleCompensation = errors.New("shuffle fell back to delete and regenerate")
)

type Operation string

const (
	OpLoad            Operation = "load"
	OpGenerate        Operation = "generate"
	OpShuffle         Operation = "shuffle"
	OpClearResults    Operation = "clear-results"
	OpDelete          Operation = "delete"
	OpClearScheduling Operation = "clear-scheduling"
	OpUpdateMatch     Operation = "update-match"
	OpAssign          Operation = "assign"
)

// Notice is the success message of a finished operation.
type Notice struct {
	Operation Operation `json:"operation" yaml:"operation"`
	Message   string    `json:"message" yaml:"message"`
}

// Backend is the part of the REST client a session drives.
type Backend interface {
	GetBracket(ctx context.Context, kompetisiID, kelasID int) (*bracket.Bracket, error)
	GetMatchDate(ctx context.Context, kompetisiID, kelasID int) (*time.Time, error)
	Generate(ctx context.Context, kompetisiID int, req api.GenerateRequest) error
	Shuffle(ctx context.Context, kompetisiID int, req api.ShuffleRequest) error
	ClearResults(ctx context.Context, kompetisiID, kelasID int) error
	DeleteBracket(ctx context.Context, kompetisiID, kelasID int) error
	UpdateMatch(ctx context.Context, kompetisiID, matchID int, req api.UpdateMatchRequest) error
	AssignParticipant(ctx context.Context, kompetisiID, kelasID, matchID int, req api.AssignRequest) error
	ClearScheduling(ctx context.Context, kompetisiID, kelasID int) error
}

// BracketSession holds the bracket of one competition class while it is being
// viewed. The bracket is only ever replaced as a whole after a fetch.
type BracketSession struct {
	client      Backend
	kompetisiID int
	kelasID     int
	logger      zerolog.Logger

	mu        sync.RWMutex
	bracket   *bracket.Bracket
	matchDate *time.Time
	busy      map[Operation]int

	group  singleflight.Group
	life   context.Context
	cancel context.CancelFunc
}

func NewBracketSession(client Backend, kompetisiID, kelasID int, logger zerolog.Logger) *BracketSession {
	life, cancel := context.WithCancel(context.Background())
	return &BracketSession{
		client:      client,
		kompetisiID: kompetisiID,
		kelasID:     kelasID,
		logger: logger.With().
			Str("component", "session").
			Int("kompetisi_id", kompetisiID).
			Int("kelas_id", kelasID).
			Logger(),
		busy:   make(map[Operation]int),
		life:   life,
		cancel: cancel,
	}
}

// Bracket returns the last fetched bracket, nil when none has been generated.
func (s *BracketSession) Bracket() *bracket.Bracket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bracket
}

// MatchDate is the class-wide match date set on the backend, if any.
func (s *BracketSession) MatchDate() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matchDate
}

func (s *BracketSession) Layout(cfg bracket.LayoutConfig) *bracket.Layout {
	b := s.Bracket()
	if b == nil {
		return nil
	}
	layout := bracket.ComputeLayout(*b, cfg)
	return &layout
}

func (s *BracketSession) Standings() bracket.Standings {
	b := s.Bracket()
	if b == nil {
		return bracket.DeriveStandings(nil, 0)
	}
	return bracket.DeriveStandings(b.Matches, b.TotalRounds())
}

func (s *BracketSession) Busy(op Operation) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy[op] > 0
}

// Close cancels in-flight requests. Responses arriving afterwards are dropped.
func (s *BracketSession) Close() {
	s.cancel()
	s.logger.Debug().Msg("session closed")
}

func (s *BracketSession) Load(ctx context.Context) (Notice, error) {
	return s.run(ctx, OpLoad, string(OpLoad), func(ctx context.Context) (string, error) {
		var (
			b        *bracket.Bracket
			date     *time.Time
			withDate bool
		)

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			b, err = s.fetch(gCtx)
			return err
		})
		g.Go(func() error {
			var err error
			date, err = s.client.GetMatchDate(gCtx, s.kompetisiID, s.kelasID)
			if err != nil && !api.IsNotFound(err) {
				// The class date is optional, keep the bracket and the last known date
				s.logger.Warn().Err(err).Msg("failed to load class match date")
				return nil
			}
			withDate = true
			return nil
		})
		if err := g.Wait(); err != nil {
			return "", fmt.Errorf("failed to load bracket: %w", err)
		}

		if err := s.replace(b, date, withDate); err != nil {
			return "", err
		}
		if b == nil {
			return "Bracket has not been generated yet", nil
		}
		return fmt.Sprintf("Loaded bracket with %d matches", len(b.Matches)), nil
	})
}

// fetch returns nil without error while the bracket is not generated.
func (s *BracketSession) fetch(ctx context.Context) (*bracket.Bracket, error) {
	b, err := s.client.GetBracket(ctx, s.kompetisiID, s.kelasID)
	if api.IsNotFound(err) {
		return nil, nil
	}
	return b, err
}

func (s *BracketSession) refresh(ctx context.Context) error {
	b, err := s.fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh bracket: %w", err)
	}
	return s.replace(b, nil, false)
}

func (s *BracketSession) replace(b *bracket.Bracket, date *time.Time, withDate bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.life.Err() != nil {
		return ErrSessionClosed
	}
	s.bracket = b
	if withDate {
		s.matchDate = date
	}
	return nil
}

// run executes op once per key. Concurrent calls with the same key share the
// in-flight request and its result.
func (s *BracketSession) run(ctx context.Context, op Operation, key string, fn func(context.Context) (string, error)) (Notice, error) {
	if s.life.Err() != nil {
		return Notice{}, ErrSessionClosed
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		s.setBusy(op, 1)
		defer s.setBusy(op, -1)

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		stop := context.AfterFunc(s.life, cancel)
		defer stop()

		start := time.Now()
		msg, err := fn(ctx)
		if err != nil {
			s.logger.Error().Err(err).Str("op", string(op)).Dur("duration", time.Since(start)).Msg("operation failed")
			return nil, err
		}
		s.logger.Info().Str("op", string(op)).Dur("duration", time.Since(start)).Msg(msg)
		return msg, nil
	})
	if shared {
		s.logger.Debug().Str("op", string(op)).Msg("joined in-flight request")
	}
	if err != nil {
		if s.life.Err() != nil {
			return Notice{}, ErrSessionClosed
		}
		return Notice{}, err
	}
	return Notice{Operation: op, Message: v.(string)}, nil
}

func (s *BracketSession) setBusy(op Operation, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy[op] += delta
}
