package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/api"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/config"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/httputil"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/middleware"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

const maxParticipants = 1024

// Server exposes computed bracket layouts over HTTP. It keeps no state of its
// own: every request loads the bracket from the backend.
type Server struct {
	client *api.Client
	layout bracket.LayoutConfig
	logger zerolog.Logger
}

func NewServer(client *api.Client, cfg *config.Config, logger zerolog.Logger) *Server {
	return &Server{
		client: client,
		layout: cfg.Layout,
		logger: logger.With().Str("component", "server").Logger(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.ForwardToken)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.NotFound(w, r, "Route not found", nil)
	})

	r.Get("/healthz", s.health)
	r.Get("/rounds/structure", s.structure)

	r.Route("/kompetisi/{kompetisiId}/brackets/{kelasId}", func(r chi.Router) {
		r.Get("/layout", s.bracketLayout)
		r.Get("/standings", s.bracketStandings)
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type roundInfo struct {
	Round   int    `json:"round"`
	Name    string `json:"name"`
	Matches int    `json:"matches"`
}

type structureResponse struct {
	bracket.RoundStructure
	Rounds []roundInfo `json:"rounds"`
}

func (s *Server) structure(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(r.URL.Query().Get("participants"))
	if err != nil || count < 0 {
		httputil.BadRequest(w, r, "participants must be a non-negative number", err)
		return
	}
	if count > maxParticipants {
		httputil.BadRequest(w, r, "too many participants", nil)
		return
	}

	rs := bracket.Structure(count)
	resp := structureResponse{RoundStructure: rs, Rounds: []roundInfo{}}
	for i, matches := range rs.MatchesPerRound {
		round := i + 1
		resp.Rounds = append(resp.Rounds, roundInfo{
			Round:   round,
			Name:    bracket.RoundName(round, rs.TotalRounds, count, nil),
			Matches: matches,
		})
	}
	httputil.JSON(w, r, http.StatusOK, resp)
}

type layoutResponse struct {
	Generated bool               `json:"generated"`
	Bracket   *bracket.Bracket   `json:"bracket,omitempty"`
	Layout    *bracket.Layout    `json:"layout,omitempty"`
	Standings *bracket.Standings `json:"standings,omitempty"`
	MatchDate string             `json:"matchDate,omitempty"`
}

func (s *Server) bracketLayout(w http.ResponseWriter, r *http.Request) {
	session, ok := s.load(w, r)
	if !ok {
		return
	}
	defer session.Close()

	b := session.Bracket()
	if b == nil {
		httputil.JSON(w, r, http.StatusOK, layoutResponse{Generated: false})
		return
	}

	standings := session.Standings()
	resp := layoutResponse{
		Generated: true,
		Bracket:   b,
		Layout:    session.Layout(s.layout),
		Standings: &standings,
	}
	if date := session.MatchDate(); date != nil {
		resp.MatchDate = api.FormatDate(*date)
	}
	httputil.JSON(w, r, http.StatusOK, resp)
}

func (s *Server) bracketStandings(w http.ResponseWriter, r *http.Request) {
	session, ok := s.load(w, r)
	if !ok {
		return
	}
	defer session.Close()

	if session.Bracket() == nil {
		httputil.JSON(w, r, http.StatusOK, layoutResponse{Generated: false})
		return
	}
	standings := session.Standings()
	httputil.JSON(w, r, http.StatusOK, layoutResponse{Generated: true, Standings: &standings})
}

// load fetches the bracket named in the URL with the caller's token.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*service.BracketSession, bool) {
	kompetisiID, err := strconv.Atoi(chi.URLParam(r, "kompetisiId"))
	if err != nil {
		httputil.BadRequest(w, r, "Invalid competition ID", err)
		return nil, false
	}
	kelasID, err := strconv.Atoi(chi.URLParam(r, "kelasId"))
	if err != nil {
		httputil.BadRequest(w, r, "Invalid class ID", err)
		return nil, false
	}

	client := s.client
	if token, ok := middleware.GetToken(r.Context()); ok {
		client = client.WithToken(token)
	}

	session := service.NewBracketSession(client, kompetisiID, kelasID, *zerolog.Ctx(r.Context()))
	if _, err := session.Load(r.Context()); err != nil {
		session.Close()
		status := 0
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
		httputil.Upstream(w, r, status, api.UserMessage(err), err)
		return nil, false
	}
	return session, true
}
