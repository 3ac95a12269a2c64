// Package apitest runs an in-memory bracket backend for tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/api"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
	"github.com/go-chi/chi/v5"
)

type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          []byte
}

type failure struct {
	method  string
	path    string
	status  int
	message string
}

// Backend fakes the competition API. Brackets are keyed by class id and built
// from the registered participants in draw order.
type Backend struct {
	Server *httptest.Server

	mu           sync.Mutex
	participants map[int][]api.ParticipantPayload
	brackets     map[int]*api.BracketPayload
	matchDates   map[int]string
	requests     []Request
	failures     []failure
	holds        []*Hold
	nextMatchID  int
}

// Hold parks matching requests until Release is called.
type Hold struct {
	method  string
	path    string
	arrived chan struct{}
	release chan struct{}
	arrive  sync.Once
	done    sync.Once
}

// Arrived is closed once the first matching request is parked.
func (h *Hold) Arrived() <-chan struct{} {
	return h.arrived
}

func (h *Hold) Release() {
	h.done.Do(func() { close(h.release) })
}

func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		participants: make(map[int][]api.ParticipantPayload),
		brackets:     make(map[int]*api.BracketPayload),
		matchDates:   make(map[int]string),
		nextMatchID:  100,
	}
	b.Server = httptest.NewServer(b.router())
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.Server.URL
}

func (b *Backend) Register(kelasID int, participants ...api.ParticipantPayload) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.participants[kelasID] = append(b.participants[kelasID], participants...)
}

func (b *Backend) SetBracket(kelasID int, payload api.BracketPayload) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.brackets[kelasID] = &payload
}

func (b *Backend) SetMatchDate(kelasID int, date string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.matchDates[kelasID] = date
}

func (b *Backend) Bracket(kelasID int) (api.BracketPayload, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.brackets[kelasID]
	if !ok {
		return api.BracketPayload{}, false
	}
	return *p, true
}

func (b *Backend) Hold(method, pathSuffix string) *Hold {
	h := &Hold{
		method:  method,
		path:    pathSuffix,
		arrived: make(chan struct{}),
		release: make(chan struct{}),
	}
	b.mu.Lock()
	b.holds = append(b.holds, h)
	b.mu.Unlock()
	return h
}

// Fail makes the next request matching method and path suffix answer with the
// given status and message.
func (b *Backend) Fail(method, pathSuffix string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = append(b.failures, failure{method: method, path: pathSuffix, status: status, message: message})
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Count returns how many requests hit a method and path suffix.
func (b *Backend) Count(method, pathSuffix string) int {
	count := 0
	for _, r := range b.Requests() {
		if r.Method == method && strings.HasSuffix(r.Path, pathSuffix) {
			count++
		}
	}
	return count
}

func Athlete(id int, nama, dojang string) api.ParticipantPayload {
	return api.ParticipantPayload{
		ID:     id,
		Status: string(bracket.StatusApproved),
		Atlet:  &api.AtletPayload{ID: id * 10, Nama: nama, Dojang: &api.DojangPayload{ID: 1, Nama: dojang}},
	}
}

func (b *Backend) router() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)

	r.Route("/kompetisi/{kompetisiId}/brackets", func(r chi.Router) {
		r.Post("/generate", b.generate)
		r.Post("/shuffle", b.shuffle)
		r.Put("/match/{matchId}", b.updateMatch)
		r.Get("/{kelasId}", b.getBracket)
		r.Delete("/{kelasId}", b.deleteBracket)
		r.Post("/{kelasId}/clear-results", b.clearResults)
		r.Delete("/{kelasId}/scheduling", b.clearScheduling)
		r.Put("/{kelasId}/matches/{matchId}/assign", b.assign)
		r.Get("/{kelasId}/tanggal", b.matchDate)
	})

	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			var raw json.RawMessage
			if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
				body = raw
			}
		}

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          body,
		})
		for i, f := range b.failures {
			if f.method == r.Method && strings.HasSuffix(r.URL.Path, f.path) {
				b.failures = append(b.failures[:i], b.failures[i+1:]...)
				b.mu.Unlock()
				writeJSON(w, f.status, map[string]any{"success": false, "message": f.message})
				return
			}
		}
		var held []*Hold
		for _, h := range b.holds {
			if h.method == r.Method && strings.HasSuffix(r.URL.Path, h.path) {
				held = append(held, h)
			}
		}
		b.mu.Unlock()

		for _, h := range held {
			h.arrive.Do(func() { close(h.arrived) })
			<-h.release
		}

		r.Body = http.NoBody
		if body != nil {
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) generate(w http.ResponseWriter, r *http.Request) {
	var req api.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.brackets[req.KelasKejuaraanID]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Bagan sudah dibuat"})
		return
	}
	if len(b.participants[req.KelasKejuaraanID]) < 2 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Peserta tidak cukup"})
		return
	}
	b.brackets[req.KelasKejuaraanID] = b.build(urlInt(r, "kompetisiId"), req.KelasKejuaraanID, false)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "Bagan berhasil dibuat"})
}

func (b *Backend) shuffle(w http.ResponseWriter, r *http.Request) {
	var req api.ShuffleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.brackets[req.KelasKejuaraanID]; !exists {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Bagan tidak ditemukan"})
		return
	}
	b.brackets[req.KelasKejuaraanID] = b.build(urlInt(r, "kompetisiId"), req.KelasKejuaraanID, true)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// build pairs the registered participants in order, reversed when shuffled.
func (b *Backend) build(kompetisiID, kelasID int, reversed bool) *api.BracketPayload {
	participants := append([]api.ParticipantPayload(nil), b.participants[kelasID]...)
	if reversed {
		for i, j := 0, len(participants)-1; i < j; i, j = i+1, j-1 {
			participants[i], participants[j] = participants[j], participants[i]
		}
	}

	payload := &api.BracketPayload{
		ID:               kelasID,
		KompetisiID:      kompetisiID,
		KelasKejuaraanID: kelasID,
		Participants:     participants,
	}

	structure := bracket.Structure(len(participants))
	next := 0
	for r, count := range structure.MatchesPerRound {
		for i := 0; i < count; i++ {
			b.nextMatchID++
			m := api.MatchPayload{ID: b.nextMatchID, Round: r + 1, Position: i + 1}
			if r == 0 {
				m.ParticipantA, next = take(participants, next)
				m.ParticipantB, next = take(participants, next)
			}
			payload.Matches = append(payload.Matches, m)
		}
	}
	// With three participants the leftover athlete waits in the final
	if len(participants) == 3 {
		payload.Matches[1].ParticipantB = &participants[2]
	}
	return payload
}

func take(participants []api.ParticipantPayload, idx int) (*api.ParticipantPayload, int) {
	if idx >= len(participants) {
		return nil, idx
	}
	p := participants[idx]
	return &p, idx + 1
}

func (b *Backend) getBracket(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	payload, ok := b.brackets[urlInt(r, "kelasId")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Bagan belum dibuat"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": payload})
}

func (b *Backend) deleteBracket(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kelasID := urlInt(r, "kelasId")
	if _, ok := b.brackets[kelasID]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Bagan tidak ditemukan"})
		return
	}
	delete(b.brackets, kelasID)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *Backend) clearResults(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	payload, ok := b.brackets[urlInt(r, "kelasId")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Bagan tidak ditemukan"})
		return
	}
	for i := range payload.Matches {
		payload.Matches[i].ScoreA = nil
		payload.Matches[i].ScoreB = nil
		payload.Matches[i].WinnerID = nil
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *Backend) clearScheduling(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	payload, ok := b.brackets[urlInt(r, "kelasId")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Bagan tidak ditemukan"})
		return
	}
	for i := range payload.Matches {
		payload.Matches[i].NomorAntrian = nil
		payload.Matches[i].NomorLapangan = nil
		payload.Matches[i].TanggalPertandingan = nil
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *Backend) updateMatch(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.findMatch(urlInt(r, "matchId"))
	if m == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Match tidak ditemukan"})
		return
	}
	if req.ScoreA != nil {
		m.ScoreA = req.ScoreA
	}
	if req.ScoreB != nil {
		m.ScoreB = req.ScoreB
	}
	if req.WinnerID != nil {
		m.WinnerID = req.WinnerID
	}
	if req.NomorAntrian != nil {
		m.NomorAntrian = req.NomorAntrian
		m.NomorLapangan = req.NomorLapangan
	}
	if req.TanggalPertandingan != nil {
		m.TanggalPertandingan = req.TanggalPertandingan
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": m})
}

func (b *Backend) assign(w http.ResponseWriter, r *http.Request) {
	var req api.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	kelasID := urlInt(r, "kelasId")
	m := b.findMatch(urlInt(r, "matchId"))
	if m == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Match tidak ditemukan"})
		return
	}
	if (m.ScoreA != nil && *m.ScoreA > 0) || (m.ScoreB != nil && *m.ScoreB > 0) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Match sudah memiliki skor"})
		return
	}

	var participant *api.ParticipantPayload
	for _, p := range b.participants[kelasID] {
		if p.ID == req.ParticipantID {
			p := p
			participant = &p
		}
	}
	if participant == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Peserta tidak ditemukan"})
		return
	}
	if req.Slot == bracket.SlotA {
		m.ParticipantA = participant
	} else {
		m.ParticipantB = participant
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *Backend) matchDate(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	date, ok := b.matchDates[urlInt(r, "kelasId")]
	data := map[string]any{"tanggalPertandingan": nil}
	if ok {
		data["tanggalPertandingan"] = date
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func (b *Backend) findMatch(id int) *api.MatchPayload {
	for _, payload := range b.brackets {
		for i := range payload.Matches {
			if payload.Matches[i].ID == id {
				return &payload.Matches[i]
			}
		}
	}
	return nil
}

func urlInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil {
		panic(fmt.Sprintf("apitest: %s is not a number", key))
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
