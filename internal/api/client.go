package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/config"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Client talks to the competition backend under /kompetisi/{id}/brackets.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		token:   cfg.APIToken,
		timeout: cfg.HTTPTimeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     32,
			ReadTimeout:         cfg.HTTPTimeout,
			WriteTimeout:        cfg.HTTPTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// WithToken returns a client sending the given bearer token. An empty token
// sends no Authorization header at all.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func bracketsPath(kompetisiID int) string {
	return fmt.Sprintf("/kompetisi/%d/brackets", kompetisiID)
}

func (c *Client) GetBracket(ctx context.Context, kompetisiID, kelasID int) (*bracket.Bracket, error) {
	path := fmt.Sprintf("%s/%d", bracketsPath(kompetisiID), kelasID)
	payload, err := doRequest[BracketPayload](ctx, c, fasthttp.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	b := ToBracket(*payload)
	if b.KompetisiID == 0 {
		b.KompetisiID = kompetisiID
	}
	if b.KelasKejuaraanID == 0 {
		b.KelasKejuaraanID = kelasID
	}
	return &b, nil
}

func (c *Client) Generate(ctx context.Context, kompetisiID int, req GenerateRequest) error {
	if req.ByeParticipantIDs == nil {
		req.ByeParticipantIDs = []int{}
	}
	_, err := doRequest[json.RawMessage](ctx, c, fasthttp.MethodPost, bracketsPath(kompetisiID)+"/generate", req)
	return err
}

func (c *Client) Shuffle(ctx context.Context, kompetisiID int, req ShuffleRequest) error {
	_, err := doRequest[json.RawMessage](ctx, c, fasthttp.MethodPost, bracketsPath(kompetisiID)+"/shuffle", req)
	return err
}

func (c *Client) ClearResults(ctx context.Context, kompetisiID, kelasID int) error {
	path := fmt.Sprintf("%s/%d/clear-results", bracketsPath(kompetisiID), kelasID)
	_, err := doRequest[json.RawMessage](ctx, c, fasthttp.MethodPost, path, nil)
	return err
}

func (c *Client) DeleteBracket(ctx context.Context, kompetisiID, kelasID int) error {
	path := fmt.Sprintf("%s/%d", bracketsPath(kompetisiID), kelasID)
	_, err := doRequest[json.RawMessage](ctx, c, fasthttp.MethodDelete, path, nil)
	return err
}

func (c *Client) UpdateMatch(ctx context.Context, kompetisiID, matchID int, req UpdateMatchRequest) error {
	path := fmt.Sprintf("%s/match/%d", bracketsPath(kompetisiID), matchID)
	_, err := doRequest[json.RawMessage](ctx, c, fasthttp.MethodPut, path, req)
	return err
}

func (c *Client) AssignParticipant(ctx context.Context, kompetisiID, kelasID, matchID int, req AssignRequest) error {
	path := fmt.Sprintf("%s/%d/matches/%d/assign", bracketsPath(kompetisiID), kelasID, matchID)
	_, err := doRequest[json.RawMessage](ctx, c, fasthttp.MethodPut, path, req)
	return err
}

func (c *Client) ClearScheduling(ctx context.Context, kompetisiID, kelasID int) error {
	path := fmt.Sprintf("%s/%d/scheduling", bracketsPath(kompetisiID), kelasID)
	_, err := doRequest[json.RawMessage](ctx, c, fasthttp.MethodDelete, path, nil)
	return err
}

// GetMatchDate returns the class-wide match date override, nil when none is set.
func (c *Client) GetMatchDate(ctx context.Context, kompetisiID, kelasID int) (*time.Time, error) {
	path := fmt.Sprintf("%s/%d/tanggal", bracketsPath(kompetisiID), kelasID)
	payload, err := doRequest[MatchDatePayload](ctx, c, fasthttp.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if payload.TanggalPertandingan == nil {
		return nil, nil
	}
	date, ok := ParseDate(*payload.TanggalPertandingan)
	if !ok {
		return nil, fmt.Errorf("invalid match date %q", *payload.TanggalPertandingan)
	}
	return &date, nil
}

func doRequest[T any](ctx context.Context, client *Client, method, path string, body any) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	requestID := uuid.NewString()
	req.SetRequestURI(client.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if client.token != "" {
		req.Header.Set("Authorization", "Bearer "+client.token)
	}
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(encoded)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(client.timeout)
	}

	start := time.Now()
	if err := client.client.DoDeadline(req, resp, deadline); err != nil {
		client.logger.Error().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	// fasthttp cannot abort an in-flight request, so a cancelled caller only learns about it here
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status := resp.StatusCode()
	client.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("backend request")

	if status < 200 || status >= 300 {
		apiErr := &Error{Method: method, Path: path, Status: status}
		var failure envelope[json.RawMessage]
		if err := json.Unmarshal(resp.Body(), &failure); err == nil {
			apiErr.Message = failure.Message
		}
		return nil, apiErr
	}

	var result envelope[T]
	if len(resp.Body()) == 0 {
		return &result.Data, nil
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return &result.Data, nil
}
