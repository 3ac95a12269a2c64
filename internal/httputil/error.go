package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type errorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

func BadRequest(w http.ResponseWriter, r *http.Request, msg string, err error) {
	event := zerolog.Ctx(r.Context()).Warn().Str("message", msg)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("bad request")
	JSON(w, r, http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(w http.ResponseWriter, r *http.Request, msg string, err error) {
	event := zerolog.Ctx(r.Context()).Warn().Str("message", msg)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("not found")
	JSON(w, r, http.StatusNotFound, errorResponse{Error: msg})
}

// Upstream reports a failed call to the bracket backend. Auth failures keep
// their status so the caller can re-authenticate, everything else is a 502.
func Upstream(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Int("upstream_status", status).Msg("backend request failed")
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
	default:
		status = http.StatusBadGateway
	}
	JSON(w, r, status, errorResponse{Error: msg})
}
