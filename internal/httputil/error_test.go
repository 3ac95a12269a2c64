package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter, r *http.Request)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "bad request",
			write:      func(w http.ResponseWriter, r *http.Request) { BadRequest(w, r, "invalid id", nil) },
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid id"}`,
		},
		{
			name:       "not found",
			write:      func(w http.ResponseWriter, r *http.Request) { NotFound(w, r, "no bracket", errors.New("404")) },
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"no bracket"}`,
		},
		{
			name:       "upstream failure",
			write:      func(w http.ResponseWriter, r *http.Request) { Upstream(w, r, 500, "Gagal", errors.New("x")) },
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"Gagal"}`,
		},
		{
			name:       "upstream auth failure keeps status",
			write:      func(w http.ResponseWriter, r *http.Request) { Upstream(w, r, 401, "Unauthorized", errors.New("x")) },
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
