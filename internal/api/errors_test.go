package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/api"
	"github.com/stretchr/testify/assert"
)

func TestIsAlreadyExists(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "bagan sudah dibuat", err: &api.Error{Status: http.StatusBadRequest, Message: "Bagan sudah dibuat"}, want: true},
		{name: "bagan sudah ada", err: &api.Error{Status: http.StatusBadRequest, Message: "Bagan untuk kelas ini sudah ada"}, want: true},
		{name: "english conflict", err: &api.Error{Status: http.StatusConflict, Message: "Bracket already exists"}, want: true},
		{name: "wrapped", err: fmt.Errorf("shuffle: %w", &api.Error{Status: http.StatusBadRequest, Message: "Bagan sudah dibuat"}), want: true},
		{name: "matches already started", err: &api.Error{Status: http.StatusBadRequest, Message: "Pertandingan sudah dimulai, tidak dapat diacak"}, want: false},
		{name: "match already scored", err: &api.Error{Status: http.StatusBadRequest, Message: "Match sudah memiliki skor"}, want: false},
		{name: "bracket locked", err: &api.Error{Status: http.StatusBadRequest, Message: "Bagan sudah dikunci"}, want: false},
		{name: "server error", err: &api.Error{Status: http.StatusInternalServerError, Message: "Bagan sudah dibuat"}, want: false},
		{name: "not an api error", err: errors.New("bagan sudah dibuat"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.IsAlreadyExists(tt.err))
		})
	}
}
