package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"BAGAN_API_URL", "BAGAN_API_TOKEN", "BAGAN_HTTP_TIMEOUT", "SERVER_PORT", "LOG_LEVEL", "BAGAN_CARD_HEIGHT", "BAGAN_CARD_GAP"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/api", cfg.APIBaseURL)
	assert.Empty(t, cfg.APIToken)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 120.0, cfg.Layout.CardHeight)
	assert.Equal(t, 40.0, cfg.Layout.CardGap)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BAGAN_API_URL", "https://api.example.test/api/")
	t.Setenv("BAGAN_API_TOKEN", "secret")
	t.Setenv("BAGAN_HTTP_TIMEOUT", "3s")
	t.Setenv("BAGAN_CARD_HEIGHT", "90")
	t.Setenv("BAGAN_CARD_GAP", "12.5")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test/api", cfg.APIBaseURL)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 90.0, cfg.Layout.CardHeight)
	assert.Equal(t, 12.5, cfg.Layout.CardGap)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unparseable timeout", key: "BAGAN_HTTP_TIMEOUT", value: "soon"},
		{name: "negative timeout", key: "BAGAN_HTTP_TIMEOUT", value: "-1s"},
		{name: "unparseable card height", key: "BAGAN_CARD_HEIGHT", value: "tall"},
		{name: "negative gap", key: "BAGAN_CARD_GAP", value: "-4"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load(zerolog.Nop())
			assert.Error(t, err)
		})
	}
}
