package qr

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURL(t *testing.T) {
	p := Payload{
		SessionID: 7,
		Token:     "tok-abc",
		Subject:   "Data Structures",
		ExpiresAt: time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC),
	}

	url, err := DataURL(p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestPayloadRoundTrip(t *testing.T) {
	p := Payload{
		SessionID: 7,
		Token:     "tok-abc",
		Subject:   "Data Structures",
		ExpiresAt: time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC),
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded Payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)

	// Field names match what scanning clients submit back.
	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"session_id", "token", "subject", "expires_at"} {
		assert.Contains(t, fields, key)
	}
}
