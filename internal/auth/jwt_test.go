package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	token, exp, err := Issue(42, "student", "CSE", "campusattend", "secret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := Parse(token, "secret", "campusattend")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "CSE", claims.Department)
}

func TestParseWrongKey(t *testing.T) {
	token, _, err := Issue(42, "student", "CSE", "campusattend", "secret", time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "other-secret", "campusattend")
	assert.Error(t, err)
}

func TestParseIssuerMismatch(t *testing.T) {
	token, _, err := Issue(42, "student", "CSE", "someone-else", "secret", time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "secret", "campusattend")
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	token, _, err := Issue(42, "student", "CSE", "campusattend", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, "secret", "campusattend")
	assert.Error(t, err)
}
