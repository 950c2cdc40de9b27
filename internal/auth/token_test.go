package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	iss, err := NewIssuer("s3cret")
	require.NoError(t, err)

	tok, err := iss.Issue("alice", time.Hour)
	require.NoError(t, err)

	user, err := iss.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "alice", user)
}

func TestParseRejectsOtherSecret(t *testing.T) {
	t.Parallel()

	a, _ := NewIssuer("one")
	b, _ := NewIssuer("two")
	tok, err := a.Issue("alice", 0)
	require.NoError(t, err)

	_, err = b.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	t.Parallel()

	iss, _ := NewIssuer("s3cret")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return base }
	tok, err := iss.Issue("alice", time.Minute)
	require.NoError(t, err)

	iss.now = func() time.Time { return base.Add(time.Hour) }
	_, err = iss.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	iss, _ := NewIssuer("s3cret")
	_, err := iss.Parse("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer("  ")
	require.Error(t, err)

	iss, _ := NewIssuer("x")
	_, err = iss.Issue(" ", time.Hour)
	require.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/habits", nil)
	_, err := ExtractToken(r)
	require.ErrorIs(t, err, ErrMissingToken)

	r.Header.Set("Authorization", "Basic abc")
	_, err = ExtractToken(r)
	require.ErrorIs(t, err, ErrMissingToken)

	r.Header.Set("Authorization", "bearer abc.def")
	tok, err := ExtractToken(r)
	require.NoError(t, err)
	require.Equal(t, "abc.def", tok)
}
