package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	iss, err := NewIssuer("secret", time.Hour)
	require.NoError(t, err)

	tok, sid, err := iss.New()
	require.NoError(t, err)
	_, err = uuid.Parse(sid)
	require.NoError(t, err)

	got, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, sid, got)

	again, err := iss.Sign(sid)
	require.NoError(t, err)
	got, err = iss.Parse(again)
	require.NoError(t, err)
	assert.Equal(t, sid, got)
}

func TestIssuer_Rejects(t *testing.T) {
	iss, err := NewIssuer("secret", time.Minute)
	require.NoError(t, err)
	other, err := NewIssuer("other", time.Minute)
	require.NoError(t, err)

	tok, _, err := other.New()
	require.NoError(t, err)
	_, err = iss.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalid, "wrong secret")

	_, err = iss.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalid)

	tok, _, err = iss.New()
	require.NoError(t, err)
	iss.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = iss.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalid, "expired")

	bad, err := iss.Sign("not-a-uuid")
	require.NoError(t, err)
	_, err = iss.Parse(bad)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour)
	assert.Error(t, err)
}
