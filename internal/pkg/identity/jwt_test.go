package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkeley-decal/decal-portal/internal/pkg/apperrors"
)

func newTestVerifier() *JWTVerifier {
	return NewJWTVerifier(JWTConfig{
		SecretKey:   "test-secret-key",
		TokenIssuer: "decal.test",
	})
}

func TestVerifyRoundTrip(t *testing.T) {
	v := newTestVerifier()

	token, err := v.IssueToken("user-123", "student@berkeley.edu", time.Hour)
	require.NoError(t, err)

	caller, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", caller.ID)
	assert.Equal(t, "student@berkeley.edu", caller.Email)
}

func TestVerifyExpiredToken(t *testing.T) {
	v := newTestVerifier()

	token, err := v.IssueToken("user-123", "student@berkeley.edu", -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	other := NewJWTVerifier(JWTConfig{SecretKey: "different-secret", TokenIssuer: "decal.test"})
	token, err := other.IssueToken("user-123", "student@berkeley.edu", time.Hour)
	require.NoError(t, err)

	_, err = newTestVerifier().Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyWrongIssuer(t *testing.T) {
	other := NewJWTVerifier(JWTConfig{SecretKey: "test-secret-key", TokenIssuer: "someone-else"})
	token, err := other.IssueToken("user-123", "student@berkeley.edu", time.Hour)
	require.NoError(t, err)

	_, err = newTestVerifier().Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestVerifyMissingSubject(t *testing.T) {
	v := newTestVerifier()
	token, err := v.IssueToken("", "student@berkeley.edu", time.Hour)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestVerifyGarbageToken(t *testing.T) {
	v := newTestVerifier()

	_, err := v.Verify(context.Background(), "not-a-token")
	assert.Error(t, err)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = ExtractBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = ExtractBearerToken("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
