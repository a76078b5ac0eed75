package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

func TestNewService_ShortSecretRejected(t *testing.T) {
	t.Parallel()

	_, err := NewService(Config{Secret: "short"})
	assert.ErrorIs(t, err, ErrInvalidSecretLength)
}

func TestNewService_AppliesDefaults(t *testing.T) {
	t.Parallel()

	svc, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)
	assert.Equal(t, "opcuad", svc.cfg.Issuer)
	assert.Equal(t, time.Hour, svc.cfg.TokenDuration)
}

func TestIssueAndValidateToken(t *testing.T) {
	t.Parallel()

	svc, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)

	token, err := svc.IssueToken("operator-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator-1", claims.Subject)
	assert.Equal(t, "opcuad", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	svc, err := NewService(Config{Secret: testSecret, TokenDuration: -time.Minute})
	require.NoError(t, err)

	token, err := svc.IssueToken("operator-1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	svc1, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)
	svc2, err := NewService(Config{Secret: "a-completely-different-32-char-secret!!"})
	require.NoError(t, err)

	token, err := svc1.IssueToken("operator-1")
	require.NoError(t, err)

	_, err = svc2.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	svc, err := NewService(Config{Secret: testSecret})
	require.NoError(t, err)

	_, err = svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
