package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pusdatin/simontok/internal/common/config"
)

const testSecret = "test-secret-key-of-at-least-32-chars!"

func newTestService(t *testing.T, d time.Duration) *Service {
	t.Helper()
	svc, err := NewService(config.JWTConfig{SecretKey: testSecret, Duration: d})
	require.NoError(t, err)
	return svc
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(config.JWTConfig{SecretKey: "", Duration: time.Hour})
	assert.ErrorIs(t, err, ErrEmptySecretKey)

	_, err = NewService(config.JWTConfig{SecretKey: "short", Duration: time.Hour})
	assert.ErrorIs(t, err, ErrWeakSecretKey)

	_, err = NewService(config.JWTConfig{SecretKey: testSecret, Duration: 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.GenerateToken("U0001", "Budi", 1, "TKY", "sid-abc")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "U0001", claims.UserID)
	assert.Equal(t, "Budi", claims.Name)
	assert.Equal(t, 1, claims.Role)
	assert.Equal(t, "TKY", claims.Office)
	assert.Equal(t, "sid-abc", claims.SessionID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService(t, time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	svc := newTestService(t, time.Hour)
	other := newTestService(t, time.Hour)
	other.config.SecretKey = "another-secret-key-of-at-least-32-chars"

	token, err := svc.GenerateToken("U0001", "Budi", 1, "TKY", "sid-abc")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := newTestService(t, time.Millisecond)

	token, err := svc.GenerateToken("U0001", "Budi", 1, "TKY", "sid-abc")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestDuration(t *testing.T) {
	svc := newTestService(t, 2*time.Hour)
	assert.Equal(t, 2*time.Hour, svc.Duration())
}
