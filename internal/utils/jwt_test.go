package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionTokenClaims(t *testing.T) {
	tok, err := NewSessionToken("s3cret", 42, "organizer", "Org", 60)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), tok.Exp, 5*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "organizer", claims["role"])
	assert.Equal(t, "Org", claims["name"])
}

func TestNewSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("s3cret", 42, "participant", "A", 60)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("different"), nil
	})
	assert.Error(t, err)
}

func TestNewSessionTokenExpired(t *testing.T) {
	tok, err := NewSessionToken("s3cret", 42, "participant", "A", -5)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
