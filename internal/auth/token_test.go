package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capsterapi/internal/config"
	"capsterapi/internal/model"
)

func TestNewVerifier(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		v, err := NewVerifier(config.AuthConfig{Issuer: "capsterapi"})
		assert.Error(t, err)
		assert.Nil(t, v)
	})

	t.Run("ok", func(t *testing.T) {
		v, err := NewVerifier(config.AuthConfig{JWTSecret: "s3cret", Issuer: "capsterapi"})
		assert.NoError(t, err)
		assert.NotNil(t, v)
	})
}

func TestParseSession(t *testing.T) {
	v, err := NewVerifier(config.AuthConfig{JWTSecret: "s3cret", Issuer: "capsterapi"})
	require.NoError(t, err)

	sess := model.Session{UserID: "tech-1", FullName: "Budi Santoso", Role: model.RoleTechnician}

	t.Run("round trip", func(t *testing.T) {
		token, err := Sign("s3cret", "capsterapi", sess, time.Hour)
		require.NoError(t, err)

		got, err := v.ParseSession(token)
		require.NoError(t, err)
		assert.Equal(t, sess, got)
		assert.True(t, got.IsTechnician())
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := Sign("other-secret", "capsterapi", sess, time.Hour)
		require.NoError(t, err)

		_, err = v.ParseSession(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := Sign("s3cret", "someone-else", sess, time.Hour)
		require.NoError(t, err)

		_, err = v.ParseSession(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := Sign("s3cret", "capsterapi", sess, -time.Minute)
		require.NoError(t, err)

		_, err = v.ParseSession(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.ParseSession("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
