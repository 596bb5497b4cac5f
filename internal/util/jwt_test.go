package util

import (
	"testing"
	"time"

	"skilltrack_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "unit-test-secret-that-is-long-enough!!"
	user := &model.User{
		Username: "observer1",
		Role:     model.RoleObserver,
	}
	user.ID = model.GenerateUUID()

	token, err := GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleObserver, claims.Role)
	assert.Equal(t, "observer1", claims.Username)
}

func TestJWTRejectsBadTokens(t *testing.T) {
	secret := "unit-test-secret-that-is-long-enough!!"
	user := &model.User{Username: "trainer1", Role: model.RoleTrainer}
	user.ID = model.GenerateUUID()

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateJWT(user, secret, time.Hour)
		require.NoError(t, err)
		_, err = ParseJWT(token, "a-different-secret-of-sufficient-size")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateJWT(user, secret, -time.Minute)
		require.NoError(t, err)
		_, err = ParseJWT(token, secret)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseJWT("not.a.jwt", secret)
		assert.Error(t, err)
	})
}
