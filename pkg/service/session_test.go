package service

import (
	"testing"
	"time"

	"academy-manager/pkg/errors"
	"academy-manager/pkg/types"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionService_RoundTrip(t *testing.T) {
	svc := NewSessionService("segredo", time.Hour, zap.NewNop())
	principal := types.Principal{ID: 7, Username: "ana", Role: types.RoleProfessor}

	token, err := svc.GenerateToken(principal)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, principal, claims.Principal())
	assert.Equal(t, time.Hour, svc.GetTTL())
}

func TestSessionService_Rejects(t *testing.T) {
	svc := NewSessionService("segredo", time.Hour, zap.NewNop())

	t.Run("outra chave", func(t *testing.T) {
		other := NewSessionService("outro", time.Hour, zap.NewNop())
		token, err := other.GenerateToken(types.Principal{ID: 1, Username: "x", Role: "admin"})
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("expirado", func(t *testing.T) {
		expired := NewSessionService("segredo", -time.Minute, zap.NewNop())
		token, err := expired.GenerateToken(types.Principal{ID: 1, Username: "x", Role: "admin"})
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, errors.ErrTokenExpired)
	})

	t.Run("algoritmo diferente", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{UserID: 1})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateToken(signed)
		assert.Error(t, err)
	})

	t.Run("lixo", func(t *testing.T) {
		_, err := svc.ValidateToken("nao-e-um-token")
		assert.ErrorIs(t, err, errors.ErrInvalidToken)
	})
}
