package jwt

import (
	"testing"
	"time"

	"Food-Surplus-Backend/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiry time.Duration) *jwtService {
	return &jwtService{secretKey: "test-secret", issuer: "FOOD-SURPLUS", expiry: expiry}
}

func TestGenerateAndParseToken(t *testing.T) {
	s := newTestService(time.Hour)

	token := s.GenerateTokenUser("user-1", domain.RoleReceiver)
	require.NotEmpty(t, token)

	id, role, err := s.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, domain.RoleReceiver, role)
}

func TestGetUserIDByToken_Expired(t *testing.T) {
	s := newTestService(-time.Minute)

	_, _, err := s.GetUserIDByToken(s.GenerateTokenUser("user-1", domain.RoleDonor))
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestGetUserIDByToken_WrongSecret(t *testing.T) {
	token := newTestService(time.Hour).GenerateTokenUser("user-1", domain.RoleDonor)

	other := &jwtService{secretKey: "another-secret", issuer: "FOOD-SURPLUS", expiry: time.Hour}
	_, _, err := other.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwtUserClaim{UserID: "user-1", Role: domain.RoleAdmin}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = newTestService(time.Hour).GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_Garbage(t *testing.T) {
	_, _, err := newTestService(time.Hour).GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
