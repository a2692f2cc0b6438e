package auth

import (
	"testing"
	"time"

	"github.com/goodsflow/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-signing-tokens",
		AccessTokenExpiration: expiration,
		Issuer:                "goodsflow-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	userID := uuid.New()
	branchID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(GenerateTokenInput{
		UserID:   userID,
		Username: "warehouse-clerk",
		BranchID: &branchID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 2*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "warehouse-clerk", claims.Username)
	assert.Equal(t, branchID.String(), claims.BranchID)

	parsedUser, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsedUser)

	parsedBranch, err := claims.GetBranchUUID()
	require.NoError(t, err)
	require.NotNil(t, parsedBranch)
	assert.Equal(t, branchID, *parsedBranch)
}

func TestJWTService_TokenWithoutBranch(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	token, _, err := svc.GenerateToken(GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "hq-admin",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.BranchID)

	branch, err := claims.GetBranchUUID()
	require.NoError(t, err)
	assert.Nil(t, branch)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestService(-1 * time.Minute)

	token, _, err := svc.GenerateToken(GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "clerk",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-secret-key",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "goodsflow-test",
	})

	token, _, err := svc.GenerateToken(GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "clerk",
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
