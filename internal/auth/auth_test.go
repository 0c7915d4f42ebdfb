package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateAccessToken("owner", "owner@gymflex.local", RoleOwner, "", testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "owner", claims.UserID)
	assert.Equal(t, "owner@gymflex.local", claims.Email)
	assert.Equal(t, RoleOwner, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	assert.Empty(t, claims.GymID)
}

func TestOperatorTokenCarriesGymID(t *testing.T) {
	token, err := GenerateAccessToken("operator:gym-1", "operator@gymflex.local", RoleOperator, "gym-1", testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, RoleOperator, claims.Role)
	assert.Equal(t, "gym-1", claims.GymID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("owner", "owner@gymflex.local", RoleOwner, "", testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)

	_, err = ValidateToken("", testSecret)
	assert.Error(t, err)
}

func TestEmptySecretRejected(t *testing.T) {
	_, err := GenerateAccessToken("owner", "owner@gymflex.local", RoleOwner, "", "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)

	_, err = ValidateToken("token", "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestRefreshAccessToken(t *testing.T) {
	access, refresh, err := GenerateTokens("owner", "owner@gymflex.local", RoleOwner, "", testSecret)
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	newAccess, claims, err := RefreshAccessToken(refresh, testSecret)
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, claims.Role)

	newClaims, err := ValidateToken(newAccess, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "access", newClaims.TokenType)
}

func TestRefreshAccessToken_RejectsAccessToken(t *testing.T) {
	access, _, err := GenerateTokens("owner", "owner@gymflex.local", RoleOwner, "", testSecret)
	require.NoError(t, err)

	_, _, err = RefreshAccessToken(access, testSecret)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
	assert.False(t, CheckPassword("", "anything"))
}
