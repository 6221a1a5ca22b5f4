package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-key-0123456789abcdef"

func TestGenerateAndValidateAccessToken(t *testing.T) {
	jm := NewJWTManager(testSecret, "adminmaster", time.Hour)

	token, err := jm.GenerateAccessToken(42, "zhangsan", []string{"admin", "ops"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jm.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "zhangsan", claims.Username)
	assert.Equal(t, []string{"admin", "ops"}, claims.RoleKeys)
	assert.Equal(t, "adminmaster", claims.Issuer)
	assert.Equal(t, "zhangsan", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	jm := NewJWTManager(testSecret, "adminmaster", time.Hour)
	other := NewJWTManager("another-secret-key-fedcba9876543210aa", "adminmaster", time.Hour)

	token, err := jm.GenerateAccessToken(1, "zhangsan", nil)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	jm := NewJWTManager(testSecret, "adminmaster", -time.Minute)

	token, err := jm.GenerateAccessToken(1, "zhangsan", nil)
	require.NoError(t, err)

	_, err = jm.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	jm := NewJWTManager(testSecret, "adminmaster", time.Hour)

	_, err := jm.ValidateAccessToken("not.a.token")
	require.Error(t, err)

	_, err = jm.ValidateAccessToken("")
	require.Error(t, err)
}

func TestTokenIDsUnique(t *testing.T) {
	jm := NewJWTManager(testSecret, "adminmaster", time.Hour)

	t1, err := jm.GenerateAccessToken(1, "zhangsan", nil)
	require.NoError(t, err)
	t2, err := jm.GenerateAccessToken(1, "zhangsan", nil)
	require.NoError(t, err)
	// jti 随机，同一身份两次签发产生不同令牌
	assert.NotEqual(t, t1, t2)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"empty", "", ""},
		{"no_prefix", "abc.def.ghi", ""},
		{"prefix_only", "Bearer ", ""},
		{"wrong_scheme", "Basic abc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTokenFromHeader(tt.header))
		})
	}
}

func TestClaimAccessors(t *testing.T) {
	jm := NewJWTManager(testSecret, "adminmaster", time.Hour)

	token, err := jm.GenerateAccessToken(7, "lisi", []string{"common"})
	require.NoError(t, err)

	userID, err := jm.GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	username, err := jm.GetUsernameFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "lisi", username)

	roleKeys, err := jm.GetRoleKeysFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"common"}, roleKeys)
}
