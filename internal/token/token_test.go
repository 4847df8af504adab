package token

import (
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	u := &model.User{
		Username: "alice",
		Email:    "alice@test.com",
		FullName: "Alice",
	}
	u.ID = 7
	return u
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tokenString, err := issuer.SignAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := issuer.ParseAccessToken(tokenString)
	require.NoError(t, err)
	// jwt.MapClaims里的数字一律是float64
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "alice@test.com", claims["email"])
	// 敏感字段绝对不能进payload
	assert.NotContains(t, claims, "password")
	assert.NotContains(t, claims, "refresh_token")
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tokenString, err := issuer.SignRefreshToken(7)
	require.NoError(t, err)

	userID, err := issuer.ParseRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), userID)
}

// access和refresh用不同的密钥签名，拿着一种令牌冒充另一种必须失败
func TestTokenSecretsAreSeparate(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	accessToken, err := issuer.SignAccessToken(testUser())
	require.NoError(t, err)
	refreshToken, err := issuer.SignRefreshToken(7)
	require.NoError(t, err)

	_, err = issuer.ParseRefreshToken(accessToken)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
	_, err = issuer.ParseAccessToken(refreshToken)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tokenString, err := issuer.SignAccessToken(testUser())
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(tokenString + "x")
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	other := NewIssuer("another-secret", "another-refresh", time.Hour, 24*time.Hour)

	tokenString, err := issuer.SignAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.ParseAccessToken(tokenString)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	// TTL为负，签出来就是过期的
	issuer := NewIssuer("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	tokenString, err := issuer.SignAccessToken(testUser())
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(tokenString)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}
