package auth_test

import (
	"testing"
	"time"

	"app/internal/auth"
	"app/internal/config"

	"github.com/stretchr/testify/assert"
)

func newTestIssuer() *auth.JWTIssuer {
	return auth.NewJWTIssuer(config.Config{
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
	})
}

func TestJWTIssuer_RefreshRoundTrip(t *testing.T) {
	issuer := newTestIssuer()

	pair, err := issuer.IssuePair(42, true, time.Now())
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 3600, pair.ExpiresIn)

	userID, isAdmin, err := issuer.VerifyRefresh(pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.True(t, isAdmin)
}

func TestJWTIssuer_AccessTokenIsNotARefreshToken(t *testing.T) {
	issuer := newTestIssuer()

	pair, err := issuer.IssuePair(42, false, time.Now())
	assert.NoError(t, err)

	// 署名鍵が違うのでアクセストークンはリフレッシュとして通らない
	_, _, err = issuer.VerifyRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTIssuer_ExpiredRefreshRejected(t *testing.T) {
	issuer := newTestIssuer()

	pair, err := issuer.IssuePair(42, false, time.Now().Add(-30*24*time.Hour))
	assert.NoError(t, err)

	_, _, err = issuer.VerifyRefresh(pair.RefreshToken)
	assert.Error(t, err)
}

func TestJWTIssuer_GarbageTokenRejected(t *testing.T) {
	issuer := newTestIssuer()

	_, _, err := issuer.VerifyRefresh("not.a.jwt")
	assert.Error(t, err)
}
