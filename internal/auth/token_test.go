package auth

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-test-secret-test-secret!")

func newTestTokenService() *TokenService {
	return &TokenService{Secret: testSecret, TTL: 24 * time.Hour}
}

func TestTokenService_IssueAndParse(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService()
	token, exp, err := svc.IssueToken("hantagam_admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "hantagam_admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	svc := &TokenService{Secret: testSecret, TTL: -time.Hour}
	token, _, err := svc.IssueToken("hantagam_admin", "admin")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestTokenService_TamperedTokenRejected(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService()
	token, _, err := svc.IssueToken("hantagam_admin", "admin")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// flip one byte in the payload
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = svc.ParseToken(tampered)
	assert.Error(t, err)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService()
	token, _, err := svc.IssueToken("hantagam_admin", "admin")
	require.NoError(t, err)

	other := &TokenService{Secret: []byte("another-secret-another-secret-12345!"), TTL: 24 * time.Hour}
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsUnexpectedAlg(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService()

	// a "none" token must never pass, whatever its claims say
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		Username: "hantagam_admin",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ParseToken(raw)
	assert.Error(t, err)
}

func TestTokenService_Cookies(t *testing.T) {
	t.Parallel()

	svc := &TokenService{Secret: testSecret, TTL: 24 * time.Hour, Secure: true}
	exp := time.Now().Add(24 * time.Hour)
	ck := svc.SessionCookie("tok", exp)

	assert.Equal(t, CookieName, ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.Equal(t, 86400, ck.MaxAge)

	del := svc.DeleteCookie()
	assert.Equal(t, CookieName, del.Name)
	assert.Empty(t, del.Value)
	assert.Equal(t, -1, del.MaxAge)
	assert.True(t, del.HttpOnly)
}
