package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzraHwang/BTSBackoffice/internal/pkg/jwt"
	"github.com/EzraHwang/BTSBackoffice/internal/pkg/session"
	"github.com/EzraHwang/BTSBackoffice/pkg/errors"
	"github.com/EzraHwang/BTSBackoffice/pkg/status"
)

type stubSession struct {
	accounts map[string]session.Account
}

// Set implements session.Session.
func (s *stubSession) Set(ctx context.Context, acc session.Account, ttl time.Duration) error {
	s.accounts[acc.Username] = acc
	return nil
}

// Get implements session.Session.
func (s *stubSession) Get(ctx context.Context, username string) (session.Account, error) {
	acc, ok := s.accounts[username]
	if !ok {
		return session.Account{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "session is not found or has expired")
	}

	return acc, nil
}

// Delete implements session.Session.
func (s *stubSession) Delete(ctx context.Context, username string) error {
	delete(s.accounts, username)
	return nil
}

func newTestJSONWebToken(t *testing.T) *jwt.JSONWebToken {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})

	return jwt.NewJSONWebToken(privatePEM, publicPEM)
}

func signTestToken(t *testing.T, jsonWebToken *jwt.JSONWebToken, subject string) string {
	t.Helper()

	now := time.Now()
	token, err := jsonWebToken.Sign(context.Background(), gojwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
	})
	require.NoError(t, err)

	return token
}

func TestVerifyPassesAccountToNextHandler(t *testing.T) {
	jsonWebToken := newTestJSONWebToken(t)
	sess := &stubSession{accounts: map[string]session.Account{
		"admin": {Username: "admin", LoginAt: time.Now()},
	}}
	m := NewAdminSessionMiddleware(jsonWebToken, sess)

	var gotAccount session.Account
	next := func(w http.ResponseWriter, r *http.Request) {
		acc, err := session.GetAccountFromCtx(r.Context())
		require.NoError(t, err)
		gotAccount = acc
		w.WriteHeader(http.StatusOK)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signTestToken(t, jsonWebToken, "admin"))
	w := httptest.NewRecorder()

	m.Verify(next)(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", gotAccount.Username)
}

func TestVerifyRejectsMissingToken(t *testing.T) {
	m := NewAdminSessionMiddleware(newTestJSONWebToken(t), &stubSession{accounts: map[string]session.Account{}})

	next := func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	m.Verify(next)(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	m := NewAdminSessionMiddleware(newTestJSONWebToken(t), &stubSession{accounts: map[string]session.Account{}})

	// Signed by a key pair the middleware does not trust.
	foreign := signTestToken(t, newTestJSONWebToken(t), "admin")

	next := func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+foreign)
	w := httptest.NewRecorder()

	m.Verify(next)(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyRejectsTokenWithoutSession(t *testing.T) {
	jsonWebToken := newTestJSONWebToken(t)
	m := NewAdminSessionMiddleware(jsonWebToken, &stubSession{accounts: map[string]session.Account{}})

	next := func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signTestToken(t, jsonWebToken, "admin"))
	w := httptest.NewRecorder()

	m.Verify(next)(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
