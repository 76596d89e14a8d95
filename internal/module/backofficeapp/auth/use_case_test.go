package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/http"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzraHwang/BTSBackoffice/internal/pkg/jwt"
	"github.com/EzraHwang/BTSBackoffice/internal/pkg/session"
	"github.com/EzraHwang/BTSBackoffice/pkg/errors"
	"github.com/EzraHwang/BTSBackoffice/pkg/memcache"
	"github.com/EzraHwang/BTSBackoffice/pkg/status"
)

type fakeSession struct {
	accounts map[string]session.Account

	setCalls    int
	deleteCalls int
	lastTTL     time.Duration
}

func newFakeSession() *fakeSession {
	return &fakeSession{accounts: make(map[string]session.Account)}
}

// Set implements session.Session.
func (f *fakeSession) Set(ctx context.Context, acc session.Account, ttl time.Duration) error {
	f.setCalls++
	f.lastTTL = ttl
	f.accounts[acc.Username] = acc

	return nil
}

// Get implements session.Session.
func (f *fakeSession) Get(ctx context.Context, username string) (session.Account, error) {
	acc, ok := f.accounts[username]
	if !ok {
		return session.Account{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "session is not found or has expired")
	}

	return acc, nil
}

// Delete implements session.Session.
func (f *fakeSession) Delete(ctx context.Context, username string) error {
	f.deleteCalls++
	delete(f.accounts, username)

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

func newTestAuthUseCase(t *testing.T, sess session.Session) (AuthUseCase, *jwt.JSONWebToken) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jsonWebToken := newTestJSONWebToken(t)

	uc := NewAuthUseCase(AuthUseCaseProperty{
		Logger:           logger,
		Timeout:          5 * time.Second,
		AdminUsername:    "admin",
		AdminPassword:    "super-secret",
		MaxLoginAttempts: 5,
		LockoutDuration:  15 * time.Minute,
		SessionTimeout:   30 * time.Minute,
		JSONWebToken:     jsonWebToken,
		Session:          sess,
		AttemptStore:     memcache.New(),
	})

	return uc, jsonWebToken
}

func TestLoginSuccess(t *testing.T) {
	sess := newFakeSession()
	uc, jsonWebToken := newTestAuthUseCase(t, sess)

	resp, err := uc.Login(context.Background(), LoginRequest{Username: "admin", Password: "super-secret"})

	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), resp.ExpiresAt, 5*time.Second)

	assert.Equal(t, 1, sess.setCalls)
	assert.Equal(t, 30*time.Minute, sess.lastTTL)

	claims := &gojwt.RegisteredClaims{}
	require.NoError(t, jsonWebToken.Parse(context.Background(), resp.AccessToken, claims))
	assert.Equal(t, "admin", claims.Subject)
}

func TestLoginUsernameIsCaseInsensitive(t *testing.T) {
	sess := newFakeSession()
	uc, _ := newTestAuthUseCase(t, sess)

	_, err := uc.Login(context.Background(), LoginRequest{Username: "Admin", Password: "super-secret"})

	require.NoError(t, err)
}

func TestLoginWrongPasswordCountsDown(t *testing.T) {
	sess := newFakeSession()
	uc, _ := newTestAuthUseCase(t, sess)

	_, err := uc.Login(context.Background(), LoginRequest{Username: "admin", Password: "wrong"})

	require.Error(t, err)
	ae := errors.Destruct(err)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatusCode)
	assert.Equal(t, status.UNAUTHORIZED, ae.Status)
	assert.Equal(t, "invalid username or password, 4 attempts remaining", ae.Message)
	assert.Equal(t, 0, sess.setCalls)
}

func TestLoginLocksOutAfterMaxAttempts(t *testing.T) {
	sess := newFakeSession()
	uc, _ := newTestAuthUseCase(t, sess)

	var err error
	for i := 0; i < 5; i++ {
		_, err = uc.Login(context.Background(), LoginRequest{Username: "admin", Password: "wrong"})
		require.Error(t, err)
	}

	ae := errors.Destruct(err)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPStatusCode)
	assert.Equal(t, status.TOO_MANY_REQUESTS, ae.Status)

	// Correct credentials are refused while the lockout holds.
	_, err = uc.Login(context.Background(), LoginRequest{Username: "admin", Password: "super-secret"})
	require.Error(t, err)
	ae = errors.Destruct(err)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPStatusCode)
	assert.Equal(t, "account is locked out, try again later", ae.Message)
}

func TestLoginSuccessResetsFailureCounter(t *testing.T) {
	sess := newFakeSession()
	uc, _ := newTestAuthUseCase(t, sess)

	for i := 0; i < 3; i++ {
		_, err := uc.Login(context.Background(), LoginRequest{Username: "admin", Password: "wrong"})
		require.Error(t, err)
	}

	_, err := uc.Login(context.Background(), LoginRequest{Username: "admin", Password: "super-secret"})
	require.NoError(t, err)

	// The counter starts over after a successful login.
	_, err = uc.Login(context.Background(), LoginRequest{Username: "admin", Password: "wrong"})
	require.Error(t, err)
	ae := errors.Destruct(err)
	assert.Equal(t, "invalid username or password, 4 attempts remaining", ae.Message)
}

func TestLogout(t *testing.T) {
	sess := newFakeSession()
	uc, _ := newTestAuthUseCase(t, sess)

	_, err := uc.Login(context.Background(), LoginRequest{Username: "admin", Password: "super-secret"})
	require.NoError(t, err)

	ctx := session.SetAccountToCtx(context.Background(), session.Account{Username: "admin", LoginAt: time.Now()})
	require.NoError(t, uc.Logout(ctx))
	assert.Equal(t, 1, sess.deleteCalls)
	assert.Empty(t, sess.accounts)
}

func TestLogoutWithoutSessionAccount(t *testing.T) {
	sess := newFakeSession()
	uc, _ := newTestAuthUseCase(t, sess)

	err := uc.Logout(context.Background())

	require.Error(t, err)
	ae := errors.Destruct(err)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatusCode)
	assert.Equal(t, status.UNAUTHORIZED, ae.Status)
}
