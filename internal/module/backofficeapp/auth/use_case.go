package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"github.com/EzraHwang/BTSBackoffice/internal/pkg/jwt"
	"github.com/EzraHwang/BTSBackoffice/internal/pkg/session"
	"github.com/EzraHwang/BTSBackoffice/pkg/errors"
	"github.com/EzraHwang/BTSBackoffice/pkg/memcache"
	"github.com/EzraHwang/BTSBackoffice/pkg/status"
)

type AuthUseCase interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context) error
}

type authUseCase struct {
	logger           *logrus.Logger
	timeout          time.Duration
	adminUsername    string
	adminPassword    string
	maxLoginAttempts int
	lockoutDuration  time.Duration
	sessionTimeout   time.Duration
	jsonWebToken     *jwt.JSONWebToken
	session          session.Session
	attempts         *memcache.Store
	now              func() time.Time
}

type AuthUseCaseProperty struct {
	Logger           *logrus.Logger
	Timeout          time.Duration
	AdminUsername    string
	AdminPassword    string
	MaxLoginAttempts int
	LockoutDuration  time.Duration
	SessionTimeout   time.Duration
	JSONWebToken     *jwt.JSONWebToken
	Session          session.Session
	AttemptStore     *memcache.Store
}

func NewAuthUseCase(props AuthUseCaseProperty) AuthUseCase {
	return &authUseCase{
		logger:           props.Logger,
		timeout:          props.Timeout,
		adminUsername:    props.AdminUsername,
		adminPassword:    props.AdminPassword,
		maxLoginAttempts: props.MaxLoginAttempts,
		lockoutDuration:  props.LockoutDuration,
		sessionTimeout:   props.SessionTimeout,
		jsonWebToken:     props.JSONWebToken,
		session:          props.Session,
		attempts:         props.AttemptStore,
		now:              time.Now,
	}
}

// Login implements AuthUseCase. Repeated failures lock the account for the
// configured duration; the lockout state lives in the in-process attempt
// store, keyed by username.
func (u *authUseCase) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if u.isLockedOut(req.Username) {
		return LoginResponse{}, errors.New(http.StatusTooManyRequests, status.TOO_MANY_REQUESTS, "account is locked out, try again later")
	}

	if !u.credentialsValid(req) {
		remaining := u.recordFailedAttempt(req.Username)
		u.logger.WithContext(ctx).WithField("username", req.Username).Warn("failed login attempt")

		if remaining <= 0 {
			return LoginResponse{}, errors.New(http.StatusTooManyRequests, status.TOO_MANY_REQUESTS, "too many failed login attempts, account is locked out")
		}

		return LoginResponse{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, fmt.Sprintf("invalid username or password, %d attempts remaining", remaining))
	}

	u.clearFailedAttempts(req.Username)

	now := u.now()
	acc := session.Account{
		Username: req.Username,
		LoginAt:  now,
	}

	if err := u.session.Set(ctx, acc, u.sessionTimeout); err != nil {
		return LoginResponse{}, err
	}

	expiresAt := now.Add(u.sessionTimeout)
	claims := gojwt.RegisteredClaims{
		Subject:   req.Username,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(expiresAt),
	}

	token, err := u.jsonWebToken.Sign(ctx, claims)
	if err != nil {
		return LoginResponse{}, err
	}

	u.logger.WithContext(ctx).WithField("username", req.Username).Info("admin logged in")

	return LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements AuthUseCase.
func (u *authUseCase) Logout(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := u.session.Delete(ctx, acc.Username); err != nil {
		return err
	}

	u.logger.WithContext(ctx).WithField("username", acc.Username).Info("admin logged out")

	return nil
}

func (u *authUseCase) credentialsValid(req LoginRequest) bool {
	return strings.EqualFold(req.Username, u.adminUsername) && req.Password == u.adminPassword
}

func (u *authUseCase) isLockedOut(username string) bool {
	_, locked := u.attempts.Get(lockoutKey(username))
	return locked
}

// recordFailedAttempt bumps the failure counter and returns the remaining
// attempts. Reaching the limit locks the account and resets the counter.
func (u *authUseCase) recordFailedAttempt(username string) int {
	key := attemptsKey(username)

	count := 0
	if v, ok := u.attempts.Get(key); ok {
		count = v.(int)
	}
	count++

	if count >= u.maxLoginAttempts {
		u.attempts.Set(lockoutKey(username), u.now(), u.lockoutDuration)
		u.attempts.Delete(key)
		return 0
	}

	u.attempts.Set(key, count, u.lockoutDuration)

	return u.maxLoginAttempts - count
}

func (u *authUseCase) clearFailedAttempts(username string) {
	u.attempts.Delete(attemptsKey(username))
}

func attemptsKey(username string) string {
	return fmt.Sprintf("attempts:%s", username)
}

func lockoutKey(username string) string {
	return fmt.Sprintf("lockout:%s", username)
}
