package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/EzraHwang/BTSBackoffice/pkg/errors"
	"github.com/EzraHwang/BTSBackoffice/pkg/status"
)

type contextKey string

const accountContextKey contextKey = "backoffice-account"

// Account is the authenticated backoffice identity attached to a session.
type Account struct {
	Username string    `json:"username"`
	LoginAt  time.Time `json:"login_at"`
}

type Session interface {
	Set(ctx context.Context, acc Account, ttl time.Duration) error
	Get(ctx context.Context, username string) (Account, error)
	Delete(ctx context.Context, username string) error
}

type redisSessionStore struct {
	logger *logrus.Logger
	rc     goredis.UniversalClient
}

func NewRedisSessionStore(logger *logrus.Logger, rc goredis.UniversalClient) Session {
	return &redisSessionStore{
		logger: logger,
		rc:     rc,
	}
}

func sessionKey(username string) string {
	return fmt.Sprintf("session:backofficeapp:%s", username)
}

// Set implements Session.
func (s *redisSessionStore) Set(ctx context.Context, acc Account, ttl time.Duration) error {
	buff, _ := json.Marshal(acc)

	if err := s.rc.Set(ctx, sessionKey(acc.Username), buff, ttl).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while storing the session")
	}

	return nil
}

// Get implements Session.
func (s *redisSessionStore) Get(ctx context.Context, username string) (Account, error) {
	buff, err := s.rc.Get(ctx, sessionKey(username)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return Account{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "session is not found or has expired")
		}
		s.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while loading the session")
	}

	var acc Account
	if err := json.Unmarshal(buff, &acc); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while loading the session")
	}

	return acc, nil
}

// Delete implements Session.
func (s *redisSessionStore) Delete(ctx context.Context, username string) error {
	if err := s.rc.Del(ctx, sessionKey(username)).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while destroying the session")
	}

	return nil
}

func SetAccountToCtx(ctx context.Context, acc Account) context.Context {
	return context.WithValue(ctx, accountContextKey, acc)
}

func GetAccountFromCtx(ctx context.Context) (Account, error) {
	acc, ok := ctx.Value(accountContextKey).(Account)
	if !ok {
		return Account{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "account's session is not found")
	}

	return acc, nil
}
