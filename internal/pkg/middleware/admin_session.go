package middleware

import (
	"net/http"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v4"

	"github.com/EzraHwang/BTSBackoffice/internal/pkg/jwt"
	"github.com/EzraHwang/BTSBackoffice/internal/pkg/session"
	"github.com/EzraHwang/BTSBackoffice/pkg/errors"
	"github.com/EzraHwang/BTSBackoffice/pkg/response"
	"github.com/EzraHwang/BTSBackoffice/pkg/status"
)

type AdminSession struct {
	jsonWebToken *jwt.JSONWebToken
	session      session.Session
}

func NewAdminSessionMiddleware(jsonWebToken *jwt.JSONWebToken, sess session.Session) *AdminSession {
	return &AdminSession{
		jsonWebToken: jsonWebToken,
		session:      sess,
	}
}

// Verify authenticates the bearer token and loads the backing session. The
// account is placed on the request context for downstream use cases.
func (m *AdminSession) Verify(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "missing bearer token",
			})

			return
		}

		claims := gojwt.RegisteredClaims{}
		if err := m.jsonWebToken.Parse(ctx, token, &claims); err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})

			return
		}

		acc, err := m.session.Get(ctx, claims.Subject)
		if err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})

			return
		}

		ctx = session.SetAccountToCtx(ctx, acc)
		next(w, r.WithContext(ctx))
	}
}
