package jwt

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v4"

	"github.com/EzraHwang/BTSBackoffice/pkg/errors"
	"github.com/EzraHwang/BTSBackoffice/pkg/status"
)

type JSONWebToken struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewJSONWebToken parses the RS256 key pair. Invalid key material is a boot
// failure, not a runtime condition.
func NewJSONWebToken(privateKeyPEM, publicKeyPEM []byte) *JSONWebToken {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		panic(fmt.Errorf("jwt: parsing private key: %w", err))
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		panic(fmt.Errorf("jwt: parsing public key: %w", err))
	}

	return &JSONWebToken{
		privateKey: privateKey,
		publicKey:  publicKey,
	}
}

func (j *JSONWebToken) Sign(ctx context.Context, claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	signed, err := token.SignedString(j.privateKey)
	if err != nil {
		return "", errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while signing the access token")
	}

	return signed, nil
}

func (j *JSONWebToken) Parse(ctx context.Context, tokenString string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.publicKey, nil
	})
	if err != nil {
		return errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "invalid access token")
	}

	return nil
}
