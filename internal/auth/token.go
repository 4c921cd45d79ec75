package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mesika/account-service/internal/config"
)

const refreshSubject = "refresh"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenPair is an access/refresh token pair issued at login.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

type TokenIssuer struct {
	config *config.AuthConfig
}

func NewTokenIssuer(config *config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{config: config}
}

// Issue signs a fresh access/refresh pair bound to the user id.
func (t *TokenIssuer) Issue(userID uint) (*TokenPair, error) {
	access, err := t.signToken(userID, t.config.AccessTokenDuration, "")
	if err != nil {
		return nil, err
	}

	if !t.config.RefreshTokenEnabled {
		return nil, errors.New("refresh token functionality is disabled")
	}

	refresh, err := t.signToken(userID, t.config.RefreshTokenDuration, refreshSubject)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates a refresh token and issues a new access token.
// Access tokens are rejected here even when otherwise valid.
func (t *TokenIssuer) Refresh(refreshToken string) (string, error) {
	claims, err := t.Parse(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.Subject != refreshSubject {
		return "", ErrInvalidToken
	}
	return t.signToken(claims.UserID, t.config.AccessTokenDuration, "")
}

// Parse verifies the token signature and expiry and returns its claims.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(t.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (t *TokenIssuer) signToken(userID uint, lifetime time.Duration, subject string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.config.JWTSecret))
}
