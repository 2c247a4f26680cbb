package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims binds a token to one game session.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type Session struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

func loadSecret() ([]byte, error) {
	secret, ok := os.LookupEnv("SESSION_SECRET")
	if ok {
		return []byte(secret), nil
	}

	secretFile, ok := os.LookupEnv("SESSION_SECRET_FILE")
	if ok {
		data, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read session secret: %w", err)
		}
		return []byte(strings.TrimSpace(string(data))), nil
	}

	if !Development() {
		return nil, errors.New("no SESSION_SECRET or SESSION_SECRET_FILE env variable set")
	}

	/* development servers get a throwaway secret; tokens die with the process */
	random := make([]byte, 32)
	if _, err := rand.Read(random); err != nil {
		return nil, err
	}
	return random, nil
}

func NewSession() (*Session, error) {
	secret, err := loadSecret()
	if err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, errors.New("session secret is empty")
	}

	lifetime, err := lookupDuration("SESSION_LIFETIME", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return NewSessionWithSecret(secret, lifetime), nil
}

func NewSessionWithSecret(secret []byte, lifetime time.Duration) *Session {
	return &Session{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: lifetime,
	}
}

func (s *Session) Lifetime() time.Duration {
	return s.tokenLifetime
}

func (s *Session) NewClaims(sessionID string, now time.Time) *SessionClaims {
	return &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
		},
	}
}

func (s *Session) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(s.signingMethod, claims).SignedString(s.secret)
}

func (s *Session) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
