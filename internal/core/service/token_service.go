package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService mints and verifies HMAC-SHA256 signed tokens. Verification is
// stateless: there is no session store and no revocation before expiry.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenService builds a TokenService from a base64-encoded symmetric
// secret. A non-positive ttl falls back to 24 hours.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("token service: decode secret: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("token service: empty secret")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{key: key, ttl: ttl, now: time.Now}, nil
}

// Generate mints a token with subject=identity, issued now, expiring after
// the configured TTL. Extra claims are merged in before the registered ones.
func (s *TokenService) Generate(identity string, extra map[string]any) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = identity
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.ttl).Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// ExtractIdentity verifies the signature and expiry and returns the subject.
func (s *TokenService) ExtractIdentity(token string) (string, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithTimeFunc(s.now))
	tkn, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return "", domain.ErrTokenInvalid
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrTokenInvalid
	}
	return sub, nil
}

// IsValid reports whether the token verifies, is unexpired, and its subject
// equals expectedIdentity.
func (s *TokenService) IsValid(token, expectedIdentity string) bool {
	identity, err := s.ExtractIdentity(token)
	return err == nil && identity == expectedIdentity
}
