package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token defaults.
const (
	DefaultAlgorithm = "HS256"
	DefaultTokenTTL  = 30 * time.Minute
)

var errEmptySubject = errors.New("token has no subject")

// TokenService issues bearer tokens for a username and resolves them back.
type TokenService interface {
	Issue(username string) (string, error)
	Subject(token string) (string, error)
}

// TokenConfig configures JWTTokens.
type TokenConfig struct {
	Secret    string
	Algorithm string // HS256, HS384 or HS512
	TTL       time.Duration
}

// Claims defines JWT claims; the username travels in "sub".
type Claims struct {
	jwt.RegisteredClaims
}

// JWTTokens issues HMAC-signed, expiring JWTs.
type JWTTokens struct {
	key    []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

var _ TokenService = (*JWTTokens)(nil)

func NewJWTTokens(cfg TokenConfig) (*JWTTokens, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is empty")
	}
	alg := strings.ToUpper(strings.TrimSpace(cfg.Algorithm))
	if alg == "" {
		alg = DefaultAlgorithm
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTTokens{key: []byte(cfg.Secret), method: method, ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for username expiring after the configured TTL.
func (t *JWTTokens) Issue(username string) (string, error) {
	if username == "" {
		return "", errEmptySubject
	}
	now := t.now()
	token := jwt.NewWithClaims(t.method, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Subject verifies signature, algorithm and expiry, and returns the username.
func (t *JWTTokens) Subject(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.key, nil
	},
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return "", errEmptySubject
	}
	return claims.Subject, nil
}
