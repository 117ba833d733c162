// Package token issues and verifies the signed, expiring identity tokens
// handed to clients at login.
//
// Tokens are compact HS256 JWTs whose payload carries exactly three claims:
//
//	{"sub": "<user id>", "exp": <unix seconds>, "token_type": "access"|"refresh"}
//
// Access and refresh tokens are signed with different secrets. Verify only
// ever checks the access secret and does not look at token_type, so a
// refresh token is rejected by Verify unless both secrets are equal.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind distinguishes access tokens from refresh tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrSigningFailure = errors.New("token signing failed")
	ErrMisconfigured  = errors.New("token config invalid")
)

// Claims is the decoded payload of a verified token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	Kind      Kind
}

// Pair is what a successful login hands back to the client.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

type wireClaims struct {
	TokenType Kind `json:"token_type"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens. It holds no mutable state after
// NewService returns and is safe for concurrent use.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
	parser        *jwt.Parser
}

type Option func(*Service)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(accessSecret, refreshSecret string, opts ...Option) (*Service, error) {
	if accessSecret == "" {
		return nil, fmt.Errorf("%w: ACCESS_TOKEN_SECRET is required", ErrMisconfigured)
	}
	if refreshSecret == "" {
		return nil, fmt.Errorf("%w: REFRESH_TOKEN_SECRET is required", ErrMisconfigured)
	}

	s := &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	return s, nil
}

// TTL returns the lifetime of a token of the given kind.
func TTL(kind Kind) (time.Duration, error) {
	switch kind {
	case KindAccess:
		return AccessTTL, nil
	case KindRefresh:
		return RefreshTTL, nil
	default:
		return 0, fmt.Errorf("unknown token kind %q", kind)
	}
}

// Issue signs a new token for subject. It never touches storage.
func (s *Service) Issue(subject string, kind Kind) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrSigningFailure)
	}

	ttl, err := TTL(kind)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailure, err)
	}

	claims := wireClaims{
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(s.now().Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretFor(kind))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailure, err)
	}
	return signed, nil
}

// IssuePair signs one access and one refresh token for subject.
func (s *Service) IssuePair(subject string) (Pair, error) {
	access, err := s.Issue(subject, KindAccess)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.Issue(subject, KindRefresh)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks the signature against the access secret and rejects expired
// tokens with no leeway: a token is already invalid at its exp instant.
// Every failure is reported as ErrInvalidToken.
func (s *Service) Verify(tokenStr string) (Claims, error) {
	claims := &wireClaims{}
	tok, err := s.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return s.accessSecret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		Kind:      claims.TokenType,
	}, nil
}

func (s *Service) secretFor(kind Kind) []byte {
	if kind == KindRefresh {
		return s.refreshSecret
	}
	return s.accessSecret
}
