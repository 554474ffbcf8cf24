package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/iitkgp/timetable-solver/pkg/errors"
)

// TokenClaims is the JWT payload carried by scheduling-staff bearer
// tokens, trimmed from the teacher's user/session claims down to just
// what gates a solve request.
type TokenClaims struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// AuthConfig governs token issuance and validation.
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience []string
	Expiry   time.Duration
}

// AuthService validates (and, for operator tooling, issues) the bearer
// tokens that gate /solve and /reoptimize, grounded on the teacher's
// AuthService.ValidateToken/generateAccessToken but stripped of the
// login/refresh-token/user-repository machinery this spec has no use
// for — there is no user system here, only authenticated scheduling
// staff.
type AuthService struct {
	cfg AuthConfig
}

// NewAuthService constructs the token service.
func NewAuthService(cfg AuthConfig) *AuthService {
	if cfg.Expiry <= 0 {
		cfg.Expiry = time.Hour
	}
	return &AuthService{cfg: cfg}
}

// ValidateToken parses and validates an access token, returning its
// claims.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// IssueToken mints a bearer token for subject, used by operator tooling
// to provision scheduling-staff access outside of any login flow.
func (s *AuthService) IssueToken(subject, role string) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.cfg.Expiry)
	claims := &TokenClaims{
		Subject: subject,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   subject,
			Audience:  s.cfg.Audience,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
