package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"bhashaflow_backend/internals/helpers/apperror"
)

const DefaultAccessTTL = 12 * time.Hour

// AccessClaims: isi access token worker (HS256).
type AccessClaims struct {
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAccessToken menandatangani token untuk worker; sub = worker id.
func IssueAccessToken(secret string, userID uuid.UUID, userName, role string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("jwt secret kosong")
	}
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	exp := now.Add(ttl)
	claims := AccessClaims{
		UserName: userName,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-30 * time.Second)),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken memverifikasi signature + exp, hanya menerima HS256.
func ParseAccessToken(secret, raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperror.ErrUnauthorized)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: invalid subject", apperror.ErrUnauthorized)
	}
	if strings.TrimSpace(claims.UserName) == "" || strings.TrimSpace(claims.Role) == "" {
		return nil, fmt.Errorf("%w: incomplete claims", apperror.ErrUnauthorized)
	}
	return claims, nil
}
