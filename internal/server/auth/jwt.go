// Package auth implements token issuance/verification and password hashing
// for the taskkeeper server.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/avdeevs/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by access tokens: the standard registered
// claims plus the authenticated user's identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	UserName string `json:"username"`
}

// GenerateToken issues an HS256-signed token for the given user, expiring
// after validityDuration.
func GenerateToken(userID, userName string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID,
		UserName: userName,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString and returns its
// claims. Failures map onto sentinel errors so callers can distinguish an
// absent token (common.ErrMissingToken), an expired one
// (common.ErrTokenExpired) and everything else (common.ErrInvalidToken).
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrMissingToken
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// ExtractToken pulls the raw token out of an Authorization header value.
// If the value mentions the Bearer scheme anywhere, the substring after the
// first space is used; otherwise the whole value is taken verbatim. Clients
// historically send both forms, so both are accepted.
//
// Known fragility: a schemeless token that happens to contain "Bearer" would
// misparse. Tightening this to a strict "Bearer <token>" prefix is a
// behavior change for such clients and must be coordinated with them.
func ExtractToken(header string) string {
	if !strings.Contains(header, common.BearerScheme) {
		return header
	}
	_, token, found := strings.Cut(header, " ")
	if !found {
		return ""
	}
	return token
}
