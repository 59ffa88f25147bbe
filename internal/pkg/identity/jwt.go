package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/berkeley-decal/decal-portal/internal/pkg/apperrors"
)

// JWTConfig defines JWT verification settings
type JWTConfig struct {
	SecretKey   string
	TokenIssuer string
}

// JWTVerifier validates bearer tokens issued by the identity provider as
// HMAC-signed JWTs.
type JWTVerifier struct {
	config JWTConfig
}

// NewJWTVerifier creates a new JWT verifier
func NewJWTVerifier(config JWTConfig) *JWTVerifier {
	return &JWTVerifier{
		config: config,
	}
}

// Claims defines the token content the portal cares about
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verify validates the token and returns the caller identity.
func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}

	if v.config.TokenIssuer != "" && claims.Issuer != v.config.TokenIssuer {
		return nil, apperrors.ErrTokenInvalid
	}

	if claims.Subject == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	return &Identity{
		ID:    claims.Subject,
		Email: claims.Email,
	}, nil
}

// IssueToken signs a token for the given identity. The production issuer is
// the external provider; this is used by tests and local tooling.
func (v *JWTVerifier) IssueToken(id, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    v.config.TokenIssuer,
			Subject:   id,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(v.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", apperrors.ErrUnauthenticated
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	return "", apperrors.ErrTokenInvalid
}
