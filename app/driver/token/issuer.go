package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/peitrae/tandain-auth/app/domain"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
)

// Issuer signs session credentials with a symmetric secret (HS256).
// Signing is deterministic for identical claims and secret; the only
// failure mode is a missing secret, which is a configuration fault.
type Issuer struct {
	secret []byte
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewIssuer creates a token issuer. An empty secret makes signing
// unavailable and is rejected at construction, not at issue time.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, apperrors.New(apperrors.ErrCodeSigningUnavailable, "signing secret is not configured").
			WithLocation("issue_token")
	}
	return &Issuer{secret: []byte(secret)}, nil
}

// Issue serializes the claim set into a signed JWT. The expiry arrives
// pre-computed by the caller: the session credential's validity window
// is tied to the upstream provider token's lifetime.
func (i *Issuer) Issue(claims *domain.SessionClaims) (string, error) {
	jwtClaims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    claims.Issuer,
			Subject:   strconv.FormatInt(claims.Subject, 10),
			Audience:  jwt.ClaimStrings{claims.Audience},
			ExpiresAt: jwt.NewNumericDate(time.UnixMilli(claims.ExpiryMillis)),
		},
		Name:  claims.Name,
		Email: claims.Email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims).SignedString(i.secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeSigningUnavailable, "failed to sign session credential", err).
			WithLocation("issue_token")
	}

	return signed, nil
}

// Parse verifies a signed credential and returns its claim set.
func (i *Issuer) Parse(tokenString string) (*domain.SessionClaims, error) {
	var claims sessionClaims

	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "session credential is invalid or expired", err)
	}

	subject, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "session credential carries an invalid subject", err)
	}

	audience := ""
	if len(claims.Audience) > 0 {
		audience = claims.Audience[0]
	}

	var expiryMillis int64
	if claims.ExpiresAt != nil {
		expiryMillis = claims.ExpiresAt.UnixMilli()
	}

	return &domain.SessionClaims{
		Issuer:       claims.Issuer,
		Subject:      subject,
		Audience:     audience,
		ExpiryMillis: expiryMillis,
		Name:         claims.Name,
		Email:        claims.Email,
	}, nil
}
