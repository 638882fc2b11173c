package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/yomogi/ghostboard/internal/domain"
)

var tracer = otel.Tracer("service")

// AuthService issues and verifies the bearer tokens handed out with
// anonymous sessions. HS256 with a shared secret; the audience pins
// tokens to this board.
type AuthService struct {
	secret   []byte
	audience string
}

func NewAuthService(secret, audience string) *AuthService {
	return &AuthService{
		secret:   []byte(secret),
		audience: audience,
	}
}

// IssueToken mints a token whose subject is the anonymous user id.
func (s *AuthService) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}
	return signed, nil
}

// VerifyToken validates signature, expiry and audience, returning the
// user id the token was issued for.
func (s *AuthService) VerifyToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", domain.UnauthorizedError{Reason: "invalid token"}
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.UnauthorizedError{Reason: "invalid token subject"}
	}

	return claims.Subject, nil
}
