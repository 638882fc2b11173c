package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yomogi/ghostboard/internal/domain"
	"github.com/yomogi/ghostboard/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// IdentifyIdentity resolves an optional bearer token to a requester id and
// stashes it in the request context. An invalid token is recorded but not
// rejected; endpoints that require identity check for it themselves.
func (m *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")
		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) == 2 && split[0] == "Bearer" {
				userID, err := m.auth.VerifyToken(split[1])
				if err != nil {
					span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: token rejected"))
				} else {
					ctx = context.WithValue(ctx, domain.RequesterIDCtxKey, userID)
					span.SetAttributes(attribute.String("RequesterId", userID))
				}
			} else {
				span.RecordError(errors.New("invalid authentication header"))
			}
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
