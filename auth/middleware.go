package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const UsernameKey contextKey = "username"

// WithUsername stores the authenticated principal in ctx.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username)
}

func UsernameFrom(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok && username != ""
}

// Middleware rejects requests without a valid token.
// The token is read from the "Authorization: Bearer" header, or from the access_token query
// parameter since browsers cannot set headers on a websocket handshake.
func Middleware(tokens *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if raw == "" {
				raw = c.QueryParam("access_token")
			}
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization token is missing")
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			ctx := WithUsername(c.Request().Context(), claims.Username)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(string(UsernameKey), claims.Username)
			return next(c)
		}
	}
}
