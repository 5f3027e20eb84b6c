package middleware

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/stagebook/stagebook/internal/utils"
)

// JWTAuth requires an "Authorization: Bearer <token>" header carrying a
// token minted by utils.NewAccessToken with secret.  The verified claims
// are stored on the context for RequireRole.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            scheme, raw, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
            if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
                return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
            }
            claims, err := utils.ParseAccessToken(secret, strings.TrimSpace(raw))
            if err != nil {
                return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
            }
            c.Set(ctxClaims, claims)
            return next(c)
        }
    }
}
