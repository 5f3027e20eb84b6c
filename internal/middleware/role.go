package middleware

import (
    "net/http"
    "slices"

    "github.com/labstack/echo/v4"

    "github.com/stagebook/stagebook/internal/utils"
)

// RequireRole must run after JWTAuth.  Callers whose role is not listed
// get 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            claims := claimsOf(c)
            if claims == nil || !slices.Contains(roles, claims.Role) {
                return echo.NewHTTPError(http.StatusForbidden, "forbidden")
            }
            return next(c)
        }
    }
}

// AdminGate guards the destructive routes (question create and delete,
// venue and artist delete).  With an empty secret the routes stay open.
func AdminGate(secret string) echo.MiddlewareFunc {
    if secret == "" {
        return passThrough
    }
    auth, admin := JWTAuth(secret), RequireRole(utils.RoleAdmin)
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return auth(admin(next))
    }
}
