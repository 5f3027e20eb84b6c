package middleware

import (
    "github.com/labstack/echo/v4"

    "github.com/stagebook/stagebook/internal/utils"
)

// ctxClaims is the echo context key JWTAuth stores *utils.AdminClaims under.
const ctxClaims = "admin_claims"

func claimsOf(c echo.Context) *utils.AdminClaims {
    claims, _ := c.Get(ctxClaims).(*utils.AdminClaims)
    return claims
}
