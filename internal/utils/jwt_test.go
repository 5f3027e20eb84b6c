package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
    tok, err := NewAccessToken("s3cret", "ops", RoleAdmin, 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    if d := time.Until(tok.Exp); d < 14*time.Minute || d > 15*time.Minute {
        t.Errorf("expiry in %v, want ~15m", d)
    }

    claims, err := ParseAccessToken("s3cret", tok.Token)
    if err != nil {
        t.Fatalf("ParseAccessToken: %v", err)
    }
    if claims.Subject != "ops" || claims.Role != RoleAdmin || claims.Issuer != "stagebook" {
        t.Errorf("claims = %+v", claims)
    }

    if _, err := ParseAccessToken("other", tok.Token); err == nil {
        t.Error("token verified with the wrong secret")
    }
}

func TestNewAccessToken_DefaultTTL(t *testing.T) {
    tok, err := NewAccessToken("s3cret", "ops", RoleAdmin, 0)
    if err != nil {
        t.Fatal(err)
    }
    if d := time.Until(tok.Exp); d < 59*time.Minute || d > time.Hour {
        t.Errorf("expiry in %v, want ~1h", d)
    }
}

func TestNewAccessToken_EmptySecret(t *testing.T) {
    if _, err := NewAccessToken("", "ops", RoleAdmin, 5); err == nil {
        t.Fatal("expected error")
    }
}

func TestParseAccessToken_Rejects(t *testing.T) {
    expired := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
        Role: RoleAdmin,
        RegisteredClaims: jwt.RegisteredClaims{
            Issuer:    "stagebook",
            Subject:   "ops",
            ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
        },
    })
    noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
        Role:             RoleAdmin,
        RegisteredClaims: jwt.RegisteredClaims{Issuer: "stagebook", Subject: "ops"},
    })
    foreign := jwt.NewWithClaims(jwt.SigningMethodHS512, AdminClaims{
        Role: RoleAdmin,
        RegisteredClaims: jwt.RegisteredClaims{
            Issuer:    "stagebook",
            ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
        },
    })

    for name, tok := range map[string]*jwt.Token{"expired": expired, "no expiry": noExpiry, "HS512": foreign} {
        raw, err := tok.SignedString([]byte("s3cret"))
        if err != nil {
            t.Fatal(err)
        }
        if _, err := ParseAccessToken("s3cret", raw); err == nil {
            t.Errorf("%s token accepted", name)
        }
    }
}
