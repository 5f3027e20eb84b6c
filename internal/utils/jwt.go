package utils // package utils issues and verifies the admin tokens

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the role required by the admin gate.
const RoleAdmin = "ADMIN"

const issuer = "stagebook"

// AdminClaims are the claims carried by an admin token.
type AdminClaims struct {
    Role string `json:"role"`
    jwt.RegisteredClaims
}

// AccessToken is a signed JWT together with its expiry.
type AccessToken struct {
    Token string
    Exp   time.Time // UTC
}

// NewAccessToken signs an HS256 token for subject with the given role.
// ttlMin <= 0 means one hour.
func NewAccessToken(secret, subject, role string, ttlMin int) (AccessToken, error) {
    if secret == "" {
        return AccessToken{}, errors.New("empty signing secret")
    }
    if ttlMin <= 0 {
        ttlMin = 60
    }
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := AdminClaims{
        Role: role,
        RegisteredClaims: jwt.RegisteredClaims{
            Issuer:    issuer,
            Subject:   subject,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret and returns its claims.
// Only HS256 tokens issued by NewAccessToken are accepted.
func ParseAccessToken(secret, raw string) (*AdminClaims, error) {
    claims := &AdminClaims{}
    _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    },
        jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
        jwt.WithIssuer(issuer),
        jwt.WithExpirationRequired(),
    )
    if err != nil {
        return nil, err
    }
    return claims, nil
}
