package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claims structure accepted by the API. Tokens are issued
// by an external identity provider and verified against its JWKS endpoint.
type Claims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email,omitempty"`
	Role                 string `json:"role"` // "authenticated" or "anon"
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated user.
func (c *Claims) GetUserID() string {
	return c.Subject
}
