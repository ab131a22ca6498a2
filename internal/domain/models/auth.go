package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims represents the JWT claims carried by access tokens.
// HS256 tokens minted by this service put the user in "userId"; tokens from an
// external identity provider (JWKS) use the standard "sub" claim.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	UserID               string `json:"userId,omitempty"`
	Type                 string `json:"type,omitempty"` // Account type, e.g. "user" or "admin"
}

// GetUserID returns the acting user, preferring the custom claim over the subject.
func (c *AccessClaims) GetUserID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}
