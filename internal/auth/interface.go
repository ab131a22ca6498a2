package auth

import "convertify/internal/domain/models"

// TokenVerifier validates bearer tokens for the HTTP layer.
// The middleware stays agnostic to how keys are obtained (shared secret or JWKS).
type TokenVerifier interface {
	// VerifyToken validates a token string and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired or badly signed.
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
