package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"convertify/internal/domain"
	"convertify/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSVerifier verifies asymmetric tokens against keys published at a JWKS endpoint.
type JWKSVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWKSVerifier creates a verifier that fetches public keys from jwksURL.
// keyfunc caches the key set and refreshes it based on HTTP cache headers.
func NewJWKSVerifier(ctx context.Context, jwksURL string, logger *slog.Logger) (*JWKSVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL)

	return newJWKSVerifier(jwks, logger), nil
}

func newJWKSVerifier(jwks keyfunc.Keyfunc, logger *slog.Logger) *JWKSVerifier {
	return &JWKSVerifier{jwks: jwks, logger: logger}
}

// VerifyToken validates a token and extracts its claims
func (v *JWKSVerifier) VerifyToken(tokenString string) (*models.AccessClaims, error) {
	// Only asymmetric algorithms; an HS256 token signed with a public key must fail.
	token, err := jwt.ParseWithClaims(tokenString, &models.AccessClaims{}, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
	)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	return acceptedClaims(token, v.logger)
}

// Close is a no-op; keyfunc manages its own refresh goroutine through the
// context passed at construction.
func (v *JWKSVerifier) Close() error {
	v.logger.Info("JWT verifier closed")
	return nil
}

// acceptedClaims checks the parsed token carries a user.
func acceptedClaims(token *jwt.Token, logger *slog.Logger) (*models.AccessClaims, error) {
	if !token.Valid {
		logger.Debug("token is invalid after parsing")
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.AccessClaims)
	if !ok {
		logger.Error("failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	if claims.GetUserID() == "" {
		logger.Debug("token missing user claim")
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
