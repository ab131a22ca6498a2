package httputil

import (
	"context"
	"net/http"

	"convertify/internal/domain/models"
)

type contextKey struct{}

var claimsKey contextKey

// WithClaims attaches verified token claims to the request.
func WithClaims(r *http.Request, claims *models.AccessClaims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
}

// GetClaims returns the verified claims, or nil for anonymous requests.
func GetClaims(r *http.Request) *models.AccessClaims {
	claims, _ := r.Context().Value(claimsKey).(*models.AccessClaims)
	return claims
}

// GetUserID returns the acting user, or "" when the request is anonymous.
func GetUserID(r *http.Request) string {
	if claims := GetClaims(r); claims != nil {
		return claims.GetUserID()
	}
	return ""
}
