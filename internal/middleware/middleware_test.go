package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"convertify/internal/auth"
	"convertify/internal/httputil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// echoUser writes the user id found in the request context.
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, httputil.GetUserID(r))
})

func TestOptionalAuth(t *testing.T) {
	verifier, err := auth.NewHMACVerifier("secret", discardLogger())
	require.NoError(t, err)
	issuer, err := auth.NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	valid, err := issuer.Issue("user-7", "user")
	require.NoError(t, err)

	handler := OptionalAuth(verifier, discardLogger())(echoUser)

	tests := []struct {
		name     string
		header   string
		status   int
		wantUser string
	}{
		{"no header is anonymous", "", http.StatusOK, ""},
		{"valid bearer", "Bearer " + valid, http.StatusOK, "user-7"},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "user-7"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"missing token", "Bearer ", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.wantUser, rec.Body.String())
				return
			}
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestOptionalAuth_NilVerifier(t *testing.T) {
	handler := OptionalAuth(nil, discardLogger())(echoUser)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRecovery(t *testing.T) {
	handler := Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/file/convertAndUpload", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
