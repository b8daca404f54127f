package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := UserIDFromContext(r.Context())
	if id == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthMiddleware(t *testing.T) {
	Configure("middleware-secret", time.Hour)
	token, err := GenerateToken(7, "pilot", "user")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token " + token, want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", want: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/favorites/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(okHandler)(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	Configure("middleware-secret", time.Hour)
	userToken, err := GenerateToken(7, "pilot", "user")
	require.NoError(t, err)
	adminToken, err := GenerateToken(1, "flight-director", RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/articles", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	AdminMiddleware(okHandler)(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/articles", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	AdminMiddleware(okHandler)(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
