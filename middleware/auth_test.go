package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/swiss-tournament/services"
)

type stubVerifier map[string]*services.OrganizerClaims

func (v stubVerifier) ParseToken(token string) (*services.OrganizerClaims, error) {
	if c, ok := v[token]; ok {
		return c, nil
	}
	return nil, services.ErrInvalidToken
}

func TestAuthenticateAndAuthorize(t *testing.T) {
	verifier := stubVerifier{
		"organizer": {Role: services.RoleOrganizer},
		"spectator": {Role: "spectator"},
		"no-role":   {},
	}

	var seenRole string
	protected := Authenticate(verifier)(Authorize(services.RoleOrganizer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetClaimsFromContext(r.Context())
		require.NoError(t, err)
		seenRole = claims.Role
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "organizer", header: "Bearer organizer", wantStatus: http.StatusNoContent},
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic organizer", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer forged", wantStatus: http.StatusUnauthorized},
		{name: "other role", header: "Bearer spectator", wantStatus: http.StatusForbidden},
		{name: "missing role", header: "Bearer no-role", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenRole = ""
			req := httptest.NewRequest(http.MethodPost, "/players", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, services.RoleOrganizer, seenRole)
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestGetRoleFromContextWithoutClaims(t *testing.T) {
	_, err := GetRoleFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, services.ErrInvalidToken))
}
