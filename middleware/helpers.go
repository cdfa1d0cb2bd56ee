package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type contextKey string

const claimsContextKey contextKey = "claims"

func GetClaimsFromContext(ctx context.Context) (*services.OrganizerClaims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*services.OrganizerClaims)
	if !ok || claims == nil {
		return nil, errors.New("token claims not found in context")
	}
	return claims, nil
}

func GetRoleFromContext(ctx context.Context) (string, error) {
	claims, err := GetClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	if claims.Role == "" {
		return "", errors.New("missing role claim in token")
	}
	return claims.Role, nil
}

// writeError mirrors the handlers' {"error": "..."} body.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
