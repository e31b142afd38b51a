package httputil

import (
	"errors"
	"net/http"
	"strings"
)

// GetTokenFromRequest reads the game token from the Authorization header,
// falling back to the "token" query parameter (browsers cannot set headers
// on a WebSocket upgrade).
func GetTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Support "Bearer <token>" format
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return token, nil
		}
		return authHeader, nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", errors.New("no game token found in header or query")
}
