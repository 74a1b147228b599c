package http

import (
	"context"
	"net/http"
	"strings"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/security"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware validates the bearer token and stores the actor
// claims in the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHENTICATED", Message: "missing bearer token"})
			return
		}
		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHENTICATED", Message: err.Error()})
			return
		}
		ctx := context.WithValue(r.Context(), actorKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFrom(r *http.Request) (*security.ActorClaims, bool) {
	claims, ok := r.Context().Value(actorKey).(*security.ActorClaims)
	return claims, ok
}

// StationKeyMiddleware authenticates gate scanner stations via the
// X-Station-Id / X-Station-Key headers. Scan endpoints accept either a
// station key or a gatekeeper bearer token; the station path serves
// the fixed scanners at the gate.
type StationKeyMiddleware struct {
	verifier *security.StationKeyVerifier
	auth     *AuthMiddleware
}

func NewStationKeyMiddleware(verifier *security.StationKeyVerifier, auth *AuthMiddleware) *StationKeyMiddleware {
	return &StationKeyMiddleware{verifier: verifier, auth: auth}
}

func (m *StationKeyMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stationID := r.Header.Get("X-Station-Id")
		if stationID == "" {
			// Fall back to a gatekeeper user token.
			m.auth.Handler(next).ServeHTTP(w, r)
			return
		}
		if err := m.verifier.Verify(stationID, r.Header.Get("X-Station-Key")); err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHENTICATED", Message: err.Error()})
			return
		}
		// The station itself is the recording gatekeeper.
		claims := &security.ActorClaims{ActorID: stationID, Role: domain.RoleGatekeeper}
		ctx := context.WithValue(r.Context(), actorKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
