package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/chessroom-go/internal/api/apierr"
	"github.com/mcoot/chessroom-go/internal/model"
)

type contextKey string

const participantContextKey contextKey = "participant"

// Participant requires a bearer token on the request and places it in
// the context as the caller's participant identity. The token is opaque:
// it is not authenticated, it IS the identity — any holder of the token
// and a room code can act as that participant.
func Participant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), participantContextKey, model.ParticipantID(token))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the participant token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("participant")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetParticipant returns the participant identity from the request context
func GetParticipant(ctx context.Context) model.ParticipantID {
	id, _ := ctx.Value(participantContextKey).(model.ParticipantID)
	return id
}

// MustGetParticipant returns the participant identity or panics
func MustGetParticipant(ctx context.Context) model.ParticipantID {
	id := GetParticipant(ctx)
	if id == "" {
		panic("no participant in context - participant middleware not applied?")
	}
	return id
}
