package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/secmon-lab/filterschema/pkg/domain/model"
)

const sessionCookieName = "filterschema_session"

type ctxSessionKey struct{}

func sessionFromContext(ctx context.Context) model.SessionID {
	if id, ok := ctx.Value(ctxSessionKey{}).(model.SessionID); ok {
		return id
	}
	return ""
}

// sessionMiddleware attaches the session of the request, minting a new one
// when the cookie is absent or does not hold a UUID
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID model.SessionID
		if c, err := r.Cookie(sessionCookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sessionID = model.SessionID(c.Value)
			}
		}

		if sessionID == "" {
			sessionID = model.NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID.String(),
				Path:     "/",
				HttpOnly: true,
				Secure:   s.secureCookie || r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(s.sessionMaxAge.Seconds()),
			})
		}

		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
