package main

import (
	"context"
	"net/http"
)

type sessionKey string

const sessionCtx sessionKey = "session"

const sessionCookieName = "storefront_session"

// SessionMiddleware attaches a browsing-session id to the request context.
// A valid session cookie is reused; anything else gets a fresh session and
// a new cookie, so an expired or garbled token never blocks the cart.
func (app *application) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string

		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			sessionID, _ = app.sessions.ValidateToken(cookie.Value)
		}

		if sessionID == "" {
			sessionID = app.sessions.NewSessionID()

			token, err := app.sessions.GenerateToken(sessionID)
			if err != nil {
				app.internalServerError(w, r, err)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(app.config.session.exp.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   app.config.env == "production",
			})
		}

		ctx := context.WithValue(r.Context(), sessionCtx, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSessionFromContext(r *http.Request) string {
	sessionID, _ := r.Context().Value(sessionCtx).(string)
	return sessionID
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr)
			if !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
