package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionOpener hands out session handles
type SessionOpener interface {
	Open(id string) (*session.Handle, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Session attaches the visitor's session to the request. A missing or malformed cookie
// starts a new session and sets the cookie on the response.
func Session(opener SessionOpener, cookie CookieConfig, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(cookie.Name); err == nil && session.ValidID(c.Value) {
				id = c.Value
			}

			if id == "" {
				id = session.NewID()
				log.Info("Session: new session %s", id)
			}

			// Re-sent on every request to slide its expiry along with the stored draft.
			http.SetCookie(w, &http.Cookie{
				Name:     cookie.Name,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cookie.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cookie.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			handle, err := opener.Open(id)
			if err != nil {
				log.Error("Session: failed to open session %s: %v", id, err)
				handlers.RespondSessionUnavailable(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, handle)))
		})
	}
}

// GetSession returns the session attached by Session
func GetSession(ctx context.Context) (*session.Handle, bool) {
	handle, ok := ctx.Value(sessionKey).(*session.Handle)
	return handle, ok && handle != nil
}
