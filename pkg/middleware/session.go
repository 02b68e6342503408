package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lab-inventory/pkg/contextkeys"
	apperrors "lab-inventory/pkg/errors"
)

// Session makes sure every browser carries a session id cookie and exposes
// the id to handlers.
func Session(cookieName string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sessionID string
			if cookie, err := c.Cookie(cookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.New().String()
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(string(contextkeys.SessionIDKey), sessionID)
			return next(c)
		}
	}
}

// SessionID returns the id stored by Session.
func SessionID(c echo.Context) (string, error) {
	id, ok := c.Get(string(contextkeys.SessionIDKey)).(string)
	if !ok || id == "" {
		return "", apperrors.ErrSessionNotFound
	}
	return id, nil
}
