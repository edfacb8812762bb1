package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "mb_session"
	sessionKey        = "session_id"
	sessionMaxAge     = 30 * 24 * time.Hour
)

// VisitRecorder is told about every request of a session.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, sessionID string)
}

// Session identifies the visitor by the mb_session cookie, issuing a new id on
// the first visit. The cart and the visitor counter are keyed by this id.
func Session(recorder VisitRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(SessionCookieName); err == nil {
				if _, perr := uuid.Parse(ck.Value); perr == nil {
					id = ck.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(sessionMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(sessionKey, id)

			if recorder != nil {
				recorder.RecordVisit(c.Request().Context(), id)
			}
			return next(c)
		}
	}
}

// SessionID returns the id set by Session, or "" outside of it.
func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionKey).(string)
	return id
}
