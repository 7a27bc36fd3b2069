package httpadapter

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primex/opportunity-dashboard/internal/auth"
)

const sessionKey = "session"

// loadSession stores the request's session in the echo context. Missing,
// expired or tampered cookies yield the zero session.
func (s *Server) loadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var sess auth.Session
		if cookie, err := c.Cookie(auth.SessionCookie); err == nil && cookie.Value != "" {
			parsed, err := s.deps.Sessions.Parse(cookie.Value)
			if err != nil {
				s.logger.Debug("session rejected", "error", err)
			} else {
				sess = parsed
			}
		}
		c.Set(sessionKey, sess)
		return next(c)
	}
}

func requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !sessionFrom(c).LoggedIn {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		return next(c)
	}
}

func sessionFrom(c echo.Context) auth.Session {
	sess, _ := c.Get(sessionKey).(auth.Session)
	return sess
}

func (s *Server) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.deps.Sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.IsTLS(),
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
