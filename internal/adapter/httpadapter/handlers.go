package httpadapter

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primex/opportunity-dashboard/internal/auth"
	"github.com/primex/opportunity-dashboard/internal/dashboard"
)

type loginPage struct {
	Error    string
	Username string
}

type dashboardPage struct {
	View     *dashboard.View
	Username string
	Error    string
}

func (s *Server) handleIndex(c echo.Context) error {
	sess := sessionFrom(c)
	if !sess.LoggedIn {
		return c.Render(http.StatusOK, "login.html", loginPage{})
	}

	view, err := s.deps.Dashboard.Build(c.Request().Context(), c.QueryParam("type"))
	if errors.Is(err, dashboard.ErrNoData) {
		return c.Render(http.StatusServiceUnavailable, "dashboard.html", dashboardPage{
			Username: sess.Username,
			Error:    dashboard.NoDataMessage,
		})
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "dashboard.html", dashboardPage{View: view, Username: sess.Username})
}

func (s *Server) handleLogin(c echo.Context) error {
	username := c.FormValue("username")
	sess, err := auth.Login(s.deps.Authenticator, username, c.FormValue("password"))
	if err != nil {
		s.deps.Metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		s.logger.Info("login rejected", "username", username)
		return c.Render(http.StatusUnauthorized, "login.html", loginPage{
			Error:    auth.RejectionMessage,
			Username: username,
		})
	}

	token, err := s.deps.Sessions.Issue(sess)
	if err != nil {
		return err
	}
	s.deps.Metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.logger.Info("login succeeded", "username", sess.Username)
	s.setSessionCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleLogout(c echo.Context) error {
	if sess := sessionFrom(c); sess.LoggedIn {
		s.logger.Info("logout", "username", sess.Username)
	}
	clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleDashboardAPI(c echo.Context) error {
	view, err := s.deps.Dashboard.Build(c.Request().Context(), c.QueryParam("type"))
	if errors.Is(err, dashboard.ErrNoData) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, dashboard.NoDataMessage)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}
