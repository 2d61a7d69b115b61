package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veles-works/ems-console/internal/emsapi"
	"github.com/veles-works/ems-console/internal/lib/logger/sl"
	"github.com/veles-works/ems-console/internal/session"
)

type loginInput struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

func (s *Server) handleLoginPage(c *gin.Context) {
	s.metrics.PageViews.WithLabelValues("login").Inc()

	// An already signed-in user has nothing to do here.
	if sessionID, err := c.Cookie(s.cookie.Name); err == nil && sessionID != "" {
		if _, err = s.sessions.Get(c.Request.Context(), sessionID); err == nil {
			c.Redirect(http.StatusSeeOther, "/employees")
			return
		}
	}

	c.HTML(http.StatusOK, "login", loginPage{Next: safeNext(c.Query("next"))})
}

func (s *Server) handleLogin(c *gin.Context) {
	const opn = "Server.handleLogin"
	log := s.log.With(slog.String("op", opn))

	var input loginInput
	if err := c.ShouldBind(&input); err != nil {
		c.HTML(http.StatusBadRequest, "login", loginPage{Error: "The submitted form could not be read."})
		return
	}

	page := loginPage{
		Username:    input.Username,
		Next:        safeNext(input.Next),
		FieldErrors: make(map[string]string),
	}

	if strings.TrimSpace(input.Username) == "" {
		page.FieldErrors["username"] = "Username is required."
	}
	if input.Password == "" {
		page.FieldErrors["password"] = "Password is required."
	}
	if len(page.FieldErrors) > 0 {
		c.HTML(http.StatusBadRequest, "login", page)
		return
	}

	token, err := s.api.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, emsapi.ErrBadCredentials) {
			page.Error = "Invalid username or password."
			c.HTML(http.StatusUnauthorized, "login", page)

			return
		}

		log.ErrorContext(c.Request.Context(), "Login request failed", sl.Err(err))
		page.Error = "Login failed. Please try again later."
		c.HTML(http.StatusBadGateway, "login", page)

		return
	}

	sess := session.Session{ID: session.NewID(), Token: token}
	if err = s.sessions.Save(c.Request.Context(), sess); err != nil {
		log.ErrorContext(c.Request.Context(), "Failed to persist session", sl.Err(err))
		page.Error = "Login failed. Please try again later."
		c.HTML(http.StatusInternalServerError, "login", page)

		return
	}

	s.setSessionCookie(c, sess.ID)
	s.metrics.ActiveSessions.Inc()
	log.InfoContext(c.Request.Context(), "User signed in", "session_id", sess.ID)

	c.Redirect(http.StatusSeeOther, page.Next)
}

func (s *Server) handleLogout(c *gin.Context) {
	sess := sessionFrom(c)

	if err := s.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
		s.log.WarnContext(c.Request.Context(), "Failed to delete session on logout", sl.Err(err))
	}
	s.editors.Discard(sess.ID)
	s.metrics.ActiveSessions.Dec()
	s.clearCookie(c)

	c.Redirect(http.StatusSeeOther, "/login")
}
