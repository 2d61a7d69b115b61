package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veles-works/ems-console/internal/emsapi"
	"github.com/veles-works/ems-console/internal/lib/logger/sl"
	"github.com/veles-works/ems-console/internal/session"
)

const sessionKey = "console_session"

// requireSession resolves the session cookie and stamps the session's
// auth token onto the request context, so every EMS API call made while
// handling the request carries the credential. Requests without a live
// session are bounced to the login page with a return path.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(s.cookie.Name)
		if err != nil || sessionID == "" {
			s.redirectToLogin(c)
			return
		}

		sess, err := s.sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				s.log.ErrorContext(c.Request.Context(), "Failed to load session", sl.Err(err))
			}
			s.clearCookie(c)
			s.redirectToLogin(c)

			return
		}

		c.Set(sessionKey, sess)
		c.Request = c.Request.WithContext(emsapi.WithToken(c.Request.Context(), sess.Token))
		c.Next()
	}
}

func sessionFrom(c *gin.Context) session.Session {
	value, _ := c.Get(sessionKey)
	sess, _ := value.(session.Session)

	return sess
}

// expireSession tears down a session whose token the EMS API no longer
// accepts and sends the user back to login.
func (s *Server) expireSession(c *gin.Context) {
	sess := sessionFrom(c)
	if sess.ID != "" {
		if err := s.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
			s.log.WarnContext(c.Request.Context(), "Failed to delete expired session", sl.Err(err))
		}
		s.editors.Discard(sess.ID)
		s.metrics.ActiveSessions.Dec()
	}

	s.clearCookie(c)
	s.redirectToLogin(c)
}

func (s *Server) redirectToLogin(c *gin.Context) {
	next := c.Request.URL.RequestURI()
	c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(next))
	c.Abort()
}

func (s *Server) setSessionCookie(c *gin.Context, sessionID string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext keeps post-login redirects on this site.
func safeNext(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return "/employees"
	}

	return raw
}
