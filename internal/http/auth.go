package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venuspay-go/internal/metrics"
)

// GET /admin/login
func (s *Server) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// POST /admin/login
func (s *Server) login(c *gin.Context) {
	if !s.auth.Authenticate(c.Request.Context(), c.PostForm("password")) {
		metrics.AdminLogins.WithLabelValues("failed").Inc()
		s.logger.Warn("admin login failed", "ip", c.ClientIP())
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"error": "Login failed"})
		return
	}

	if err := s.sessions.Issue(c.Writer, c.Request); err != nil {
		s.renderError(c, http.StatusInternalServerError, "Could not start session.", err)
		return
	}
	metrics.AdminLogins.WithLabelValues("ok").Inc()
	s.logger.Info("admin logged in", "ip", c.ClientIP())
	c.Redirect(http.StatusFound, "/admin")
}

// GET /admin/logout
func (s *Server) logout(c *gin.Context) {
	s.sessions.Clear(c.Writer)
	c.Redirect(http.StatusFound, "/")
}
