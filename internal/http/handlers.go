package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"venuspay-go/internal/auth"
	"venuspay-go/internal/config"
	"venuspay-go/internal/database"
	"venuspay-go/internal/storage"
)

type Server struct {
	cfg      *config.Config
	store    *database.Store
	files    storage.Storage
	auth     auth.Provider
	sessions *auth.Sessions
	logger   *log.Logger
	now      func() time.Time
}

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Config   *config.Config
	Store    *database.Store
	Files    storage.Storage
	Auth     auth.Provider
	Sessions *auth.Sessions
	Logger   *log.Logger
}

func NewServer(d Deps) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      d.Config,
		store:    d.Store,
		files:    d.Files,
		auth:     d.Auth,
		sessions: d.Sessions,
		logger:   d.Logger,
		now:      time.Now,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(cors(d.Config))
	r.Use(logging(d.Logger.WithPrefix("http")))
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = d.Config.MaxUploadBytes()

	// Payer
	r.GET("/", s.index)
	r.POST("/", s.submitPayment)
	r.GET("/uploads/:filename", s.serveUpload)
	r.GET("/qr.png", s.qrCode)

	// Admin
	r.GET("/admin/login", s.loginForm)
	r.POST("/admin/login", s.login)
	r.GET("/admin/logout", s.logout)

	admin := r.Group("/admin")
	admin.Use(AdminOnly(d.Sessions, false))
	{
		admin.GET("", s.adminHome)
		admin.POST("", s.updateSettings)
		admin.GET("/approve/:id", s.approvePayment)
		admin.GET("/delete/:id", s.deletePayment)
		admin.GET("/export.xlsx", s.exportPayments)
	}

	adminAPI := r.Group("/admin")
	adminAPI.Use(AdminOnly(d.Sessions, true))
	{
		adminAPI.GET("/pending_count", s.pendingCount)
		adminAPI.GET("/summary", s.summary)
	}

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r, nil
}

func (s *Server) renderError(c *gin.Context, code int, msg string, err error) {
	s.logger.Error(msg, "err", err, "path", c.Request.URL.Path, "request_id", c.GetString("request_id"))
	c.HTML(code, "error.html", gin.H{"error": msg})
}

type healthResp struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var errs []string
	if err := s.store.Ping(ctx); err != nil {
		errs = append(errs, "database ping failed: "+err.Error())
	}
	if err := s.files.Ping(ctx); err != nil {
		errs = append(errs, "storage check failed: "+err.Error())
	}

	if len(errs) > 0 {
		c.JSON(http.StatusInternalServerError, healthResp{OK: false, Errors: errs})
		return
	}
	c.JSON(http.StatusOK, healthResp{OK: true})
}

// Run serves handler on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
