package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"venuspay-go/internal/auth"
	"venuspay-go/internal/config"
	"venuspay-go/internal/database"
	httpserver "venuspay-go/internal/http"
	"venuspay-go/internal/keepalive"
	"venuspay-go/internal/logging"
	"venuspay-go/internal/storage"
)

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.Log)

	db, err := database.Connect(cfg.DB, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	files, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	provider, err := auth.NewSharedPassword(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		return fmt.Errorf("init admin auth: %w", err)
	}
	if cfg.AdminPasswordHash == "" && cfg.AdminPassword == "admin123" {
		logger.Warn("using the default admin password; set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}

	gin.SetMode(gin.ReleaseMode)
	r, err := httpserver.NewServer(httpserver.Deps{
		Config:   cfg,
		Store:    database.NewStore(db),
		Files:    files,
		Auth:     provider,
		Sessions: auth.NewSessions(cfg.SessionSecret),
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	if cfg.KeepAlive.URL != "" {
		pinger, err := keepalive.New(cfg.KeepAlive.URL, cfg.KeepAlive.Interval, logger)
		if err != nil {
			return fmt.Errorf("init keep-alive: %w", err)
		}
		pinger.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			pinger.Stop(stopCtx)
		}()
		logger.Info("keep-alive enabled", "url", cfg.KeepAlive.URL, "every", cfg.KeepAlive.Interval)
	}

	addr := ":" + cfg.Port
	logger.Info("starting venuspay", "db", cfg.DB.Driver, "s3", cfg.S3.Enabled(), "uploads", cfg.UploadDir)
	return httpserver.Run(ctx, addr, r, logger)
}
