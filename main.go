package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/racebook/config"
	"github.com/padraicbc/racebook/db"
	"github.com/padraicbc/racebook/handlers"
	applog "github.com/padraicbc/racebook/logger"
	mw "github.com/padraicbc/racebook/middleware"
	"github.com/padraicbc/racebook/store"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	st := store.New(bdb)
	if n, err := st.PurgeExpiredSessions(context.Background()); err != nil {
		logger.Warn("purge sessions failed", zap.Error(err))
	} else if n > 0 {
		logger.Info("purged expired sessions", zap.Int("count", n))
	}

	h := handlers.New(st, cfg.SessionTTL)

	renderer, err := handlers.NewRenderer()
	if err != nil {
		logger.Fatal("parse views failed", zap.Error(err))
	}

	e := echo.New()
	e.Renderer = renderer
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(mw.LoadUser(st))

	// Public
	e.GET("/", h.Index)
	e.GET("/register", h.RegisterForm)
	e.POST("/register", h.Register)
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)

	// Signed-in users
	auth := e.Group("", mw.RequireSession)
	auth.POST("/logout", h.Logout)
	auth.GET("/owners", h.Owners)
	auth.GET("/owners/:id/horses", h.OwnerHorses)
	auth.GET("/jockeys", h.Jockeys)
	auth.GET("/races", h.Races)
	auth.GET("/races/:id/results", h.RaceResults)

	// Admins only
	e.GET("/admin", h.Admin, mw.RequireAdmin)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
