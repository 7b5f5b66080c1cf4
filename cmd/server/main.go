package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"truck_dispatch/internal/config"
	"truck_dispatch/internal/logger"
	"truck_dispatch/internal/middleware"
	"truck_dispatch/internal/repository"
	"truck_dispatch/internal/routes"
	"truck_dispatch/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	// Initialize structured logging to file
	logger.Setup(cfg.LogLevel, cfg.LogFile)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the database
	db, err := config.InitDB(cfg.DB)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	if cfg.RunMigrations {
		if err := config.RunMigrations(db); err != nil {
			logrus.WithError(err).Fatal("database migration failed")
		}
	}

	store := repository.NewStore(db)
	svc := services.New(store)

	if cfg.AdminUsername != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := svc.Users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		cancel()
		if err != nil {
			logrus.WithError(err).Fatal("could not bootstrap admin user")
		}
	}

	middleware.ConfigureJWT(cfg.JWTSecret, cfg.TokenTTL)
	r := routes.SetupRouter(svc, store, routes.Options{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Infof("%s listening", cfg.ServiceName)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logrus.WithField("signal", sig.String()).Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("http server shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
