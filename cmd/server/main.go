package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/relay"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := repository.Open(ctx, cfg.Store)
	cancel()
	if err != nil {
		logging.Fatal("failed to open store", "driver", cfg.Store.Driver, "error", err)
	}
	defer store.Close()

	// 認証情報が未設定の場合はメール通知を無効化
	notifier := relay.New(cfg.Mail)
	if cfg.Mail.Enabled() {
		slog.Info("email relay enabled", "smtp_host", cfg.Mail.Host, "smtp_port", cfg.Mail.Port)
	} else {
		slog.Info("email relay disabled: EMAIL_USER/EMAIL_PASS not set")
	}

	contactService := service.NewContactService(store.Contacts, notifier, slog.Default())

	router := handler.NewRouter(handler.RouterConfig{
		DB:             store,
		ContactService: contactService,
		FrontendURL:    cfg.FrontendURL,
		StaticDir:      cfg.StaticDir,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 45 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
