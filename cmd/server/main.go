package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"Linkshelf/internal/config"
	"Linkshelf/internal/handlers"
	"Linkshelf/internal/middleware"
	"Linkshelf/internal/repo"
	"Linkshelf/internal/service"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Debugw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	tagRepo := repo.NewTagRepository(gormDB)
	collectionRepo := repo.NewCollectionRepository(gormDB)
	bookmarkRepo := repo.NewBookmarkRepository(gormDB)

	h := handlers.NewHandler(handlers.Services{
		Users:       service.NewUserService(userRepo),
		Tags:        service.NewTagService(tagRepo),
		Collections: service.NewCollectionService(collectionRepo, userRepo),
		Bookmarks:   service.NewBookmarkService(bookmarkRepo, userRepo, collectionRepo, tagRepo),
		Assist:      service.NewAssistService(nil, bookmarkRepo, tagRepo, sugar),
	}, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow("Starting server", "addr", cfg.ListenAddr)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"ListenAddr", cfg.ListenAddr,
		"DatabaseDSN", cfg.DatabaseDSN,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Shutdown failed", "error", err)
		}
	}
}
