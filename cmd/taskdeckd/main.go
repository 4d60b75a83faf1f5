package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"taskdeck/internal/api"
	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/logging"
	"taskdeck/internal/notify"
	"taskdeck/internal/repository"
	"taskdeck/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.New("").Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(userRepo, tokens)
	categorySvc := service.NewCategoryService(categoryRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)
	digestSvc := service.NewDigestService(taskRepo, categoryRepo)

	var telegram *notify.Telegram
	if cfg.TelegramToken != "" {
		telegram, err = notify.NewTelegram(cfg.TelegramToken)
		if err != nil {
			logger.Fatalf("telegram: %v", err)
		}
	}

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.DigestTime != "" {
		if _, err := scheduler.ScheduleDaily(cfg.DigestTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			sendDigests(jobCtx, logger, userRepo, digestSvc, telegram)
		}); err != nil {
			logger.Fatalf("schedule digest: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	handler := api.NewHandler(authSvc, taskSvc, categorySvc, logger)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(handler, tokens),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}()

	logger.WithField("addr", cfg.HTTPAddr).Info("taskdeck server started")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("server stopped with error: %v", err)
	}
	logger.Info("shutdown complete")
}

func sendDigests(ctx context.Context, logger *logrus.Logger, userRepo *repository.UserRepository, digestSvc *service.DigestService, telegram *notify.Telegram) {
	users, err := userRepo.ListAll(ctx)
	if err != nil {
		logger.WithError(err).Error("digest: list users")
		return
	}

	now := time.Now()
	for _, user := range users {
		text, err := digestSvc.DailyDigest(ctx, user, now)
		if err != nil {
			logger.WithError(err).WithField("user_id", user.ID).Error("digest build failed")
			continue
		}
		if text == "" {
			continue
		}
		if telegram != nil && user.TelegramChatID != 0 {
			if err := telegram.Send(user.TelegramChatID, text); err != nil {
				logger.WithError(err).WithField("user_id", user.ID).Error("digest send failed")
			}
			continue
		}
		logger.WithField("user", user.Email).Infof("digest:\n%s", text)
	}
}
