package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/senyabanana/talentlink-service/internal/db"
	"github.com/senyabanana/talentlink-service/internal/handlers"
	"github.com/senyabanana/talentlink-service/internal/logger"
	"github.com/senyabanana/talentlink-service/internal/repository"
	"github.com/senyabanana/talentlink-service/internal/router"
	"github.com/senyabanana/talentlink-service/internal/router/config"
	"github.com/senyabanana/talentlink-service/internal/services"
	"github.com/senyabanana/talentlink-service/internal/validator"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}
	logger.Init(cfg.AppEnv)

	if err := db.RunMigrations(cfg.MigrationURL, cfg.PostgresConn); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}
	logger.Info("db migrated successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.InitDb(ctx, cfg)
	if err != nil {
		logger.Fatal("error initializing database", "error", err)
	}
	defer dbPool.Close()

	v := validator.New()
	tx := repository.NewPostgresTransactor(dbPool)

	userRepo := repository.NewPostgresUserRepository(dbPool)
	profileRepo := repository.NewPostgresProfileRepository(dbPool)
	projectRepo := repository.NewPostgresProjectRepository(dbPool)
	proposalRepo := repository.NewPostgresProposalRepository(dbPool)
	contractRepo := repository.NewPostgresContractRepository(dbPool)
	messageRepo := repository.NewPostgresMessageRepository(dbPool)
	notificationRepo := repository.NewPostgresNotificationRepository(dbPool)

	notificationService := services.NewNotificationService(notificationRepo)
	userService := services.NewUserService(userRepo, profileRepo, tx, v)
	profileService := services.NewProfileService(profileRepo, userRepo, v)
	projectService := services.NewProjectService(projectRepo, v)
	proposalService := services.NewProposalService(proposalRepo, projectRepo, contractRepo, tx, notificationService, v)
	contractService := services.NewContractService(contractRepo, notificationService, v)
	messageService := services.NewMessageService(messageRepo, contractRepo, notificationService, v)

	routes := router.InitRoutes(router.Handlers{
		User:         handlers.NewUserHandler(userService, profileService, cfg.RequestTimeout),
		Project:      handlers.NewProjectHandler(projectService, cfg.RequestTimeout),
		Proposal:     handlers.NewProposalHandler(proposalService, cfg.RequestTimeout),
		Contract:     handlers.NewContractHandler(contractService, cfg.RequestTimeout),
		Message:      handlers.NewMessageHandler(messageService, cfg.RequestTimeout),
		Notification: handlers.NewNotificationHandler(notificationService, cfg.RequestTimeout),
	}, cfg.JWTSecret)

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server is listening", "address", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
