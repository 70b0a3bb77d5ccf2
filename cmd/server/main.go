package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"listinghub/internal/auth"
	"listinghub/internal/config"
	apphttp "listinghub/internal/http"
	"listinghub/internal/repository/sqlite"
	"listinghub/internal/service"
	"listinghub/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	// no insecure fallback: an empty secret is a startup fault
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}
	codec, err := auth.NewCodec(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatalf("build token codec: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	agentRepo := sqlite.NewAgentRepository(db)
	listingRepo := sqlite.NewListingRepository(db)
	photoRepo := sqlite.NewListingPhotoRepository(db)
	templateRepo := sqlite.NewEmailTemplateRepository(db)
	prefsRepo := sqlite.NewNotificationPrefsRepository(db)

	if err := agentRepo.Init(ctx); err != nil {
		logger.Fatalf("init agent repository: %v", err)
	}
	if err := listingRepo.Init(ctx); err != nil {
		logger.Fatalf("init listing repository: %v", err)
	}
	if err := photoRepo.Init(ctx); err != nil {
		logger.Fatalf("init photo repository: %v", err)
	}
	if err := templateRepo.Init(ctx); err != nil {
		logger.Fatalf("init template repository: %v", err)
	}
	if err := prefsRepo.Init(ctx); err != nil {
		logger.Fatalf("init notification prefs repository: %v", err)
	}

	agentService := service.NewAgentService(agentRepo)
	listingService := service.NewListingService(listingRepo, photoRepo)
	templateService := service.NewTemplateService(templateRepo)
	notificationService := service.NewNotificationService(prefsRepo)

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		agentService,
		listingService,
		templateService,
		notificationService,
		codec,
		storageSvc,
		cfg.Storage.Bucket,
		cfg.Storage.KeyPrefix,
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Warn("storage bucket not configured, photo uploads disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
