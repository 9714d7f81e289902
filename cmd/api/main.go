package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/crunchperks/crunchperks-backend/api/controllers"
	"github.com/crunchperks/crunchperks-backend/api/routes"
	"github.com/crunchperks/crunchperks-backend/internal/ads"
	"github.com/crunchperks/crunchperks-backend/internal/applications"
	"github.com/crunchperks/crunchperks-backend/internal/partners"
	"github.com/crunchperks/crunchperks-backend/pkg/config"
	"github.com/crunchperks/crunchperks-backend/pkg/db"
	"github.com/crunchperks/crunchperks-backend/pkg/imagehost"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
	"github.com/crunchperks/crunchperks-backend/pkg/metrics"
	"github.com/crunchperks/crunchperks-backend/pkg/migrate"
	"github.com/crunchperks/crunchperks-backend/pkg/redis"
	"github.com/crunchperks/crunchperks-backend/pkg/stripe"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	readyChecks := []controllers.ReadyCheck{
		{Name: "database", Check: dbClient.Ping},
		{Name: "redis", Check: redisClient.Ping},
	}

	var imageClient *imagehost.Client
	if cfg.Cloudinary.CloudName != "" {
		imageClient, err = imagehost.NewClient(imagehost.Config{
			CloudName:    cfg.Cloudinary.CloudName,
			APIKey:       cfg.Cloudinary.APIKey,
			APISecret:    cfg.Cloudinary.APISecret,
			UploadFolder: cfg.Cloudinary.UploadFolder,
		})
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap image host", err)
			os.Exit(1)
		}
		readyChecks = append(readyChecks, controllers.ReadyCheck{Name: "imagehost", Check: imageClient.Ping})
	} else {
		logg.Warn(context.Background(), "image host not configured, ad creation disabled")
	}

	var stripeClient *stripe.Client
	if cfg.Stripe.APIKey != "" {
		stripeClient, err = stripe.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap stripe", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "stripe not configured, billing provisioning disabled")
	}

	applicationsSvc, err := applications.NewService(applications.ServiceParams{
		Repo:        applications.NewRepository(dbClient.DB()),
		AutoApprove: cfg.FeatureFlags.AutoApproveApplications,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create application service", err)
		os.Exit(1)
	}

	partnerParams := partners.ServiceParams{
		Repo:           partners.NewRepository(dbClient.DB()),
		Applications:   applications.NewRepository(dbClient.DB()),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		AdminConfig:    cfg.Admin,
		Logger:         logg,
	}
	if stripeClient != nil {
		partnerParams.Customers = stripeClient
	}
	partnersSvc, err := partners.NewService(partnerParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create partner service", err)
		os.Exit(1)
	}

	adParams := ads.ServiceParams{
		Repo:     ads.NewRepository(dbClient.DB()),
		Partners: partners.NewRepository(dbClient.DB()),
		Logger:   logg,
	}
	if imageClient != nil {
		adParams.Assets = imageClient
	}
	adsSvc, err := ads.NewService(adParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create ad service", err)
		os.Exit(1)
	}

	var intakeGuard *ads.IntakeGuard
	if imageClient != nil {
		intakeGuard, err = ads.NewIntakeGuard(imageClient, cfg.Ads, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create intake guard", err)
			os.Exit(1)
		}
	}

	httpMetrics := metrics.NewHTTPMetrics()

	router := routes.NewRouter(routes.Deps{
		Config:       cfg,
		Logger:       logg,
		Metrics:      httpMetrics,
		Redis:        redisClient,
		Applications: applicationsSvc,
		Partners:     partnersSvc,
		Ads:          adsSvc,
		Intake:       intakeGuard,
		ReadyChecks:  readyChecks,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
