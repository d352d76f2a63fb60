package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"loan-admin-dashboard/internal/adapter/backend"
	httpadp "loan-admin-dashboard/internal/adapter/http"
	"loan-admin-dashboard/internal/adapter/objectstore"
	"loan-admin-dashboard/internal/adapter/repository/mysql"
	redisrepo "loan-admin-dashboard/internal/adapter/repository/redis"
	"loan-admin-dashboard/internal/config"
	"loan-admin-dashboard/internal/infrastructure/cache"
	"loan-admin-dashboard/internal/infrastructure/db"
	"loan-admin-dashboard/internal/logging"
	"loan-admin-dashboard/internal/usecase/activity"
	"loan-admin-dashboard/internal/usecase/application"
	"loan-admin-dashboard/internal/usecase/auth"
	"loan-admin-dashboard/internal/usecase/borrower"
	"loan-admin-dashboard/internal/usecase/repayment"
	"loan-admin-dashboard/internal/usecase/upload"
	"loan-admin-dashboard/internal/usecase/wizard"
)

const shutdownTimeout = 15 * time.Second

func main() {
	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Admin dashboard for the loan platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, args []string) error { return serve() },
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the activity log table",
			RunE:  func(cmd *cobra.Command, args []string) error { return migrate() },
		},
	)

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Fatal("dashboard exited")
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logging.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}

func migrate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logrus.Info("migration complete")
	return nil
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("open redis: %w", err)
	}
	defer rdb.Close()

	gdb, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	api, err := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout)
	if err != nil {
		return err
	}

	var store upload.ObjectStore
	if cfg.UploadsEnabled() {
		s3, err := objectstore.New(objectstore.Config{
			Region:        cfg.UploadRegion,
			Bucket:        cfg.UploadBucket,
			IdentityPool:  cfg.UploadIdentityPoolID,
			PublicBaseURL: cfg.UploadPublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("object store: %w", err)
		}
		store = s3
	} else {
		logrus.Warn("upload bucket or identity pool not set, document uploads are disabled")
	}

	recorder := activity.NewUsecase(mysql.NewActivityRepository(gdb))
	svc := httpadp.Services{
		Auth:         auth.NewUsecase(api.Auth(), redisrepo.NewSessionRepository(rdb), recorder, cfg.SessionTTL),
		Applications: application.NewUsecase(api.Applications(), recorder),
		Wizard: wizard.NewUsecase(redisrepo.NewDraftRepository(rdb), api.Borrowers(), api.Applications(),
			recorder, cfg.WizardDraftTTL),
		Borrowers:  borrower.NewUsecase(api.Borrowers(), recorder),
		Repayments: repayment.NewUsecase(api.Repayments(), recorder),
		Uploads:    upload.NewUsecase(store, cfg.UploadMaxBytes, recorder),
		Activity:   recorder,
	}

	srv, err := httpadp.NewServer(cfg, svc, rdb, []httpadp.HealthCheck{
		{Name: "redis", Check: cache.PingCheck(rdb)},
		{Name: "database", Check: db.PingCheck(gdb)},
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logrus.WithField("signal", sig.String()).Info("shutting down server")
	case err := <-errCh:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("server stopped")
	return nil
}
