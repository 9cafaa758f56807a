package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-commerce-user/config"
	"github.com/oksasatya/go-commerce-user/internal/application"
	"github.com/oksasatya/go-commerce-user/internal/container"
	"github.com/oksasatya/go-commerce-user/internal/domain/errs"
	pginfra "github.com/oksasatya/go-commerce-user/internal/infrastructure/postgres"
	"github.com/oksasatya/go-commerce-user/internal/router"
	"github.com/oksasatya/go-commerce-user/pkg/helpers"
)

// Seeds a demo account through the account service. Running it twice is
// harmless: an existing login id is reported and skipped.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	m, err := pginfra.NewMigrator(cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to init migrations: %v", err)
	}
	if err := m.Up(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	_ = m.Close()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	svc := router.BuildService()

	in := application.SignUpInput{
		LoginID:   "demouser1",
		Password:  "Demo1234!",
		Name:      "김데모",
		BirthDate: time.Date(1995, time.March, 15, 0, 0, 0, 0, time.UTC),
		Email:     "demo@example.com",
	}
	if err := seedDemo(ctx, svc, logger, in); err != nil {
		log.Fatalf("failed to seed account: %v", err)
	}
}

type signUpper interface {
	SignUp(ctx context.Context, in application.SignUpInput) (*application.AccountView, error)
}

// seedDemo creates the account and logs its login id. The password is never
// logged.
func seedDemo(ctx context.Context, svc signUpper, logger *logrus.Logger, in application.SignUpInput) error {
	view, err := svc.SignUp(ctx, in)
	switch {
	case errors.Is(err, errs.ErrDuplicateLoginID):
		logger.WithField("login_id", in.LoginID).Info("demo account already exists")
		return nil
	case err != nil:
		return err
	default:
		logger.WithField("login_id", view.LoginID).Info("seeded demo account")
		return nil
	}
}
