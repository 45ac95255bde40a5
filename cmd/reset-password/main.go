package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/logger"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/pkg/database"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, _, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync() //nolint:errcheck

	app := &cli.App{
		Name:  "reset-password",
		Usage: "set a new password for an account and end its open session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Value: cfg.SeedAdminEmail, Usage: "account to reset", EnvVars: []string{"RESET_EMAIL"}},
			&cli.StringFlag{Name: "password", Value: cfg.SeedAdminPassword, Usage: "new password", EnvVars: []string{"RESET_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			return resetPassword(cfg, log, c.String("email"), c.String("password"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal("reset failed", zap.Error(err))
	}
}

func resetPassword(cfg *config.Config, log *zap.Logger, email, password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	// 2. Setup database
	db, err := database.ConnectDB(database.Options{
		DSN:           cfg.DSN(),
		LogLevel:      "silent",
		SlowThreshold: time.Second,
	}, log)
	if err != nil {
		return err
	}
	userRepo := repository.NewUserRepo(db)

	// 3. Find user
	user, err := userRepo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("user %s: %w", email, err)
	}

	// 4. Hash new password; a new token version ends the open session
	if err := user.SetPassword(password); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.TokenVersion = uuid.NewString()
	user.UpdatedBy = "reset-password"

	// 5. Update
	if err := userRepo.Update(user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	log.Info("password reset", zap.String("email", user.Email))
	return nil
}
