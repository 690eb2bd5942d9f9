package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/cineia/cinex/internal/auth"
	"github.com/cineia/cinex/internal/services"
	"github.com/cineia/cinex/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	stateDir := config.Auth.StateDir
	if stateDir == "" {
		if dir, err := shared.StateDir(); err == nil {
			stateDir = dir
		}
	}

	ttl := time.Duration(config.Auth.CredentialTTLHours) * time.Hour
	session := auth.NewSession(auth.NewCredentialStore(stateDir, ttl))
	if err := session.Resume(); err != nil {
		logger.Warnf("failed to resume session: %v", err)
	}

	httpClient := &http.Client{Timeout: time.Duration(config.API.TimeoutSeconds) * time.Second}
	cineService := services.NewCineService(config.API.BaseURL, session, httpClient)
	apiService := services.NewAPIService(config.API.BaseURL, session, httpClient)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Session:    session,
		Cine:       cineService,
		API:        apiService,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "cinex",
		Usage:    "Browse, rate, and organize movies from the CinéIA catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
