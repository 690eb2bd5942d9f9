package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cineia/cinex/internal/auth"
	"github.com/cineia/cinex/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges credentials for a token and transitions the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	password := cmd.String("password")

	r.logger.Info("logging in", "email", email)

	result, err := r.cine.Login(ctx, email, password)
	if err != nil {
		return err
	}

	claims, err := auth.Decode(result.Token)
	if err != nil {
		return fmt.Errorf("%w: server returned an unreadable token: %v", shared.ErrAuthFailed, err)
	}

	identity := auth.DeriveIdentity(claims, result.Token)
	if identity == nil {
		return fmt.Errorf("%w: token carries no identity", shared.ErrAuthFailed)
	}

	if err := r.session.Login(identity); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	r.logger.Info("login successful", "user", identity.Username)
	return r.writePlain("✓ Logged in as %s (user %d)\n", identity.Username, identity.UserID)
}

// AuthRegister creates an account, then logs in with the same credentials.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	password := cmd.String("password")
	age := cmd.Int("age")

	var genres []string
	if raw := cmd.String("genres"); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			genres = append(genres, strings.TrimSpace(g))
		}
	}

	r.logger.Info("registering account", "email", email, "genres", len(genres))

	if err := r.cine.Register(ctx, email, password, age, genres); err != nil {
		return err
	}

	r.writePlain("✓ Account created for %s\n", email)
	return r.AuthLogin(ctx, cmd)
}

// AuthLogout returns the session to anonymous and deletes the stored credential.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus reports the session state and probes the API's /health endpoint.
// The endpoint is optional on the server; a probe failure means unreachable
// or unconfigured, not that the session is invalid.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	snap := r.session.Snapshot()
	if snap.Authenticated {
		r.writePlain("Session: ✓ %s (user %d)\n", snap.Identity.Username, snap.Identity.UserID)
	} else {
		r.writePlain("Session: ✗ anonymous\n")
	}

	resp, err := r.api.Get(ctx, "/health")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return r.writePlain("API: ✓ reachable\n")
	}
	return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
}
