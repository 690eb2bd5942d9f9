package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cineia/cinex/internal/repositories"
	"github.com/cineia/cinex/internal/shared"
	"github.com/cineia/cinex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ProfileShow prints the caller's profile with genres and watch history.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	profile, err := r.svc.Profile(ctx, userID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s (user %d)", profile.Email, profile.UserID))
	r.writePlain("Age: %d\n", profile.Age)

	if len(profile.Genres) > 0 {
		names := make([]string, 0, len(profile.Genres))
		for _, g := range profile.Genres {
			names = append(names, g.Name)
		}
		r.writePlain("Genres: %s\n", strings.Join(names, ", "))
	} else {
		r.writePlain("Genres: none set\n")
	}

	r.writePlainln("Watch history (%d):", len(profile.CheckedMovies))
	for _, m := range profile.CheckedMovies {
		r.writePlain("  %s  %s\n", m.Date, m.Title)
	}
	return nil
}

// ProfileGenres replaces the caller's preferred genres.
func (r *Runner) ProfileGenres(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	raw := strings.TrimSpace(cmd.StringArg("genres"))
	if raw == "" {
		return fmt.Errorf("%w: provide a comma-separated genre list, e.g. \"Drama,Horror\"", shared.ErrMissingArgument)
	}

	var genres []string
	for _, g := range strings.Split(raw, ",") {
		genres = append(genres, strings.TrimSpace(g))
	}

	r.logger.Info("updating genres", "user", userID, "count", len(genres))

	if err := r.svc.UpdateGenres(ctx, userID, genres); err != nil {
		return err
	}

	return r.writePlain("✓ Preferred genres updated: %s\n", strings.Join(genres, ", "))
}

// ProfileHistory prints the caller's watch history from the API.
func (r *Runner) ProfileHistory(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	profile, err := r.svc.Profile(ctx, userID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile.CheckedMovies, true)
	}

	if len(profile.CheckedMovies) == 0 {
		return r.writePlain("No watch history yet.\n")
	}
	r.writePlainHeader("Watch History")
	for _, m := range profile.CheckedMovies {
		r.writePlain("%s  %8d  %s\n", m.Date, m.MovieID, m.Title)
	}
	return nil
}

// ProfileSync mirrors the remote watch history into the local cache database.
func (r *Runner) ProfileSync(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	db, err := r.openDatabase(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	engine := tasks.NewLibraryEngine(r.svc, r.api, repositories.NewHistoryRepository(db))

	r.logger.Info("syncing watch history", "user", userID)

	progressChan := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressChan {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := engine.SyncHistory(ctx, progressChan, userID)
	close(progressChan)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("✓ Synced %d/%d history entries", result.Synced, result.Total)
	for _, syncErr := range result.Errors {
		r.writePlain("  • %v\n", syncErr)
	}
	return nil
}

// ProfileDump fetches and displays the full account state.
func (r *Runner) ProfileDump(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")

	r.logger.Info("dumping account state", "user", userID)
	r.writePlain("Fetching account state...\n\n")

	progressChan := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressChan {
			r.writePlain("• %s\n", update.Message)
		}
	}()

	dump, err := r.engine.Dump(ctx, progressChan, userID)
	close(progressChan)
	<-done
	if err != nil {
		return err
	}

	r.writePlain("\n✓ Dump complete\n\n")

	if save {
		saveFile := "account_dump.json"
		data, err := shared.MarshalJSON(dump, true)
		if err != nil {
			return fmt.Errorf("failed to marshal dump: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save dump", "error", err)
		} else {
			r.logger.Info("dump saved", "file", saveFile)
			r.writePlain("✓ Dump saved to %s\n\n", saveFile)
		}
	}

	return r.writeJSON(dump, pretty)
}
