package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cineia/cinex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ListsShow prints the caller's lists, or the movie ids in one list when an
// id argument is given.
func (r *Runner) ListsShow(ctx context.Context, cmd *cli.Command) error {
	idArg := strings.TrimSpace(cmd.StringArg("id"))

	if idArg == "" {
		userID, err := r.userID()
		if err != nil {
			return err
		}

		lists, err := r.svc.Lists(ctx, userID)
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(lists, true)
		}

		if len(lists) == 0 {
			return r.writePlain("No lists yet. Create one with 'cinex lists add'.\n")
		}
		r.writePlainHeader("Your Lists")
		for _, l := range lists {
			r.writePlain("%8d  %s\n", l.ID, l.Name)
		}
		return nil
	}

	listID, err := parseID(idArg, "list id")
	if err != nil {
		return err
	}

	movieIDs, err := r.svc.ListMovies(ctx, listID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movieIDs, false)
	}

	r.writePlainHeader(fmt.Sprintf("List %d (%d movies)", listID, len(movieIDs)))
	for _, id := range movieIDs {
		r.writePlain("%8d\n", id)
	}
	return nil
}

// ListsAdd adds a movie to a list by name, creating the list server-side if
// it does not exist.
func (r *Runner) ListsAdd(ctx context.Context, cmd *cli.Command) error {
	movieID, err := parseID(cmd.StringArg("movie-id"), "movie id")
	if err != nil {
		return err
	}
	listName := cmd.String("list")

	r.logger.Info("adding movie to list", "movie", movieID, "list", listName)

	if err := r.svc.AddToList(ctx, movieID, listName); err != nil {
		return err
	}

	return r.writePlain("✓ Added movie %d to %q\n", movieID, listName)
}

// ListsAddTo adds a movie to an existing list by id.
func (r *Runner) ListsAddTo(ctx context.Context, cmd *cli.Command) error {
	listID, err := parseID(cmd.StringArg("list-id"), "list id")
	if err != nil {
		return err
	}
	movieID, err := parseID(cmd.StringArg("movie-id"), "movie id")
	if err != nil {
		return err
	}
	userID, err := r.userID()
	if err != nil {
		return err
	}

	if err := r.svc.AddToListByID(ctx, userID, listID, movieID); err != nil {
		return err
	}

	return r.writePlain("✓ Added movie %d to list %d\n", movieID, listID)
}

// ListsDelete deletes a list and its entries.
func (r *Runner) ListsDelete(ctx context.Context, cmd *cli.Command) error {
	listID, err := parseID(cmd.StringArg("id"), "list id")
	if err != nil {
		return err
	}

	if err := r.svc.DeleteList(ctx, listID); err != nil {
		return err
	}

	return r.writePlain("✓ Deleted list %d\n", listID)
}

// ListsRemove removes one movie from a list.
func (r *Runner) ListsRemove(ctx context.Context, cmd *cli.Command) error {
	listID, err := parseID(cmd.StringArg("list-id"), "list id")
	if err != nil {
		return err
	}
	movieID, err := parseID(cmd.StringArg("movie-id"), "movie id")
	if err != nil {
		return err
	}

	if err := r.svc.RemoveFromList(ctx, listID, movieID); err != nil {
		return err
	}

	return r.writePlain("✓ Removed movie %d from list %d\n", movieID, listID)
}

// ListsExport exports lists to files through the engine's worker pool.
//
// With no ids argument every list is exported. Progress updates stream to
// the terminal as they arrive.
func (r *Runner) ListsExport(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	var listIDs []int64
	if idsArg := strings.TrimSpace(cmd.StringArg("ids")); idsArg != "" {
		for _, part := range strings.Split(idsArg, ",") {
			id, err := parseID(part, "list id")
			if err != nil {
				return err
			}
			listIDs = append(listIDs, id)
		}
	}

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	}

	r.logger.Info("exporting lists", "count", len(listIDs), "format", opts.Format)

	progressChan := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressChan {
			if update.Total > 0 {
				r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
			} else {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.BulkExport(ctx, progressChan, userID, listIDs, opts)
	close(progressChan)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("✓ Exported %d/%d lists to %s", result.SuccessfulExports, result.TotalLists, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("✗ %d lists failed:\n", result.FailedExports)
		for _, lr := range result.Results {
			if !lr.Success {
				r.writePlain("  • list %d: %s\n", lr.ListID, lr.ErrorMsg)
			}
		}
	}
	return nil
}
