// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// moviesCommand handles catalog browsing and per-movie actions
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"mov"},
		Usage:   "Browse and act on movies",
		Commands: []*cli.Command{
			{
				Name:  "recent",
				Usage: "List recently released movies",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page",
						Usage: "Page to fetch",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of movies per page",
						Value: 24,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.MoviesRecent,
			},
			{
				Name:  "top",
				Usage: "List top-rated movies",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page",
						Usage: "Page to fetch",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of movies per page",
						Value: 24,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.MoviesTop,
			},
			{
				Name:  "search",
				Usage: "Search movies by title",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page",
						Usage: "Page to fetch",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of movies per page",
						Value: 24,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesSearch,
			},
			{
				Name:  "show",
				Usage: "Show the full record for a movie",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the poster in the system browser",
					},
					&cli.BoolFlag{
						Name:  "cache",
						Usage: "Cache the movie locally",
					},
				},
				Action: r.MoviesShow,
			},
			{
				Name:  "rate",
				Usage: "Rate a movie (0-10)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "rating"},
				},
				Action: r.MoviesRate,
			},
			{
				Name:  "favorite",
				Usage: "Add a movie to your favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MoviesFavorite,
			},
			{
				Name:  "unfavorite",
				Usage: "Remove a movie from your favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MoviesUnfavorite,
			},
			{
				Name:  "comments",
				Usage: "List comments on a movie",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesComments,
			},
			{
				Name:  "comment",
				Usage: "Post a comment on a movie",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "body",
						Aliases:  []string{"b"},
						Usage:    "Comment text",
						Required: true,
					},
				},
				Action: r.MoviesComment,
			},
			{
				Name:    "recommend",
				Aliases: []string{"rec"},
				Usage:   "Personalized recommendations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of recommendations",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesRecommend,
			},
			{
				Name:  "popular",
				Usage: "Popular movies within your preferred genres",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesPopular,
			},
		},
	}
}

// listsCommand handles named list operations
func listsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lists",
		Usage: "Manage your movie lists",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show your lists, or the movies in one list",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ListsShow,
			},
			{
				Name:  "add",
				Usage: "Add a movie to a list by name, creating the list if needed",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "movie-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "list",
						Aliases:  []string{"l"},
						Usage:    "List name",
						Required: true,
					},
				},
				Action: r.ListsAdd,
			},
			{
				Name:  "add-to",
				Usage: "Add a movie to an existing list by id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "list-id"},
					&cli.StringArg{Name: "movie-id"},
				},
				Action: r.ListsAddTo,
			},
			{
				Name:  "delete",
				Usage: "Delete a list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ListsDelete,
			},
			{
				Name:  "remove",
				Usage: "Remove a movie from a list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "list-id"},
					&cli.StringArg{Name: "movie-id"},
				},
				Action: r.ListsRemove,
			},
			{
				Name:  "export",
				Usage: "Export lists to files with a rate-limited worker pool",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "ids",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of export workers",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "API requests per second",
						Value: 5,
					},
				},
				Action: r.ListsExport,
			},
		},
	}
}

// profileCommand handles the user profile, genre preferences, and watch history
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Inspect and update your profile",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show your profile with genres and watch history",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "genres",
				Usage: "Replace your preferred genres",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "genres",
					},
				},
				Action: r.ProfileGenres,
			},
			{
				Name:  "history",
				Usage: "Show your watch history",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfileHistory,
			},
			{
				Name:  "sync",
				Usage: "Mirror your watch history into the local cache",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.ProfileSync,
			},
			{
				Name:  "dump",
				Usage: "Full account state dump (profile, lists, recommendations)",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save dump to account_dump.json",
						Value: false,
					},
				},
				Action: r.ProfileDump,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the CinéIA server",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "delete",
				Usage: "Direct DELETE",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Action: r.APIDelete,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and store the session credential",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "age",
						Usage:    "Your age",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "genres",
						Usage: "Comma-separated preferred genres",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Log out and delete the stored credential",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Check session state and API reachability",
				Action: r.AuthStatus,
			},
		},
	}
}

// cacheCommand inspects the local movie and history cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect locally cached movies and history",
		Commands: []*cli.Command{
			{
				Name:  "movies",
				Usage: "List cached movies",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Filter by title substring",
					},
				},
				Action: r.CacheMovies,
			},
			{
				Name:  "history",
				Usage: "List the locally mirrored watch history",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.CacheHistory,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive movie browser",
		Action:  r.TUI,
	}
}
