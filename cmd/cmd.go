// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// searchCommand searches the Spotify catalog
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search for tracks, albums, artists or playlists",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Item type: track, album, artist or playlist",
				Value:   "track",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of results (1-50)",
				Value:   20,
			},
		},
		Action: r.Search,
	}
}

// playlistCommand handles playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "List, create, inspect and extend playlists",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all playlists of the current user",
				Action: r.PlaylistList,
			},
			{
				Name:      "create",
				Usage:     "Create a playlist owned by the current user",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "public",
						Usage: "Make the playlist public",
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Playlist description",
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:      "info",
				Usage:     "Show a playlist and its first page of items",
				ArgsUsage: "<playlist id, URI or URL>",
				Action:    r.PlaylistInfo,
			},
			{
				Name:      "add",
				Usage:     "Add tracks or episodes to a playlist",
				ArgsUsage: "<playlist> <track or episode>...",
				Action:    r.PlaylistAdd,
			},
		},
	}
}

// saveCommand saves items to the user's library
func saveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "Save tracks or albums to your library, or follow playlists",
		ArgsUsage: "<id, URI or URL>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Item type: track, album, playlist or artist",
				Value:   "track",
			},
		},
		Action: r.Save,
	}
}

// configureCommand writes the config file interactively
func configureCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "configure",
		Usage:  "Set Spotify client credentials and redirect URI",
		Action: r.Configure,
	}
}

// authCommand manages the cached OAuth token
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the Spotify login",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize with Spotify and cache the token",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the cached token and the user it belongs to",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Delete the cached token",
				Action: r.AuthLogout,
			},
		},
	}
}
