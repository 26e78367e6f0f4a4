package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spores/internal/formatter"
	"github.com/desertthunder/spores/internal/services"
	"github.com/desertthunder/spores/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistList prints every playlist of the current user.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	playlists, err := svc.AllPlaylists(ctx)
	if err != nil {
		return err
	}

	r.logger.Debug("fetched playlists", "count", len(playlists))
	return r.writeJSON(formatter.PlaylistList(playlists))
}

// PlaylistCreate creates a playlist owned by the current user.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	opts := services.CreatePlaylistOpts{Name: name, Public: cmd.Bool("public")}
	if cmd.IsSet("description") {
		description := cmd.String("description")
		opts.Description = &description
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	user, err := svc.CurrentUser(ctx)
	if err != nil {
		return err
	}

	playlist, err := svc.CreatePlaylist(ctx, user.ID, opts)
	if err != nil {
		return err
	}

	r.logger.Info("created playlist", "id", playlist.ID, "owner", user.ID)
	return r.writeJSON(formatter.CreatedPlaylist(playlist))
}

// PlaylistInfo prints a playlist with its first page of items.
func (r *Runner) PlaylistInfo(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("%w: expected exactly one playlist", shared.ErrMissingArgument)
	}

	id, err := services.ParseID(services.KindPlaylist, cmd.Args().First())
	if err != nil {
		return err
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	playlist, err := svc.Playlist(ctx, id.ID)
	if err != nil {
		return err
	}
	return r.writeJSON(formatter.PlaylistInfo(playlist))
}

// PlaylistAdd appends tracks or episodes to a playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("%w: expected a playlist and at least one track", shared.ErrMissingArgument)
	}

	playlist, err := services.ParseID(services.KindPlaylist, args[0])
	if err != nil {
		return err
	}

	uris := make([]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		item, err := services.ParsePlayable(arg)
		if err != nil {
			return err
		}
		uris = append(uris, item.URI())
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	snapshot, err := svc.AddPlaylistItems(ctx, playlist.ID, uris)
	if err != nil {
		return err
	}
	return r.writeJSON(formatter.ItemsAdded(args[0], len(uris), snapshot))
}
