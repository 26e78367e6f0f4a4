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

func parseSaveKind(s string) (services.Kind, error) {
	switch kind := services.Kind(strings.ToLower(strings.TrimSpace(s))); kind {
	case services.KindTrack, services.KindAlbum, services.KindPlaylist:
		return kind, nil
	case services.KindArtist:
		return "", fmt.Errorf("%w: saving artists is not supported; use 'follow' instead", shared.ErrUnsupported)
	default:
		return "", fmt.Errorf("%w: unknown item type %q (expected track, album or playlist)", shared.ErrInvalidArgument, s)
	}
}

// Save adds tracks or albums to the library, or follows playlists.
func (r *Runner) Save(ctx context.Context, cmd *cli.Command) error {
	kind, err := parseSaveKind(cmd.String("type"))
	if err != nil {
		return err
	}

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("%w: at least one %s", shared.ErrMissingArgument, kind)
	}

	parsed, err := services.ParseIDs(kind, args)
	if err != nil {
		return err
	}
	ids := make([]string, len(parsed))
	for i, id := range parsed {
		ids[i] = id.ID
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	switch kind {
	case services.KindTrack:
		err = svc.SaveTracks(ctx, ids)
	case services.KindAlbum:
		err = svc.SaveAlbums(ctx, ids)
	case services.KindPlaylist:
		for _, id := range ids {
			if err = svc.FollowPlaylist(ctx, id); err != nil {
				break
			}
		}
	}
	if err != nil {
		return err
	}

	r.logger.Debug("saved items", "type", kind, "count", len(ids))
	return r.writeJSON(formatter.Saved(kind, args))
}
