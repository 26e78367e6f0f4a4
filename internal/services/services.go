package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spores/internal/shared"
)

// Service defines the Spotify operations used by the CLI commands.
type Service interface {
	// Name returns the name of the service (e.g., "Spotify")
	Name() string

	// CurrentUser returns the profile of the authenticated user.
	CurrentUser(ctx context.Context) (*SpotifyUser, error)

	// Search queries the catalog for items of a single type.
	Search(ctx context.Context, query string, kind SearchType, limit int) (*SpotifySearchResult, error)

	// AllPlaylists retrieves every playlist owned or followed by the authenticated user.
	AllPlaylists(ctx context.Context) ([]SpotifySimplePlaylist, error)

	// CreatePlaylist creates a new playlist for userID.
	CreatePlaylist(ctx context.Context, userID string, opts CreatePlaylistOpts) (*SpotifyPlaylist, error)

	// Playlist retrieves a playlist with the first page of its items.
	Playlist(ctx context.Context, playlistID string) (*SpotifyPlaylist, error)

	// AddPlaylistItems appends track or episode URIs to a playlist.
	AddPlaylistItems(ctx context.Context, playlistID string, uris []string) (*SnapshotResponse, error)

	// SaveTracks adds tracks to the user's library.
	SaveTracks(ctx context.Context, trackIDs []string) error

	// SaveAlbums adds albums to the user's library.
	SaveAlbums(ctx context.Context, albumIDs []string) error

	// FollowPlaylist follows a playlist.
	FollowPlaylist(ctx context.Context, playlistID string) error
}

// SearchType is the kind of catalog item a search returns.
type SearchType string

const (
	SearchTrack    SearchType = "track"
	SearchAlbum    SearchType = "album"
	SearchArtist   SearchType = "artist"
	SearchPlaylist SearchType = "playlist"
)

// SearchTypes lists the accepted values for [ParseSearchType].
var SearchTypes = []SearchType{SearchTrack, SearchAlbum, SearchArtist, SearchPlaylist}

// ParseSearchType validates s, ignoring case.
func ParseSearchType(s string) (SearchType, error) {
	want := SearchType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range SearchTypes {
		if t == want {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown search type %q (expected track, album, artist or playlist)", shared.ErrInvalidArgument, s)
}
