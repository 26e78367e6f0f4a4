// package formatter reshapes Spotify API responses into the documents printed by the CLI
package formatter

import (
	"fmt"

	"github.com/desertthunder/spores/internal/models"
	"github.com/desertthunder/spores/internal/services"
	"github.com/desertthunder/spores/internal/shared"
)

const unknownOwner = "unknown"

// Search converts the page matching kind into a [models.SearchResult].
//
// A missing page yields an empty result; null playlist entries are skipped.
func Search(query string, kind services.SearchType, result *services.SpotifySearchResult) (*models.SearchResult, error) {
	doc := &models.SearchResult{Query: query, Type: string(kind)}

	switch kind {
	case services.SearchTrack:
		items := []models.TrackItem{}
		if page := result.Tracks; page != nil {
			doc.Total = page.Total
			for _, track := range page.Items {
				items = append(items, trackItem(track))
			}
		}
		doc.Items = items
	case services.SearchAlbum:
		items := []models.AlbumItem{}
		if page := result.Albums; page != nil {
			doc.Total = page.Total
			for _, album := range page.Items {
				items = append(items, models.AlbumItem{
					ID:          services.URI(services.KindAlbum, album.ID),
					Name:        album.Name,
					Artists:     artistNames(album.Artists),
					ReleaseDate: album.ReleaseDate,
				})
			}
		}
		doc.Items = items
	case services.SearchArtist:
		items := []models.ArtistItem{}
		if page := result.Artists; page != nil {
			doc.Total = page.Total
			for _, artist := range page.Items {
				genres := artist.Genres
				if genres == nil {
					genres = []string{}
				}
				items = append(items, models.ArtistItem{
					ID:         uri(services.KindArtist, artist.ID),
					Name:       artist.Name,
					Genres:     genres,
					Followers:  artist.Followers.Total,
					Popularity: artist.Popularity,
				})
			}
		}
		doc.Items = items
	case services.SearchPlaylist:
		items := []models.PlaylistItem{}
		if page := result.Playlists; page != nil {
			doc.Total = page.Total
			for _, playlist := range page.Items {
				if playlist == nil {
					continue
				}
				items = append(items, models.PlaylistItem{
					ID:     uri(services.KindPlaylist, playlist.ID),
					Name:   playlist.Name,
					Tracks: playlist.Tracks.Total,
					Owner:  ownerName(playlist.Owner),
					URL:    spotifyURL(playlist.ExternalURLs),
				})
			}
		}
		doc.Items = items
	default:
		return nil, fmt.Errorf("%w: unsupported search type %q", shared.ErrInvalidArgument, kind)
	}

	return doc, nil
}

// PlaylistList summarizes every collected playlist.
func PlaylistList(playlists []services.SpotifySimplePlaylist) *models.PlaylistList {
	summaries := make([]models.PlaylistSummary, 0, len(playlists))
	for _, p := range playlists {
		summaries = append(summaries, models.PlaylistSummary{
			ID:     uri(services.KindPlaylist, p.ID),
			Name:   p.Name,
			Tracks: p.Tracks.Total,
			Public: isPublic(p.Public),
			Owner:  ownerName(p.Owner),
			URL:    spotifyURL(p.ExternalURLs),
		})
	}
	return &models.PlaylistList{Total: len(summaries), Playlists: summaries}
}

func CreatedPlaylist(p *services.SpotifyPlaylist) *models.CreatedPlaylist {
	return &models.CreatedPlaylist{
		ID:          uri(services.KindPlaylist, p.ID),
		Name:        p.Name,
		Public:      isPublic(p.Public),
		Description: p.Description,
		URL:         spotifyURL(p.ExternalURLs),
	}
}

// PlaylistInfo describes a playlist and the items of its first page. Removed (null) items are skipped.
func PlaylistInfo(p *services.SpotifyPlaylist) *models.PlaylistInfo {
	tracks := make([]any, 0, len(p.Tracks.Items))
	for _, item := range p.Tracks.Items {
		if item.Track == nil {
			continue
		}
		tracks = append(tracks, playlistEntry(item.Track))
	}

	return &models.PlaylistInfo{
		ID:            uri(services.KindPlaylist, p.ID),
		Name:          p.Name,
		Owner:         ownerName(p.Owner),
		Public:        isPublic(p.Public),
		Collaborative: p.Collaborative,
		Followers:     p.Followers.Total,
		Description:   p.Description,
		URL:           spotifyURL(p.ExternalURLs),
		TotalTracks:   p.Tracks.Total,
		Tracks:        tracks,
	}
}

func playlistEntry(item *services.SpotifyPlayable) any {
	switch {
	case item.Track != nil:
		t := trackItem(*item.Track)
		return models.PlaylistTrack{
			Type:       "track",
			ID:         t.ID,
			Name:       t.Name,
			Artists:    t.Artists,
			Album:      t.Album,
			DurationMS: t.DurationMS,
		}
	case item.Episode != nil:
		return models.PlaylistEpisode{
			Type:       "episode",
			ID:         uri(services.KindEpisode, item.Episode.ID),
			Name:       item.Episode.Name,
			Show:       item.Episode.Show.Name,
			DurationMS: item.Episode.DurationMS,
		}
	default:
		return models.UnknownItem{Type: "unknown"}
	}
}

// ItemsAdded reports how many items were sent to playlist (as typed by the user).
func ItemsAdded(playlist string, count int, snapshot *services.SnapshotResponse) *models.ItemsAdded {
	doc := &models.ItemsAdded{Playlist: playlist, Added: count}
	if snapshot != nil {
		doc.SnapshotID = snapshot.SnapshotID
	}
	return doc
}

func Saved(kind services.Kind, ids []string) *models.Saved {
	return &models.Saved{Type: string(kind), Saved: len(ids), IDs: ids}
}

// AuthStatus describes the cached token and, when known, the user it belongs to.
func AuthStatus(cachePath string, cached *services.CachedToken, user *services.SpotifyUser) *models.AuthStatus {
	doc := &models.AuthStatus{TokenCache: cachePath, Scopes: []string{}}
	if cached == nil {
		return doc
	}

	doc.Authenticated = user != nil
	if cached.Scopes != nil {
		doc.Scopes = cached.Scopes
	}
	if !cached.Expiry.IsZero() {
		expiry := cached.Expiry
		doc.Expiry = &expiry
	}
	if user != nil {
		doc.User = &models.User{ID: user.ID, DisplayName: user.DisplayName}
	}
	return doc
}

func trackItem(track services.SpotifyTrack) models.TrackItem {
	return models.TrackItem{
		ID:         services.URI(services.KindTrack, track.ID),
		Name:       track.Name,
		Artists:    artistNames(track.Artists),
		Album:      track.Album.Name,
		DurationMS: track.DurationMS,
	}
}

func artistNames(artists []services.SpotifyArtist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}

func ownerName(owner services.Owner) string {
	if owner.DisplayName == nil {
		return unknownOwner
	}
	return *owner.DisplayName
}

func isPublic(public *bool) bool {
	return public != nil && *public
}

func spotifyURL(urls map[string]string) *string {
	if u, ok := urls["spotify"]; ok {
		return &u
	}
	return nil
}

func uri(kind services.Kind, id string) string {
	return services.ID{Kind: kind, ID: id}.URI()
}
