package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/spores/internal/shared"
)

// Kind is a Spotify resource type as it appears in URIs.
type Kind string

const (
	KindTrack    Kind = "track"
	KindAlbum    Kind = "album"
	KindArtist   Kind = "artist"
	KindPlaylist Kind = "playlist"
	KindEpisode  Kind = "episode"
	KindShow     Kind = "show"
	KindUser     Kind = "user"
)

// ID identifies a Spotify resource.
type ID struct {
	Kind Kind
	ID   string
}

// URI renders the ID as spotify:<kind>:<id>.
func (i ID) URI() string {
	return "spotify:" + string(i.Kind) + ":" + i.ID
}

func (i ID) String() string {
	return i.URI()
}

// URI returns the Spotify URI for id, or nil when id is empty (local files, missing items).
func URI(kind Kind, id string) *string {
	if id == "" {
		return nil
	}
	uri := ID{Kind: kind, ID: id}.URI()
	return &uri
}

// ParseID accepts a bare ID, a spotify:<kind>:<id> or spotify/<kind>/<id> URI, or an
// open.spotify.com URL, and checks that it names a resource of the given kind.
func ParseID(kind Kind, s string) (ID, error) {
	s = strings.TrimSpace(s)

	parsedKind, id, err := splitID(s)
	if err != nil {
		return ID{}, err
	}

	if parsedKind == "" {
		parsedKind = kind
	}

	if parsedKind != kind {
		return ID{}, fmt.Errorf("%w: %q is a %s, expected a %s", shared.ErrInvalidID, s, parsedKind, kind)
	}

	if !validID(kind, id) {
		return ID{}, fmt.Errorf("%w: %q is not a valid %s ID", shared.ErrInvalidID, s, kind)
	}

	return ID{Kind: kind, ID: id}, nil
}

// ParseIDs parses every value with [ParseID], stopping at the first failure.
func ParseIDs(kind Kind, values []string) ([]ID, error) {
	ids := make([]ID, 0, len(values))
	for _, v := range values {
		id, err := ParseID(kind, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParsePlayable parses an item that can be added to a playlist.
//
// Track and episode URIs and URLs are accepted; bare IDs are treated as tracks.
func ParsePlayable(s string) (ID, error) {
	s = strings.TrimSpace(s)

	kind, _, err := splitID(s)
	if err != nil {
		return ID{}, err
	}

	switch kind {
	case "", KindTrack:
		return ParseID(KindTrack, s)
	case KindEpisode:
		return ParseID(KindEpisode, s)
	default:
		return ID{}, fmt.Errorf("%w: %q is a %s; only tracks and episodes can be added to a playlist", shared.ErrInvalidID, s, kind)
	}
}

// splitID extracts the kind and ID from s. The kind is empty for a bare ID.
func splitID(s string) (Kind, string, error) {
	if s == "" {
		return "", "", fmt.Errorf("%w: empty ID", shared.ErrInvalidID)
	}

	if strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://") {
		return splitURL(s)
	}

	rest, ok := strings.CutPrefix(s, "spotify")
	if !ok || rest == "" || (rest[0] != ':' && rest[0] != '/') {
		return "", s, nil
	}

	sep := rest[:1]
	rest = rest[1:]
	idx := strings.LastIndex(rest, sep)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: malformed URI %q", shared.ErrInvalidID, s)
	}

	kind, id := Kind(rest[:idx]), rest[idx+1:]
	if !knownKind(kind) {
		return "", "", fmt.Errorf("%w: unknown resource type in %q", shared.ErrInvalidID, s)
	}
	return kind, id, nil
}

func splitURL(s string) (Kind, string, error) {
	u, err := url.Parse(s)
	if err != nil || u.Host != "open.spotify.com" {
		return "", "", fmt.Errorf("%w: %q is not an open.spotify.com URL", shared.ErrInvalidID, s)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) > 0 && strings.HasPrefix(parts[0], "intl-") {
		parts = parts[1:]
	}
	if len(parts) != 2 || !knownKind(Kind(parts[0])) {
		return "", "", fmt.Errorf("%w: unrecognized Spotify URL %q", shared.ErrInvalidID, s)
	}

	return Kind(parts[0]), parts[1], nil
}

func knownKind(k Kind) bool {
	switch k {
	case KindTrack, KindAlbum, KindArtist, KindPlaylist, KindEpisode, KindShow, KindUser:
		return true
	}
	return false
}

// validID reports whether id is base62. User IDs may contain any character.
func validID(kind Kind, id string) bool {
	if id == "" {
		return false
	}
	if kind == KindUser {
		return true
	}
	for _, r := range id {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
