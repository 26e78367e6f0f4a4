// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/spores/internal/services"
)

// MockService is a test double for [services.Service].
//
// Results are returned as configured; Err fails every call. Calls records method names in order.
type MockService struct {
	User           *services.SpotifyUser
	SearchResult   *services.SpotifySearchResult
	Playlists      []services.SpotifySimplePlaylist
	PlaylistResult *services.SpotifyPlaylist
	Snapshot       *services.SnapshotResponse
	Err            error

	Calls       []string
	Query       string
	SearchType  services.SearchType
	Limit       int
	CreatedFor  string
	CreateOpts  services.CreatePlaylistOpts
	PlaylistID  string
	Added       []string
	SavedTracks []string
	SavedAlbums []string
	Followed    []string
}

func (m *MockService) record(name string) error {
	m.Calls = append(m.Calls, name)
	return m.Err
}

func (m *MockService) Name() string { return "mock" }

func (m *MockService) CurrentUser(ctx context.Context) (*services.SpotifyUser, error) {
	if err := m.record("CurrentUser"); err != nil {
		return nil, err
	}
	if m.User == nil {
		return &services.SpotifyUser{ID: "mock_user"}, nil
	}
	return m.User, nil
}

func (m *MockService) Search(ctx context.Context, query string, kind services.SearchType, limit int) (*services.SpotifySearchResult, error) {
	m.Query, m.SearchType, m.Limit = query, kind, limit
	if err := m.record("Search"); err != nil {
		return nil, err
	}
	if m.SearchResult == nil {
		return &services.SpotifySearchResult{}, nil
	}
	return m.SearchResult, nil
}

func (m *MockService) AllPlaylists(ctx context.Context) ([]services.SpotifySimplePlaylist, error) {
	if err := m.record("AllPlaylists"); err != nil {
		return nil, err
	}
	return m.Playlists, nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, userID string, opts services.CreatePlaylistOpts) (*services.SpotifyPlaylist, error) {
	m.CreatedFor, m.CreateOpts = userID, opts
	if err := m.record("CreatePlaylist"); err != nil {
		return nil, err
	}
	public := opts.Public
	return &services.SpotifyPlaylist{ID: "created", Name: opts.Name, Public: &public, Description: opts.Description}, nil
}

func (m *MockService) Playlist(ctx context.Context, playlistID string) (*services.SpotifyPlaylist, error) {
	m.PlaylistID = playlistID
	if err := m.record("Playlist"); err != nil {
		return nil, err
	}
	if m.PlaylistResult == nil {
		return nil, fmt.Errorf("mock: no playlist configured for %s", playlistID)
	}
	return m.PlaylistResult, nil
}

func (m *MockService) AddPlaylistItems(ctx context.Context, playlistID string, uris []string) (*services.SnapshotResponse, error) {
	m.PlaylistID, m.Added = playlistID, uris
	if err := m.record("AddPlaylistItems"); err != nil {
		return nil, err
	}
	if m.Snapshot == nil {
		return &services.SnapshotResponse{SnapshotID: "mock_snapshot"}, nil
	}
	return m.Snapshot, nil
}

func (m *MockService) SaveTracks(ctx context.Context, trackIDs []string) error {
	m.SavedTracks = trackIDs
	return m.record("SaveTracks")
}

func (m *MockService) SaveAlbums(ctx context.Context, albumIDs []string) error {
	m.SavedAlbums = albumIDs
	return m.record("SaveAlbums")
}

func (m *MockService) FollowPlaylist(ctx context.Context, playlistID string) error {
	m.Followed = append(m.Followed, playlistID)
	return m.record("FollowPlaylist")
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MustWriteConfig writes a config.toml with the given credentials into dir and returns its path.
func MustWriteConfig(t *testing.T, dir, clientID, clientSecret string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	MustWriteFile(t, path, fmt.Sprintf("client_id = %q\nclient_secret = %q\n", clientID, clientSecret))
	return path
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
