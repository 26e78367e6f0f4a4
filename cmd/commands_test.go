package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/desertthunder/spores/internal/services"
	"github.com/desertthunder/spores/internal/shared"
	tu "github.com/desertthunder/spores/internal/testing"
)

func strPtr(s string) *string { return &s }

func TestSearch(t *testing.T) {
	t.Run("prints one entry per track", func(t *testing.T) {
		tracks := []services.SpotifyTrack{}
		for i := range 3 {
			tracks = append(tracks, services.SpotifyTrack{
				ID:      fmt.Sprintf("track%d", i),
				Name:    fmt.Sprintf("Song %d", i),
				Artists: []services.SpotifyArtist{{Name: "Band"}},
				Album:   services.SpotifyAlbum{Name: "Record"},
			})
		}
		mock := &tu.MockService{SearchResult: &services.SpotifySearchResult{
			Tracks: &services.Page[services.SpotifyTrack]{Items: tracks, Total: 120},
		}}
		runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		if err := run(runner, "search", "--limit", "3", "daft", "punk"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if mock.Query != "daft punk" || mock.SearchType != services.SearchTrack || mock.Limit != 3 {
			t.Errorf("unexpected search call: %q %q %d", mock.Query, mock.SearchType, mock.Limit)
		}

		doc := decode(t, output.Bytes())
		if doc["query"] != "daft punk" || doc["type"] != "track" || doc["total"] != float64(120) {
			t.Errorf("unexpected header: %v", doc)
		}
		items := doc["items"].([]any)
		if len(items) != len(tracks) {
			t.Fatalf("expected %d items, got %d", len(tracks), len(items))
		}
		for i, item := range items {
			entry := item.(map[string]any)
			if entry["name"] != tracks[i].Name {
				t.Errorf("item %d: expected name %q, got %v", i, tracks[i].Name, entry["name"])
			}
			if entry["id"] != "spotify:track:"+tracks[i].ID {
				t.Errorf("item %d: unexpected id %v", i, entry["id"])
			}
		}
	})

	t.Run("type flag selects the result page", func(t *testing.T) {
		mock := &tu.MockService{SearchResult: &services.SpotifySearchResult{
			Artists: &services.Page[services.SpotifyArtist]{
				Items: []services.SpotifyArtist{{ID: "a1", Name: "Artist"}},
				Total: 1,
			},
		}}
		runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		if err := run(runner, "search", "--type", "ARTIST", "someone"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if mock.SearchType != services.SearchArtist || mock.Limit != 20 {
			t.Errorf("unexpected search call: %q %d", mock.SearchType, mock.Limit)
		}
		doc := decode(t, output.Bytes())
		items := doc["items"].([]any)
		if len(items) != 1 || items[0].(map[string]any)["name"] != "Artist" {
			t.Errorf("unexpected items: %v", items)
		}
	})

	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"missing query", []string{"search"}, shared.ErrMissingArgument},
		{"blank query", []string{"search", "  "}, shared.ErrMissingArgument},
		{"unknown type", []string{"search", "--type", "podcast", "q"}, shared.ErrInvalidArgument},
		{"limit too small", []string{"search", "--limit", "0", "q"}, shared.ErrInvalidArgument},
		{"limit too large", []string{"search", "--limit", "51", "q"}, shared.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &tu.MockService{}
			runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

			err := run(runner, tt.args...)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if len(mock.Calls) != 0 {
				t.Errorf("expected no service calls, got %v", mock.Calls)
			}
			if output.Len() != 0 {
				t.Errorf("expected no output, got %q", output.String())
			}
		})
	}

	t.Run("service error is returned", func(t *testing.T) {
		mock := &tu.MockService{Err: shared.ErrRateLimited}
		runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		if err := run(runner, "search", "q"); !errors.Is(err, shared.ErrRateLimited) {
			t.Fatalf("expected ErrRateLimited, got %v", err)
		}
		if output.Len() != 0 {
			t.Errorf("expected no output, got %q", output.String())
		}
	})
}

func TestPlaylist(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		public := true
		mock := &tu.MockService{Playlists: []services.SpotifySimplePlaylist{
			{ID: "p1", Name: "One", Public: &public, Owner: services.Owner{DisplayName: strPtr("me")}},
			{ID: "p2", Name: "Two"},
		}}
		runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		if err := run(runner, "playlist", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		doc := decode(t, output.Bytes())
		if doc["total"] != float64(2) {
			t.Errorf("expected total 2, got %v", doc["total"])
		}
		playlists := doc["playlists"].([]any)
		second := playlists[1].(map[string]any)
		if second["owner"] != "unknown" || second["public"] != false {
			t.Errorf("unexpected defaults: %v", second)
		}
	})

	t.Run("create", func(t *testing.T) {
		mock := &tu.MockService{User: &services.SpotifyUser{ID: "alice"}}
		runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		err := run(runner, "playlist", "create", "--public", "--description", "for running", "Morning", "Run")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !reflect.DeepEqual(mock.Calls, []string{"CurrentUser", "CreatePlaylist"}) {
			t.Errorf("unexpected calls: %v", mock.Calls)
		}
		if mock.CreatedFor != "alice" {
			t.Errorf("expected playlist for alice, got %q", mock.CreatedFor)
		}
		if mock.CreateOpts.Name != "Morning Run" || !mock.CreateOpts.Public {
			t.Errorf("unexpected opts: %+v", mock.CreateOpts)
		}
		if mock.CreateOpts.Description == nil || *mock.CreateOpts.Description != "for running" {
			t.Errorf("unexpected description: %v", mock.CreateOpts.Description)
		}

		doc := decode(t, output.Bytes())
		if doc["id"] != "spotify:playlist:created" || doc["name"] != "Morning Run" || doc["public"] != true {
			t.Errorf("unexpected document: %v", doc)
		}
	})

	t.Run("create without description", func(t *testing.T) {
		mock := &tu.MockService{}
		runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		if err := run(runner, "playlist", "create", "Quiet"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if mock.CreateOpts.Description != nil || mock.CreateOpts.Public {
			t.Errorf("unexpected opts: %+v", mock.CreateOpts)
		}
		doc := decode(t, output.Bytes())
		if doc["description"] != nil {
			t.Errorf("expected null description, got %v", doc["description"])
		}
	})

	t.Run("info", func(t *testing.T) {
		mock := &tu.MockService{PlaylistResult: &services.SpotifyPlaylist{
			ID:   "37i9dQZF1DXcBWIGoYBM5M",
			Name: "Hits",
			Tracks: services.Page[services.SpotifyPlaylistItem]{
				Total: 3,
				Items: []services.SpotifyPlaylistItem{
					{Track: &services.SpotifyPlayable{Type: "track", Track: &services.SpotifyTrack{ID: "t1", Name: "Song"}}},
					{Track: nil},
					{Track: &services.SpotifyPlayable{Type: "episode", Episode: &services.SpotifyEpisode{ID: "e1", Name: "Talk"}}},
				},
			},
		}}
		runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		if err := run(runner, "playlist", "info", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if mock.PlaylistID != "37i9dQZF1DXcBWIGoYBM5M" {
			t.Errorf("expected parsed playlist id, got %q", mock.PlaylistID)
		}
		doc := decode(t, output.Bytes())
		tracks := doc["tracks"].([]any)
		if len(tracks) != 2 || doc["total_tracks"] != float64(3) {
			t.Fatalf("unexpected tracks: %v", doc)
		}
		if tracks[1].(map[string]any)["type"] != "episode" {
			t.Errorf("expected episode entry, got %v", tracks[1])
		}
	})

	t.Run("add", func(t *testing.T) {
		mock := &tu.MockService{Snapshot: &services.SnapshotResponse{SnapshotID: "snap"}}
		runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		err := run(runner, "--compact", "playlist", "add", "spotify:playlist:pl1",
			"4uLU6hMCjMI75M1A2tKUQC", "spotify:episode:ep1", "https://open.spotify.com/track/tr2")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []string{"spotify:track:4uLU6hMCjMI75M1A2tKUQC", "spotify:episode:ep1", "spotify:track:tr2"}
		if mock.PlaylistID != "pl1" || !reflect.DeepEqual(mock.Added, want) {
			t.Errorf("unexpected add call: %q %v", mock.PlaylistID, mock.Added)
		}
		if got := output.String(); got != `{"playlist":"spotify:playlist:pl1","added":3,"snapshot_id":"snap"}`+"\n" {
			t.Errorf("unexpected output %q", got)
		}
	})

	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"create without name", []string{"playlist", "create"}, shared.ErrMissingArgument},
		{"info without playlist", []string{"playlist", "info"}, shared.ErrMissingArgument},
		{"info with album uri", []string{"playlist", "info", "spotify:album:abc"}, shared.ErrInvalidID},
		{"info with bad characters", []string{"playlist", "info", "not-an-id!"}, shared.ErrInvalidID},
		{"add without items", []string{"playlist", "add", "pl1"}, shared.ErrMissingArgument},
		{"add album", []string{"playlist", "add", "pl1", "spotify:album:abc"}, shared.ErrInvalidID},
		{"add to track", []string{"playlist", "add", "spotify:track:abc", "def"}, shared.ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &tu.MockService{}
			runner, _, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

			if err := run(runner, tt.args...); !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if len(mock.Calls) != 0 {
				t.Errorf("expected no service calls, got %v", mock.Calls)
			}
		})
	}
}

func TestSave(t *testing.T) {
	t.Run("tracks", func(t *testing.T) {
		mock := &tu.MockService{}
		runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		if err := run(runner, "--compact", "save", "spotify:track:t1", "t2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(mock.SavedTracks, []string{"t1", "t2"}) {
			t.Errorf("unexpected saved tracks: %v", mock.SavedTracks)
		}
		if got := output.String(); got != `{"type":"track","saved":2,"ids":["spotify:track:t1","t2"]}`+"\n" {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("albums", func(t *testing.T) {
		mock := &tu.MockService{}
		runner, _, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		if err := run(runner, "save", "--type", "album", "https://open.spotify.com/album/a1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(mock.SavedAlbums, []string{"a1"}) {
			t.Errorf("unexpected saved albums: %v", mock.SavedAlbums)
		}
	})

	t.Run("playlists are followed one by one", func(t *testing.T) {
		mock := &tu.MockService{}
		runner, _, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		if err := run(runner, "save", "--type", "playlist", "p1", "spotify:playlist:p2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(mock.Followed, []string{"p1", "p2"}) {
			t.Errorf("unexpected follows: %v", mock.Followed)
		}
	})

	t.Run("follow stops at first failure", func(t *testing.T) {
		mock := &tu.MockService{Err: shared.ErrNotFound}
		runner, output, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

		err := run(runner, "save", "--type", "playlist", "p1", "p2")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if len(mock.Followed) != 1 {
			t.Errorf("expected one follow attempt, got %v", mock.Followed)
		}
		if output.Len() != 0 {
			t.Errorf("expected no output, got %q", output.String())
		}
	})

	tests := []struct {
		name string
		args []string
		err  error
		msg  string
	}{
		{"artist", []string{"save", "--type", "artist", "a1"}, shared.ErrUnsupported, "use 'follow' instead"},
		{"unknown type", []string{"save", "--type", "show", "s1"}, shared.ErrInvalidArgument, "unknown item type"},
		{"no ids", []string{"save"}, shared.ErrMissingArgument, "at least one track"},
		{"wrong uri kind", []string{"save", "spotify:album:a1"}, shared.ErrInvalidID, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &tu.MockService{}
			runner, _, _ := newTestRunner(t, RunnerOpts{Spotify: mock})

			err := run(runner, tt.args...)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected message containing %q, got %q", tt.msg, err.Error())
			}
			if len(mock.Calls) != 0 {
				t.Errorf("expected no service calls, got %v", mock.Calls)
			}
		})
	}
}
