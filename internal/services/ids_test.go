package services

import (
	"errors"
	"testing"

	"github.com/desertthunder/spores/internal/shared"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		input   string
		want    string
		wantErr bool
	}{
		{"bare id", KindTrack, "4uLU6hMCjMI75M1A2tKUQC", "spotify:track:4uLU6hMCjMI75M1A2tKUQC", false},
		{"uri", KindAlbum, "spotify:album:6akEvsycLGftJxYudPjmqK", "spotify:album:6akEvsycLGftJxYudPjmqK", false},
		{"slash uri", KindPlaylist, "spotify/playlist/37i9dQZF1DXcBWIGoYBM5M", "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M", false},
		{"url", KindTrack, "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc", "spotify:track:4uLU6hMCjMI75M1A2tKUQC", false},
		{"localized url", KindAlbum, "https://open.spotify.com/intl-de/album/6akEvsycLGftJxYudPjmqK", "spotify:album:6akEvsycLGftJxYudPjmqK", false},
		{"surrounding whitespace", KindArtist, "  0TnOYISbd1XYRBk9myaseg ", "spotify:artist:0TnOYISbd1XYRBk9myaseg", false},
		{"user id allows punctuation", KindUser, "spotify:user:john.doe", "spotify:user:john.doe", false},
		{"wrong kind", KindTrack, "spotify:album:6akEvsycLGftJxYudPjmqK", "", true},
		{"unknown kind", KindTrack, "spotify:podcast:abc", "", true},
		{"invalid characters", KindTrack, "not-an-id!", "", true},
		{"empty", KindTrack, "", "", true},
		{"missing id", KindTrack, "spotify:track", "", true},
		{"foreign url", KindTrack, "https://example.com/track/abc", "", true},
		{"url without id", KindTrack, "https://open.spotify.com/track", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.kind, tt.input)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidID) {
					t.Errorf("expected ErrInvalidID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseID() error = %v", err)
			}
			if id.URI() != tt.want {
				t.Errorf("ParseID() = %s, want %s", id.URI(), tt.want)
			}
		})
	}
}

func TestParsePlayable(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantErr  bool
	}{
		{"bare id is a track", "4uLU6hMCjMI75M1A2tKUQC", KindTrack, false},
		{"track uri", "spotify:track:4uLU6hMCjMI75M1A2tKUQC", KindTrack, false},
		{"episode uri", "spotify:episode:512ojhOuo1ktJprKbVcKyQ", KindEpisode, false},
		{"episode url", "https://open.spotify.com/episode/512ojhOuo1ktJprKbVcKyQ", KindEpisode, false},
		{"album rejected", "spotify:album:6akEvsycLGftJxYudPjmqK", "", true},
		{"garbage", "???", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParsePlayable(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlayable() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && id.Kind != tt.wantKind {
				t.Errorf("ParsePlayable() kind = %s, want %s", id.Kind, tt.wantKind)
			}
		})
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs(KindTrack, []string{"abc", "spotify:track:def"})
	if err != nil {
		t.Fatalf("ParseIDs() error = %v", err)
	}
	if len(ids) != 2 || ids[1].ID != "def" {
		t.Errorf("unexpected ids %v", ids)
	}

	if _, err := ParseIDs(KindTrack, []string{"abc", "spotify:album:def"}); err == nil {
		t.Error("expected failure on mismatched kind")
	}
}

func TestURI(t *testing.T) {
	if URI(KindTrack, "") != nil {
		t.Error("expected nil URI for empty id")
	}
	if got := URI(KindEpisode, "e1"); got == nil || *got != "spotify:episode:e1" {
		t.Errorf("unexpected URI %v", got)
	}
}

func TestParseSearchType(t *testing.T) {
	for _, input := range []string{"track", "ALBUM", " artist ", "playlist"} {
		if _, err := ParseSearchType(input); err != nil {
			t.Errorf("ParseSearchType(%q) error = %v", input, err)
		}
	}

	if _, err := ParseSearchType("show"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
