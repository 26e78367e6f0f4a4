package models

import "time"

// SearchResult is the document printed by search. Items holds the entries for Type.
type SearchResult struct {
	Query string `json:"query"`
	Type  string `json:"type"`
	Total int    `json:"total"`
	Items any    `json:"items"`
}

type TrackItem struct {
	ID         *string  `json:"id"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album"`
	DurationMS int64    `json:"duration_ms"`
}

type AlbumItem struct {
	ID          *string  `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	ReleaseDate *string  `json:"release_date"`
}

type ArtistItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Followers  int      `json:"followers"`
	Popularity int      `json:"popularity"`
}

type PlaylistItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Tracks int     `json:"tracks"`
	Owner  string  `json:"owner"`
	URL    *string `json:"url"`
}

// PlaylistSummary is one entry of [PlaylistList].
type PlaylistSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Tracks int     `json:"tracks"`
	Public bool    `json:"public"`
	Owner  string  `json:"owner"`
	URL    *string `json:"url"`
}

// PlaylistList is the document printed by playlist list. Total counts the collected playlists.
type PlaylistList struct {
	Total     int               `json:"total"`
	Playlists []PlaylistSummary `json:"playlists"`
}

type CreatedPlaylist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Public      bool    `json:"public"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

// PlaylistInfo is the document printed by playlist info.
//
// Tracks covers the first page of items only; TotalTracks is the playlist's full size.
type PlaylistInfo struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Owner         string  `json:"owner"`
	Public        bool    `json:"public"`
	Collaborative bool    `json:"collaborative"`
	Followers     int     `json:"followers"`
	Description   *string `json:"description"`
	URL           *string `json:"url"`
	TotalTracks   int     `json:"total_tracks"`
	Tracks        []any   `json:"tracks"`
}

type PlaylistTrack struct {
	Type       string   `json:"type"`
	ID         *string  `json:"id"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album"`
	DurationMS int64    `json:"duration_ms"`
}

type PlaylistEpisode struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	Show       string `json:"show"`
	DurationMS int64  `json:"duration_ms"`
}

// UnknownItem stands in for playlist entries that are neither tracks nor episodes.
type UnknownItem struct {
	Type string `json:"type"`
}

// ItemsAdded is the document printed by playlist add. Playlist echoes the argument as given.
type ItemsAdded struct {
	Playlist   string `json:"playlist"`
	Added      int    `json:"added"`
	SnapshotID string `json:"snapshot_id"`
}

// Saved is the document printed by save. IDs echo the arguments as given.
type Saved struct {
	Type  string   `json:"type"`
	Saved int      `json:"saved"`
	IDs   []string `json:"ids"`
}

// User is the profile shown by [AuthStatus].
type User struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name"`
}

// AuthStatus describes the token cache.
type AuthStatus struct {
	Authenticated bool       `json:"authenticated"`
	TokenCache    string     `json:"token_cache"`
	Expiry        *time.Time `json:"expiry"`
	Scopes        []string   `json:"scopes"`
	User          *User      `json:"user"`
}

type ErrorDocument struct {
	Error string `json:"error"`
}
